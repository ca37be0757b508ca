package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbook/dto"
)

func intPtr(v int) *int { return &v }

func TestMergeFiltersNilOld(t *testing.T) {
	req := &dto.SearchFilters{Location: "Huế"}
	assert.Same(t, req, MergeFilters(nil, req))
}

func TestMergeFiltersFillsBlanks(t *testing.T) {
	old := &dto.SearchFilters{Location: "Huế", CheckIn: "2030-01-01", CheckOut: "2030-01-03", Guests: intPtr(2)}

	merged := MergeFilters(old, &dto.SearchFilters{})
	assert.Equal(t, "Huế", merged.Location)
	assert.Equal(t, "2030-01-01", merged.CheckIn)
	assert.Equal(t, "2030-01-03", merged.CheckOut)
	assert.Equal(t, 2, *merged.Guests)
}

func TestMergeFiltersKeepsNewValues(t *testing.T) {
	old := &dto.SearchFilters{Location: "Huế", Guests: intPtr(2)}

	merged := MergeFilters(old, &dto.SearchFilters{Location: "Đà Lạt", Guests: intPtr(4)})
	assert.Equal(t, "Đà Lạt", merged.Location)
	assert.Equal(t, 4, *merged.Guests)
}

func TestMergeFiltersDatesTravelAsPair(t *testing.T) {
	old := &dto.SearchFilters{CheckIn: "2030-01-01", CheckOut: "2030-01-03"}

	merged := MergeFilters(old, &dto.SearchFilters{CheckIn: "2030-02-01"})
	assert.Equal(t, "2030-02-01", merged.CheckIn)
	assert.Equal(t, "", merged.CheckOut)
}

type mapCache struct {
	NopCache
	data map[string]*dto.SearchFilters
}

func (c *mapCache) Get(ctx context.Context, key string, target interface{}) (bool, error) {
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	*target.(*dto.SearchFilters) = *v
	return true, nil
}

func (c *mapCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.data[key] = value.(*dto.SearchFilters)
	return nil
}

func TestLastFiltersRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := &mapCache{data: map[string]*dto.SearchFilters{}}

	got, err := GetLastFilters(ctx, cache, "session-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, SaveLastFilters(ctx, cache, "session-1", &dto.SearchFilters{Location: "Huế"}))
	got, err = GetLastFilters(ctx, cache, "session-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Huế", got.Location)

	require.NoError(t, SaveLastFilters(ctx, cache, "", &dto.SearchFilters{Location: "Huế"}))
	assert.Len(t, cache.data, 1)
}
