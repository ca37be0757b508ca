package services

import (
	"context"
	"fmt"
	"time"

	"hotelbook/constants"
	"hotelbook/dto"
)

const lastSearchTTL = 30 * time.Minute

func lastSearchKey(sessionID string) string {
	return fmt.Sprintf(constants.CacheKeyLastSearch, sessionID)
}

func SaveLastFilters(ctx context.Context, cache Cache, sessionID string, filters *dto.SearchFilters) error {
	if sessionID == "" {
		return nil
	}
	return cache.Set(ctx, lastSearchKey(sessionID), filters, lastSearchTTL)
}

// GetLastFilters trả về nil nếu session chưa tìm kiếm lần nào
func GetLastFilters(ctx context.Context, cache Cache, sessionID string) (*dto.SearchFilters, error) {
	if sessionID == "" {
		return nil, nil
	}
	var filters dto.SearchFilters
	found, err := cache.Get(ctx, lastSearchKey(sessionID), &filters)
	if err != nil || !found {
		return nil, err
	}
	return &filters, nil
}

func ClearLastFilters(ctx context.Context, cache Cache, sessionID string) error {
	return cache.Delete(ctx, lastSearchKey(sessionID))
}

// MergeFilters gộp yêu cầu mới với yêu cầu cũ, trường nào mới bỏ trống thì lấy từ cũ
func MergeFilters(old *dto.SearchFilters, new *dto.SearchFilters) *dto.SearchFilters {
	if old == nil {
		return new
	}
	new.Location = orString(new.Location, old.Location)
	new.Guests = orIntPointer(new.Guests, old.Guests)

	// Ngày nhận/trả phòng đi theo cặp
	if new.CheckIn == "" && new.CheckOut == "" {
		new.CheckIn = old.CheckIn
		new.CheckOut = old.CheckOut
	}
	return new
}

func orString(newVal, oldVal string) string {
	if newVal != "" {
		return newVal
	}
	return oldVal
}

func orIntPointer(newVal, oldVal *int) *int {
	if newVal != nil {
		return newVal
	}
	return oldVal
}
