package services

import (
	"errors"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbook/constants"
	apperr "hotelbook/errors"
)

func TestTokenManagerRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	info := UserInfo{UserId: 7, UserType: constants.UserTypeManager, Email: "m@example.com"}

	token, err := m.GenerateToken(info)
	require.NoError(t, err)

	got, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, info, got)
	assert.Equal(t, Identity{UserID: 7, UserType: constants.UserTypeManager, Email: "m@example.com"}, got.Identity())
}

func TestTokenManagerRejectsExpired(t *testing.T) {
	m := NewTokenManager("secret", -time.Minute)
	token, err := m.GenerateToken(UserInfo{UserId: 1})
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}

func TestTokenManagerRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("other", time.Hour).GenerateToken(UserInfo{UserId: 1})
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).ParseToken(token)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}

func TestTokenManagerRejectsMissingUser(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	token, err := m.GenerateToken(UserInfo{})
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}

func TestTokenManagerRejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{
		UserInfo:       UserInfo{UserId: 1, UserType: constants.UserTypeAdmin},
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).ParseToken(token)
	assert.Error(t, err)
}

func TestTokenManagerRejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("secret", time.Hour).ParseToken("not-a-token")
	assert.Error(t, err)
}
