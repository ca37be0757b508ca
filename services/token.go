package services

import (
	"fmt"
	"time"

	"hotelbook/errors"

	"github.com/dgrijalva/jwt-go"
)

type UserInfo struct {
	UserId   uint   `json:"userid"`
	UserType string `json:"usertype"`
	Email    string `json:"email"`
}

// Identity chuyển thông tin trong token thành danh tính gọi service
func (u UserInfo) Identity() Identity {
	return Identity{UserID: u.UserId, UserType: u.UserType, Email: u.Email}
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

// TokenManager ký và kiểm tra access token HS256
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// GenerateToken tạo access token cho user
func (m *TokenManager) GenerateToken(userInfo UserInfo) (string, error) {
	claims := &Claims{
		UserInfo: userInfo,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(m.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken kiểm tra chữ ký, hạn dùng và lấy thông tin user từ token
func (m *TokenManager) ParseToken(tokenString string) (UserInfo, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return UserInfo{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Token không hợp lệ", err)
	}

	if claims.UserInfo.UserId == 0 {
		return UserInfo{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Không tìm thấy ID user trong token", nil)
	}
	return claims.UserInfo, nil
}
