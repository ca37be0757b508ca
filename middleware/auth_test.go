package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"hotelbook/constants"
	"hotelbook/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(tokens *services.TokenManager, userTypes ...string) *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(tokens, userTypes...), func(c *gin.Context) {
		id := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"id": id.UserID, "type": id.UserType})
	})
	return r
}

func token(t *testing.T, tokens *services.TokenManager, userType string) string {
	t.Helper()
	tok, err := tokens.GenerateToken(services.UserInfo{UserId: 42, UserType: userType, Email: "u@example.com"})
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	tokens := services.NewTokenManager("secret", time.Hour)
	managerOnly := newRouter(tokens, constants.UserTypeManager)

	tests := []struct {
		name   string
		setup  func(req *http.Request)
		status int
	}{
		{"missing token", func(req *http.Request) {}, http.StatusUnauthorized},
		{"garbage token", func(req *http.Request) { req.Header.Set("Authorization", "Bearer abc") }, http.StatusUnauthorized},
		{"wrong role", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+token(t, tokens, constants.UserTypeCustomer))
		}, http.StatusForbidden},
		{"header", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+token(t, tokens, constants.UserTypeManager))
		}, http.StatusOK},
		{"cookie", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token(t, tokens, constants.UserTypeManager)})
		}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			managerOnly.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestAuthMiddlewareSetsIdentity(t *testing.T) {
	tokens := services.NewTokenManager("secret", time.Hour)
	router := newRouter(tokens)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, tokens, constants.UserTypeCustomer))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":42,"type":"customer"}`, w.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	tokens := services.NewTokenManager("secret", time.Hour)
	r := gin.New()
	r.GET("/ws", OptionalAuth(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentIdentity(c).UserID})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.JSONEq(t, `{"id":0}`, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, tokens, constants.UserTypeCustomer))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"id":42}`, w.Body.String())
}

func TestSessionMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/s", SessionMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextSessionID))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/s", nil))
	issued := w.Header().Get(SessionHeader)
	_, err := uuid.Parse(issued)
	require.NoError(t, err)
	assert.Equal(t, issued, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/s", nil)
	req.Header.Set(SessionHeader, issued)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, issued, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/s", nil)
	req.Header.Set(SessionHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Body.String())
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.POST("/login", RateLimit(NewIPRateLimiter(rate.Every(time.Hour), 2)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
