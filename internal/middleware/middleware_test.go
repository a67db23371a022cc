package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/tastemap/backend/internal/logger"
	"github.com/pageza/tastemap/backend/internal/metrics"
	"github.com/pageza/tastemap/backend/internal/service"
	"github.com/pageza/tastemap/backend/internal/testhelpers"
	"github.com/pageza/tastemap/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestAuthMiddleware(t *testing.T) {
	user := uuid.New()
	validator := &testhelpers.MockTokenValidator{}
	validator.On("ValidateToken", "good").Return(&types.TokenClaims{UserID: user, Username: "eater"}, nil)
	validator.On("ValidateToken", "old").Return(nil, service.ErrTokenExpired)
	validator.On("ValidateToken", "bad").Return(nil, service.ErrInvalidToken)

	router := gin.New()
	router.GET("/me", AuthMiddleware(validator), func(c *gin.Context) {
		id, ok := UserID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": id.String(), "username": c.GetString(UsernameKey)})
	})

	tests := []struct {
		name   string
		header string
		status int
		errMsg string
	}{
		{"valid", "Bearer good", http.StatusOK, ""},
		{"missing header", "", http.StatusUnauthorized, "missing authorization header"},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, "invalid authorization header format"},
		{"expired", "Bearer old", http.StatusUnauthorized, "token expired"},
		{"invalid", "Bearer bad", http.StatusUnauthorized, "invalid token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.errMsg != "" {
				assert.Equal(t, tt.errMsg, decodeError(t, w))
				return
			}
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, user.String(), body["user_id"])
			assert.Equal(t, "eater", body["username"])
		})
	}
}

func TestErrorHandler(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler(logger.Nop()))
	router.GET("/panic", func(c *gin.Context) { panic("boom") })
	router.GET("/error", func(c *gin.Context) {
		_ = c.Error(errors.New("database unavailable"))
	})
	router.GET("/handled", func(c *gin.Context) {
		_ = c.Error(errors.New("bad input"))
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad input"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decodeError(t, w))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/error", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", decodeError(t, w))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/handled", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "bad input", decodeError(t, w))
}

func TestRequestLoggerRecordsMetrics(t *testing.T) {
	m := metrics.New()
	router := gin.New()
	router.Use(RequestLogger(logger.Nop(), m))
	router.GET("/dishes/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dishes/"+uuid.NewString(), nil))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	count, err := testutil.GatherAndCount(m.Registry(), "tastemap_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"http://localhost:3000"}))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRateLimiter(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	limiter := NewRateLimiter(client, RateLimitConfig{Window: time.Minute, Limit: 2}, logger.Nop())
	ctx := context.Background()

	allowed, remaining, _, err := limiter.IsAllowed(ctx, "user:a")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)

	allowed, remaining, _, err = limiter.IsAllowed(ctx, "user:a")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 0, remaining)

	allowed, _, reset, err := limiter.IsAllowed(ctx, "user:a")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.True(t, reset.After(time.Now()))

	allowed, _, _, err = limiter.IsAllowed(ctx, "user:b")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRateLimitMiddleware(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	limiter := NewRateLimiter(client, RateLimitConfig{Window: time.Minute, Limit: 1, KeyPrefix: "rl_test"}, logger.Nop())
	router := gin.New()
	router.Use(limiter.RateLimitMiddleware())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "rate limit exceeded", decodeError(t, w))
}
