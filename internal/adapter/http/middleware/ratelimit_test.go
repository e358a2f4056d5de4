package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"payment-webhook-bridge/internal/core/ports"
	"payment-webhook-bridge/internal/core/ports/mocks"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newLimitedRouter(limiter ports.RateLimiter, rule RateLimitRule, subject string) *gin.Engine {
	r := gin.New()
	r.GET("/test", func(c *gin.Context) {
		if subject != "" {
			c.Set(CtxSubject, subject)
		}
		c.Next()
	}, RateLimiter(limiter, "admin", rule, zerolog.Nop()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := mocks.NewMockRateLimiter(ctrl)
	limiter.EXPECT().Allow(gomock.Any(), "192.0.2.1:admin", int64(5), time.Minute).
		Return(&ports.RateLimitResult{Allowed: true, Limit: 5, Remaining: 4, ResetAt: time.Now().Unix() + 60}, nil)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	newLimitedRouter(limiter, RateLimitRule{Limit: 5, Window: time.Minute}, "").ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := mocks.NewMockRateLimiter(ctrl)
	limiter.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&ports.RateLimitResult{Allowed: false, Limit: 5, Remaining: 0, ResetAt: time.Now().Unix() + 30}, nil)

	w := httptest.NewRecorder()
	newLimitedRouter(limiter, RateLimitRule{Limit: 5, Window: time.Minute}, "").
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "RATE_001")
}

func TestRateLimiter_KeysBySubject(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := mocks.NewMockRateLimiter(ctrl)
	limiter.EXPECT().Allow(gomock.Any(), "admin:admin", gomock.Any(), gomock.Any()).
		Return(&ports.RateLimitResult{Allowed: true, Limit: 60, Remaining: 59}, nil)

	w := httptest.NewRecorder()
	newLimitedRouter(limiter, RateLimitRule{Limit: 60, Window: time.Minute}, "admin").
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_DegradesOnStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := mocks.NewMockRateLimiter(ctrl)
	limiter.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, int64, time.Duration) (*ports.RateLimitResult, error) {
			return nil, assert.AnError
		})

	w := httptest.NewRecorder()
	newLimitedRouter(limiter, RateLimitRule{Limit: 1, Window: time.Minute}, "").
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
}

func TestDefaultRateLimitRules(t *testing.T) {
	rules := DefaultRateLimitRules()
	assert.Equal(t, int64(10), rules["admin_login"].Limit)
	assert.Equal(t, time.Minute, rules["admin"].Window)
	_, ok := rules["webhooks"]
	assert.False(t, ok)
}
