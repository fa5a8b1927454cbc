package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newTestLimiter(t *testing.T, limit int64, window time.Duration) (*RateLimiter, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRateLimiterWithClient(client, limit, window), mr
}

func TestRateLimiterAllowWithinBudget(t *testing.T) {
	rl, _ := newTestLimiter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, err := rl.Allow(context.Background(), "10.0.0.1")
		assert.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := rl.Allow(context.Background(), "10.0.0.1")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	rl, _ := newTestLimiter(t, 1, time.Minute)

	ok, _ := rl.Allow(context.Background(), "10.0.0.1")
	assert.True(t, ok)
	ok, _ = rl.Allow(context.Background(), "10.0.0.2")
	assert.True(t, ok)
	ok, _ = rl.Allow(context.Background(), "10.0.0.1")
	assert.False(t, ok)
}

func TestRateLimiterWindowExpires(t *testing.T) {
	rl, mr := newTestLimiter(t, 1, time.Minute)

	ok, _ := rl.Allow(context.Background(), "10.0.0.1")
	assert.True(t, ok)
	ok, _ = rl.Allow(context.Background(), "10.0.0.1")
	assert.False(t, ok)

	mr.FastForward(time.Minute + time.Second)

	ok, _ = rl.Allow(context.Background(), "10.0.0.1")
	assert.True(t, ok)
}

func TestRateLimiterMiddlewareWrites429(t *testing.T) {
	rl, _ := newTestLimiter(t, 1, time.Minute)

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/api/chat", nil)
	req.RemoteAddr = "10.0.0.1:52000"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"message": "Too many requests, please try again later"}`, w.Body.String())
}

func TestRateLimiterMiddlewareFailsOpen(t *testing.T) {
	rl, mr := newTestLimiter(t, 1, time.Minute)
	mr.Close()

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/api/chat", nil)
	req.RemoteAddr = "10.0.0.1:52000"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestClientIPPrefersForwardedHeader(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.9:1234"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	assert.Equal(t, "203.0.113.7", clientIP(req))
}
