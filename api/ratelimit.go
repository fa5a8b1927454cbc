package api

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiter is a fixed-window request counter backed by redis,
// keyed per client IP.
type RateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	prefix string
}

// NewRateLimiter connects to redis at redisURL and returns a limiter
// allowing limit requests per window.
func NewRateLimiter(redisURL string, limit int64, window time.Duration) (*RateLimiter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return NewRateLimiterWithClient(redis.NewClient(opts), limit, window), nil
}

// NewRateLimiterWithClient wraps an existing redis client, used by tests.
func NewRateLimiterWithClient(client *redis.Client, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "ratelimit:",
	}
}

// Allow increments the counter for key and reports whether the request
// is within the window's budget.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := rl.prefix + key
	n, err := rl.client.Incr(ctx, k).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		rl.client.Expire(ctx, k, rl.window)
	}
	return n <= rl.limit, nil
}

// Middleware enforces the limit per client IP. Redis failures let the
// request through rather than blocking traffic.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, err := rl.Allow(r.Context(), clientIP(r))
		if err != nil {
			zap.S().Warnw("rate limiter unavailable", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"message": "Too many requests, please try again later"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
