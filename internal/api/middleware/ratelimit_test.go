package middleware

import (
	"bytes"
	"credit-engine/internal/config"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestFrom(remoteAddr string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	return req
}

func TestRateLimiterMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	cfg := config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 2}

	t.Run("allows requests under the rate limit", func(t *testing.T) {
		handler := NewRateLimiterMiddleware(cfg, nil, logger).Middleware(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestFrom("127.0.0.1:12345"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("blocks requests exceeding the burst", func(t *testing.T) {
		handler := NewRateLimiterMiddleware(cfg, nil, logger).Middleware(okHandler())

		for i := 0; i < cfg.Burst; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, requestFrom("127.0.0.1:12345"))
			require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
		}

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestFrom("127.0.0.1:12345"))
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "1", rec.Header().Get("Retry-After"))

		var response map[string]map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, "Rate limit exceeded", response["error"]["message"])
	})

	t.Run("limits each client separately", func(t *testing.T) {
		handler := NewRateLimiterMiddleware(config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 1}, nil, logger).Middleware(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestFrom("10.0.0.1:1000"))
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, requestFrom("10.0.0.2:1000"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("disabled limiter passes everything through", func(t *testing.T) {
		handler := NewRateLimiterMiddleware(config.RateLimitConfig{Enabled: false, RPS: 1, Burst: 1}, nil, logger).Middleware(okHandler())

		for i := 0; i < 5; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, requestFrom("127.0.0.1:1"))
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("unreachable Redis fails open", func(t *testing.T) {
		client := redis.NewClient(&redis.Options{
			Addr:        "127.0.0.1:1",
			DialTimeout: 50 * time.Millisecond,
			MaxRetries:  -1,
		})
		t.Cleanup(func() { _ = client.Close() })

		handler := NewRateLimiterMiddleware(config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 1}, client, logger).Middleware(okHandler())

		for i := 0; i < 3; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, requestFrom("127.0.0.1:1"))
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("unknown client IP is forbidden", func(t *testing.T) {
		handler := NewRateLimiterMiddleware(cfg, nil, logger).Middleware(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestFrom("not-an-address"))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestExtractIP(t *testing.T) {
	rl := NewRateLimiterMiddleware(config.RateLimitConfig{}, nil, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "192.168.1.1, 10.0.0.1")
	assert.Equal(t, "192.168.1.1", rl.extractIP(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "10.0.0.1")
	assert.Equal(t, "10.0.0.1", rl.extractIP(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "garbage")
	req.RemoteAddr = "127.0.0.1:12345"
	assert.Equal(t, "127.0.0.1", rl.extractIP(req))
}

func TestWindowLimit(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	rl := NewRateLimiterMiddleware(config.RateLimitConfig{Enabled: true, RPS: 10, Window: time.Minute}, nil, logger)
	assert.Equal(t, int64(600), rl.windowLimit())

	rl = NewRateLimiterMiddleware(config.RateLimitConfig{Enabled: true, RPS: 0.1}, nil, logger)
	assert.Equal(t, int64(1), rl.windowLimit())
}

func TestPruneIdle(t *testing.T) {
	rl := NewRateLimiterMiddleware(config.RateLimitConfig{Enabled: true, RPS: 5, Burst: 5}, nil, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	rl.allowLocal("10.0.0.1")
	rl.allowLocal("10.0.0.2")

	assert.Equal(t, 0, rl.PruneIdle(time.Hour))
	assert.Equal(t, 2, rl.PruneIdle(-time.Second))

	_, exists := rl.limiters.Load("10.0.0.1")
	assert.False(t, exists)
}
