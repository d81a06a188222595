package middleware

import (
	"context"
	"credit-engine/internal/config"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const (
	rateLimitKeyPrefix  = "credit-engine:ratelimit:"
	defaultWindow       = time.Second
	localLimiterIdleTTL = 10 * time.Minute
)

// RateLimiterMiddleware throttles clients by IP. With a Redis client it
// enforces a fixed window shared by every replica; without one it falls back
// to an in-process token bucket per IP.
type RateLimiterMiddleware struct {
	redisClient *redis.Client
	limiters    sync.Map
	cfg         config.RateLimitConfig
	window      time.Duration
	logger      *slog.Logger
}

type localLimiter struct {
	limiter  *rate.Limiter
	mu       sync.Mutex
	lastSeen time.Time
}

func NewRateLimiterMiddleware(cfg config.RateLimitConfig, redisClient *redis.Client, logger *slog.Logger) *RateLimiterMiddleware {
	window := cfg.Window
	if window <= 0 {
		window = defaultWindow
	}

	rl := &RateLimiterMiddleware{
		redisClient: redisClient,
		cfg:         cfg,
		window:      window,
		logger:      logger.With("component", "RateLimiter"),
	}

	switch {
	case !cfg.Enabled:
		rl.logger.Info("Rate limiting is disabled via configuration.")
	case redisClient != nil:
		rl.logger.Info("Rate limiter backed by Redis", "limit", rl.windowLimit(), "window", window)
	default:
		rl.logger.Info("Rate limiter backed by in-process token buckets", "rps", cfg.RPS, "burst", cfg.Burst)
	}
	return rl
}

func (rl *RateLimiterMiddleware) IsEnabled() bool {
	return rl.cfg.Enabled
}

// windowLimit is the number of requests allowed per fixed window.
func (rl *RateLimiterMiddleware) windowLimit() int64 {
	limit := int64(rl.cfg.RPS * rl.window.Seconds())
	if limit < 1 {
		limit = 1
	}
	return limit
}

func (rl *RateLimiterMiddleware) extractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(ip) != nil {
			return ip
		}
	}

	if xRealIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); xRealIP != "" {
		if net.ParseIP(xRealIP) != nil {
			return xRealIP
		}
	}

	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return ip
	}
	if parsedIP := net.ParseIP(r.RemoteAddr); parsedIP != nil {
		return parsedIP.String()
	}
	return "unknown"
}

func (rl *RateLimiterMiddleware) allowRedis(ctx context.Context, ip string) (bool, error) {
	key := rateLimitKeyPrefix + ip

	pipe := rl.redisClient.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	ttlCmd := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("redis pipeline failed: %w", err)
	}

	if ttl := ttlCmd.Val(); ttl < 0 {
		if err := rl.redisClient.Expire(ctx, key, rl.window).Err(); err != nil {
			rl.logger.ErrorContext(ctx, "Failed to set expiry on rate limit key", "key", key, "error", err)
		}
	}
	return incrCmd.Val() <= rl.windowLimit(), nil
}

func (rl *RateLimiterMiddleware) allowLocal(ip string) bool {
	v, _ := rl.limiters.LoadOrStore(ip, &localLimiter{
		limiter: rate.NewLimiter(rate.Limit(rl.cfg.RPS), rl.cfg.Burst),
	})
	l := v.(*localLimiter)
	l.mu.Lock()
	l.lastSeen = time.Now()
	l.mu.Unlock()
	return l.limiter.Allow()
}

// PruneIdle drops in-process limiters not used within idle.
func (rl *RateLimiterMiddleware) PruneIdle(idle time.Duration) int {
	cutoff := time.Now().Add(-idle)
	pruned := 0
	rl.limiters.Range(func(key, value any) bool {
		l := value.(*localLimiter)
		l.mu.Lock()
		stale := l.lastSeen.Before(cutoff)
		l.mu.Unlock()
		if stale {
			rl.limiters.Delete(key)
			pruned++
		}
		return true
	})
	return pruned
}

// RunPruner prunes idle limiters until ctx is done.
func (rl *RateLimiterMiddleware) RunPruner(ctx context.Context) {
	if rl.redisClient != nil || !rl.cfg.Enabled {
		return
	}
	ticker := time.NewTicker(localLimiterIdleTTL)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := rl.PruneIdle(localLimiterIdleTTL); n > 0 {
				rl.logger.Debug("Pruned idle rate limiters", "count", n)
			}
		}
	}
}

func (rl *RateLimiterMiddleware) Middleware(next http.Handler) http.Handler {
	if !rl.IsEnabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.extractIP(r)
		if ip == "unknown" {
			rl.logger.ErrorContext(r.Context(), "Blocking request due to unknown client IP", "remoteAddr", r.RemoteAddr)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		allowed := true
		if rl.redisClient != nil {
			ok, err := rl.allowRedis(r.Context(), ip)
			if err != nil {
				rl.logger.ErrorContext(r.Context(), "Rate limit check failed, allowing request", "ip", ip, "error", err)
			} else {
				allowed = ok
			}
		} else {
			allowed = rl.allowLocal(ip)
		}

		if !allowed {
			rl.logger.WarnContext(r.Context(), "Rate limit exceeded", "ip", ip)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", fmt.Sprintf("%.0f", rl.window.Seconds()))
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{
					"message": "Rate limit exceeded",
				},
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
