package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"supermarket-dashboard/internal/config"
	"supermarket-dashboard/internal/errors"
	"supermarket-dashboard/internal/observability"
)

const (
	limiterIdleTTL    = time.Minute
	// RateLimitRPS is at least one, so a token is back within a second.
	retryAfterSeconds = "1"
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP. Buckets idle for longer
// than a minute are dropped by Run.
type RateLimiter struct {
	cfg config.SecurityConfig
	now func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

func NewRateLimiter(cfg config.SecurityConfig) *RateLimiter {
	return &RateLimiter{
		cfg:     cfg,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

// Allow spends one token from ip's bucket. It always allows when rate
// limiting is disabled.
func (rl *RateLimiter) Allow(ip string) bool {
	if !rl.cfg.EnableRateLimit {
		return true
	}
	return rl.bucketFor(ip).Allow()
}

func (rl *RateLimiter) bucketFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[ip]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rate.Limit(rl.cfg.RateLimitRPS), rl.cfg.RateLimitBurst)}
		rl.buckets[ip] = b
	}
	b.lastSeen = rl.now()
	return b.limiter
}

// Sweep drops buckets not used within limiterIdleTTL and reports how many remain.
func (rl *RateLimiter) Sweep() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-limiterIdleTTL)
	for ip, b := range rl.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(rl.buckets, ip)
		}
	}
	return len(rl.buckets)
}

// Run sweeps idle buckets until ctx is done.
func (rl *RateLimiter) Run(ctx context.Context) error {
	ticker := time.NewTicker(limiterIdleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			rl.Sweep()
		}
	}
}

// RateLimit rejects requests over the client's budget with a 429 envelope.
func RateLimit(limiter *RateLimiter, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if limiter.Allow(ip) {
				next.ServeHTTP(w, r)
				return
			}

			logger.Warn("rate limit exceeded",
				"ip", ip,
				"path", r.URL.Path,
				"request_id", observability.GetRequestID(r.Context()),
			)
			w.Header().Set("Retry-After", retryAfterSeconds)
			errors.WriteError(w, r, logger, errors.RateLimit("Too many requests"))
		})
	}
}
