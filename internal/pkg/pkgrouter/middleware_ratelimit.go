package pkgrouter

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/officialforloop/summary-report/internal/pkg/pkgerror"
	"golang.org/x/time/rate"
)

var errTooManyRequests = pkgerror.NewBusiness("too many requests", pkgerror.CodeTooManyRequests)

// RateLimiter decides whether a request keyed by key may proceed.
type RateLimiter interface {
	Allow(key string) bool
}

type tokenBucketLimiter struct {
	limiters        *ttlcache.Cache[string, *rate.Limiter]
	refillPerSecond float64
	burst           int
}

// NewTokenBucketLimiter returns a per-key token bucket limiter and a stop
// function that releases the background expiry goroutine.
//
// Idle keys are evicted after idleTTL so the limiter map stays bounded.
func NewTokenBucketLimiter(refillPerSecond float64, burst int, idleTTL time.Duration) (RateLimiter, func()) {
	if burst < 1 {
		burst = 1
	}
	if idleTTL <= 0 {
		idleTTL = 30 * time.Minute
	}

	cache := ttlcache.New[string, *rate.Limiter](
		ttlcache.WithTTL[string, *rate.Limiter](idleTTL),
	)
	go cache.Start()

	return &tokenBucketLimiter{
		limiters:        cache,
		refillPerSecond: refillPerSecond,
		burst:           burst,
	}, cache.Stop
}

func (l *tokenBucketLimiter) Allow(key string) bool {
	item, _ := l.limiters.GetOrSet(key, rate.NewLimiter(rate.Limit(l.refillPerSecond), l.burst))
	return item.Value().Allow()
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// MiddlewareRateLimit rejects requests with 429 once the caller's IP has
// exhausted its bucket. A nil limiter disables limiting.
func MiddlewareRateLimit(limiter RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !limiter.Allow(ip) {
				slog.WarnContext(r.Context(), "rate limit exceeded", "ip", ip, "path", r.URL.Path)
				w.Header().Set("Retry-After", "1")
				writeError(r.Context(), w, errTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
