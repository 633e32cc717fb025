package middlewares

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/sp1ral-dev/veridian/internal/http/errors"
)

// clientIP extrae la IP del cliente, considerando proxies.
func clientIP(r *http.Request) string {
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		parts := strings.Split(xf, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

// ipLimiter mantiene un token bucket por IP con expiración perezosa.
type ipLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucketEntry
	rps     rate.Limit
	burst   int
	ttl     time.Duration
}

type bucketEntry struct {
	lim  *rate.Limiter
	seen time.Time
}

func newIPLimiter(rps float64, burst int) *ipLimiter {
	return &ipLimiter{
		buckets: make(map[string]*bucketEntry),
		rps:     rate.Limit(rps),
		burst:   burst,
		ttl:     10 * time.Minute,
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	e, ok := l.buckets[ip]
	if !ok {
		// barrido perezoso para que el mapa no crezca sin límite
		if len(l.buckets) > 10_000 {
			for k, v := range l.buckets {
				if now.Sub(v.seen) > l.ttl {
					delete(l.buckets, k)
				}
			}
		}
		e = &bucketEntry{lim: rate.NewLimiter(l.rps, l.burst)}
		l.buckets[ip] = e
	}
	e.seen = now
	return e.lim.Allow()
}

// RateLimitConfig configura el middleware de rate limiting por IP.
type RateLimitConfig struct {
	RPS       float64
	Burst     int
	Whitelist []string // Paths excluidos (ej: /healthz, /metrics)
}

// WithRateLimit limita requests por IP con un token bucket.
// Con RPS <= 0 el middleware es un passthrough.
func WithRateLimit(cfg RateLimitConfig) Middleware {
	if cfg.RPS <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if cfg.Burst <= 0 {
		cfg.Burst = int(cfg.RPS)
		if cfg.Burst < 1 {
			cfg.Burst = 1
		}
	}

	whitelistSet := make(map[string]struct{}, len(cfg.Whitelist))
	for _, p := range cfg.Whitelist {
		whitelistSet[p] = struct{}{}
	}

	limiter := newIPLimiter(cfg.RPS, cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := whitelistSet[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}
			if !limiter.allow(clientIP(r)) {
				w.Header().Set("Retry-After", "1")
				errors.WriteError(w, errors.ErrRateLimitExceeded)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
