package http

import (
	"sync"

	"golang.org/x/time/rate"
)

// KeyLimiter provides per-API-key rate limiting using token buckets.
// Each key gets its own limiter so one caller cannot starve another.
type KeyLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// NewKeyLimiter creates a KeyLimiter allowing rps requests per second per
// key with the given burst. A non-positive rps disables limiting.
func NewKeyLimiter(rps float64, burst int) *KeyLimiter {
	if burst < 1 {
		burst = 1
	}
	return &KeyLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    burst,
	}
}

// Allow reports whether a request for key may proceed now.
func (l *KeyLimiter) Allow(key string) bool {
	if l == nil || l.rps <= 0 {
		return true
	}

	l.mu.Lock()
	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), l.burst)
		l.limiters[key] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}
