package httpapi

import (
	"math"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig holds rate limiting configuration for the API.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit. Zero disables limiting.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// RateLimiter is a token bucket shared by every client of the server.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a rate limiter, or returns nil when cfg disables limiting.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.RequestsPerSecond <= 0 {
		return nil
	}
	burst := cfg.BurstSize
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
	}
}

// Allow takes a token if one is available. Otherwise it reports how long
// the caller should wait before retrying, and takes nothing.
func (r *RateLimiter) Allow(now time.Time) (bool, time.Duration) {
	if r == nil {
		return true, 0
	}

	res := r.limiter.ReserveN(now, 1)
	if !res.OK() {
		return false, time.Second
	}
	delay := res.DelayFrom(now)
	if delay == 0 {
		return true, 0
	}
	res.CancelAt(now)
	return false, delay
}

// retryAfterSeconds rounds a delay up to whole seconds for the Retry-After header.
func retryAfterSeconds(d time.Duration) int {
	s := int(math.Ceil(d.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}
