package assist

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter enforces a per-second request rate against the remediation
// provider using a token-bucket algorithm.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a rate limiter allowing requestsPerSecond calls,
// bursting up to the same amount. A requestsPerSecond of 0 means
// unlimited.
func NewRateLimiter(requestsPerSecond float64) *RateLimiter {
	if requestsPerSecond <= 0 {
		return &RateLimiter{}
	}
	burst := int(requestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

// Allow blocks until a request may proceed or ctx is done. It returns nil
// immediately when rate limiting is disabled.
func (rl *RateLimiter) Allow(ctx context.Context) error {
	if rl.limiter == nil {
		return nil
	}
	return rl.limiter.Wait(ctx)
}
