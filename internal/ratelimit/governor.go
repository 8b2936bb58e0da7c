// Package ratelimit provides the rate governor enforcing a minimum delay
// between consecutive calls to one exchange's API. Each exchange source owns
// its own governor; there is no cross-exchange coupling.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Governor paces requests so consecutive calls to the same exchange are at
// least one interval apart. Violating an exchange's spacing risks throttling
// or a temporary ban, not incorrect data.
type Governor struct {
	limiter *rate.Limiter
}

// New creates a governor with the given minimum inter-request interval.
// A non-positive interval disables pacing.
func New(minInterval time.Duration) *Governor {
	if minInterval <= 0 {
		return &Governor{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Governor{limiter: rate.NewLimiter(rate.Every(minInterval), 1)}
}

// Wait blocks until the next request is allowed or the context is done.
func (g *Governor) Wait(ctx context.Context) error {
	return g.limiter.Wait(ctx)
}
