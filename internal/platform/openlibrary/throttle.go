package openlibrary

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Throttle enforces a minimum gap between consecutive outbound Open Library
// calls. One instance is shared by every caller in the process so the gap
// holds globally, not per operation. Wait never fails except on context
// cancellation.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle creates a throttle allowing one call per minDelay with no burst.
func NewThrottle(minDelay time.Duration) *Throttle {
	return &Throttle{
		limiter: rate.NewLimiter(rate.Every(minDelay), 1),
	}
}

// Wait blocks until at least the configured delay has passed since the
// previous Wait returned.
func (t *Throttle) Wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}
