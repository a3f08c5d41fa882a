package geocode

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/bstardust/photo-evidence/internal/gps"
)

// Throttled paces lookups so the upstream service sees at most one
// request per interval, whichever worker issues it.
type Throttled struct {
	inner   Resolver
	limiter *rate.Limiter
}

// NewThrottled wraps inner with a rate limit of one lookup per interval.
func NewThrottled(inner Resolver, interval time.Duration) *Throttled {
	if interval <= 0 {
		return &Throttled{inner: inner, limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Throttled{inner: inner, limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// ResolveAddress implements Resolver.
func (t *Throttled) ResolveAddress(ctx context.Context, c gps.Coordinates) string {
	if err := t.limiter.Wait(ctx); err != nil {
		return FallbackAddress(c)
	}
	return t.inner.ResolveAddress(ctx, c)
}
