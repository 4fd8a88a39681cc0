// Package ratelimit builds the minimum-interval gate applied to every FMC
// API call.
package ratelimit

import (
	"time"

	"golang.org/x/time/rate"
)

// NewLimiter creates a rate limiter enforcing a minimum spacing of
// 60s/maxPerMinute between calls. Burst capacity is 1, so the limiter
// smooths bursts into even spacing instead of admitting them; callers are
// delayed, never rejected.
func NewLimiter(maxPerMinute int) *rate.Limiter {
	if maxPerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}

	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(maxPerMinute)), 1)
}
