package authz

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyRequests is returned by rate limiters when a caller exceeds
// its budget.
var ErrTooManyRequests = errors.New("rate limit exceeded")

// RateLimiter checks whether an allowed request should still proceed,
// based on the decision's tenant plan tier.
type RateLimiter interface {
	Allow(ctx context.Context, d Decision) error
}

// TierConfig holds rate limit settings for a tenant plan tier.
type TierConfig struct {
	RequestsPerMinute int
}

// InProcessLimiter is a simple sliding-window rate limiter that tracks
// request counts per principal in memory. Budgets come from the tenant's
// plan tier.
type InProcessLimiter struct {
	tiers      map[string]TierConfig
	defaultRPM int
	mu         sync.Mutex
	counters   map[string]*counter
}

type counter struct {
	count    int
	windowAt time.Time
}

// NewInProcessLimiter creates a rate limiter with per-tier configuration.
func NewInProcessLimiter(tiers map[string]TierConfig, defaultRPM int) *InProcessLimiter {
	return &InProcessLimiter{
		tiers:      tiers,
		defaultRPM: defaultRPM,
		counters:   make(map[string]*counter),
	}
}

// Allow checks if the request is within the tenant plan's budget.
// Anonymous requests are counted against the tenant as a whole.
// Fails open: a missing tenant in the decision allows the request.
func (l *InProcessLimiter) Allow(_ context.Context, d Decision) error {
	if d.Tenant == nil {
		return nil
	}

	tier := d.Tenant.PlanTier
	if tier == "" {
		tier = "default"
	}

	rpm := l.defaultRPM
	if tc, ok := l.tiers[tier]; ok {
		rpm = tc.RequestsPerMinute
	}

	if rpm <= 0 {
		return nil // no limit
	}

	key := d.Tenant.ID
	if d.Principal != nil {
		key += ":" + d.Principal.Subject
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	c, ok := l.counters[key]
	if !ok || now.Sub(c.windowAt) >= time.Minute {
		// New window.
		l.counters[key] = &counter{count: 1, windowAt: now}
		return nil
	}

	c.count++
	if c.count > rpm {
		return ErrTooManyRequests
	}

	return nil
}
