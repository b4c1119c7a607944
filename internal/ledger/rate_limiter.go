package ledger

import (
	"sync"
	"time"
)

// RateLimiter caps ingestion requests per client over a fixed window. A
// zero limit disables limiting entirely.
type RateLimiter struct {
	mu        sync.Mutex
	perClient map[string]*clientRate
	limit     int
	window    time.Duration
}

type clientRate struct {
	count       int
	windowStart time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		return &RateLimiter{limit: 0}
	}
	return &RateLimiter{
		perClient: map[string]*clientRate{},
		limit:     limit,
		window:    window,
	}
}

func (r *RateLimiter) Allow(client string) (bool, time.Duration) {
	if r == nil || r.limit == 0 {
		return true, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	state, ok := r.perClient[client]
	if !ok {
		state = &clientRate{windowStart: now}
		r.perClient[client] = state
	}
	if now.Sub(state.windowStart) >= r.window {
		state.windowStart = now
		state.count = 0
	}
	if state.count >= r.limit {
		return false, state.windowStart.Add(r.window).Sub(now)
	}
	state.count++
	return true, 0
}
