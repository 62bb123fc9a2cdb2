// Package ratelimit implements per-address admission control over a trailing
// time window.
package ratelimit

import (
	"sync"
	"time"
)

// Result reports the admission decision for one request.
type Result struct {
	Allowed    bool
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration // zero when allowed
}

// Limiter admits at most max requests per address within a trailing window.
// Timestamp lists live in process memory: entries are pruned lazily on the
// next access to their address, and idle addresses are only reclaimed by a
// time-gated sweep, so the map is a process-lifetime resource.
//
// Limiter is an injected dependency, not a package singleton; the server owns
// exactly one instance. It is safe for concurrent use.
type Limiter struct {
	max    int
	window time.Duration
	now    func() time.Time // swapped in tests

	mu        sync.Mutex
	clients   map[string][]time.Time
	lastSweep time.Time
}

// New creates a Limiter admitting max requests per window for each address.
func New(max int, window time.Duration) *Limiter {
	return &Limiter{
		max:     max,
		window:  window,
		now:     time.Now,
		clients: make(map[string][]time.Time),
	}
}

// Check records one request attempt from addr and reports whether it is
// admitted. Prune, decide and append happen under one lock, so the number of
// admitted timestamps for an address can never exceed max.
func (l *Limiter) Check(addr string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	windowStart := now.Add(-l.window)

	l.sweepLocked(now, windowStart)

	// Prune in place on the shared backing array.
	valid := l.clients[addr][:0]
	for _, ts := range l.clients[addr] {
		if ts.After(windowStart) {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= l.max {
		l.clients[addr] = valid
		reset := valid[0].Add(l.window) // oldest surviving timestamp ages out then
		return Result{
			Allowed:    false,
			Remaining:  0,
			ResetAt:    reset,
			RetryAfter: reset.Sub(now),
		}
	}

	valid = append(valid, now)
	l.clients[addr] = valid
	return Result{
		Allowed:   true,
		Remaining: l.max - len(valid),
		ResetAt:   now.Add(l.window),
	}
}

// sweepLocked deletes addresses with no request inside the current window.
// It runs at most once per window so a busy limiter does not pay for a full
// map scan on every check.
func (l *Limiter) sweepLocked(now, windowStart time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now
	for addr, timestamps := range l.clients {
		if len(timestamps) == 0 || !timestamps[len(timestamps)-1].After(windowStart) {
			delete(l.clients, addr)
		}
	}
}
