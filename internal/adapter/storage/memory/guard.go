package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"payment-webhook-bridge/internal/core/ports"
)

// EventGuard implements ports.EventGuard with an expiring set.
type EventGuard struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

// NewEventGuard creates an empty guard.
func NewEventGuard() *EventGuard {
	return &EventGuard{expires: make(map[string]time.Time), now: time.Now}
}

func (g *EventGuard) Claim(_ context.Context, eventID string, ttl time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if exp, ok := g.expires[eventID]; ok && now.Before(exp) {
		return false, nil
	}
	g.expires[eventID] = now.Add(ttl)
	return true, nil
}

func (g *EventGuard) Release(_ context.Context, eventID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.expires, eventID)
	return nil
}

// PurgeExpired drops claims past their TTL.
func (g *EventGuard) PurgeExpired(context.Context) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var n int64
	now := g.now()
	for id, exp := range g.expires {
		if !now.Before(exp) {
			delete(g.expires, id)
			n++
		}
	}
	return n, nil
}

// RateLimiter implements ports.RateLimiter with fixed windows in process memory.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]int64
	now     func() time.Time
}

// NewRateLimiter creates an empty limiter.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{windows: make(map[string]int64), now: time.Now}
}

func (l *RateLimiter) Allow(_ context.Context, key string, limit int64, window time.Duration) (*ports.RateLimitResult, error) {
	seconds := int64(window.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	windowID := l.now().Unix() / seconds

	l.mu.Lock()
	defer l.mu.Unlock()

	wk := windowKey(key, windowID)
	l.windows[wk]++
	count := l.windows[wk]
	if count == 1 {
		l.evict(key, windowID)
	}

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return &ports.RateLimitResult{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   (windowID + 1) * seconds,
	}, nil
}

// evict drops the previous window of key once a new one opens.
func (l *RateLimiter) evict(key string, windowID int64) {
	delete(l.windows, windowKey(key, windowID-1))
}

func windowKey(key string, windowID int64) string {
	return key + "#" + strconv.FormatInt(windowID, 10)
}
