package application

import (
	"fmt"
	"sync"
	"time"

	"github.com/Maxito7/studio_backend/internal/domain"
)

// RateLimitEntry is the counter for one identifier in the current window.
type RateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

// RateLimiter is a fixed-window limiter keyed by an arbitrary identifier,
// usually the client IP. Expired entries are dropped by Cleanup, which the
// janitor calls periodically.
type RateLimiter struct {
	limits map[string]*RateLimitEntry
	mu     sync.RWMutex
	window time.Duration
	limit  int
	now    func() time.Time
}

// NewRateLimiter allows limit requests per window for each identifier.
// A non-positive limit disables limiting.
func NewRateLimiter(window time.Duration, limit int) *RateLimiter {
	return &RateLimiter{
		limits: make(map[string]*RateLimitEntry),
		window: window,
		limit:  limit,
		now:    time.Now,
	}
}

// Allow counts a request for identifier. The returned error wraps
// domain.ErrRateLimited once the window is exhausted.
func (rl *RateLimiter) Allow(identifier string) error {
	if rl.limit <= 0 {
		return nil
	}
	if identifier == "" {
		identifier = "anonymous"
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	entry, exists := rl.limits[identifier]

	if !exists || now.After(entry.ResetTime) {
		rl.limits[identifier] = &RateLimitEntry{
			Count:     1,
			ResetTime: now.Add(rl.window),
		}
		return nil
	}

	if entry.Count >= rl.limit {
		wait := entry.ResetTime.Sub(now).Round(time.Second)
		return fmt.Errorf("%w: try again in %v", domain.ErrRateLimited, wait)
	}

	entry.Count++
	return nil
}

// GetRemaining returns how many requests identifier has left in its window.
func (rl *RateLimiter) GetRemaining(identifier string) int {
	if identifier == "" {
		identifier = "anonymous"
	}

	rl.mu.RLock()
	defer rl.mu.RUnlock()

	entry, exists := rl.limits[identifier]
	if !exists || rl.now().After(entry.ResetTime) {
		return rl.limit
	}

	remaining := rl.limit - entry.Count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Cleanup drops expired windows and reports how many were removed.
func (rl *RateLimiter) Cleanup() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	removed := 0
	for key, entry := range rl.limits {
		if now.After(entry.ResetTime) {
			delete(rl.limits, key)
			removed++
		}
	}
	return removed
}

// Size returns the number of tracked identifiers.
func (rl *RateLimiter) Size() int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	return len(rl.limits)
}
