package identity

import "time"

// RateLimitWindow, RateLimitThreshold and RateLimitLockout implement
// spec.md §3/§5's literal constants: a 15-minute failure window, a
// 5-failure threshold, and a 15-minute lockout.
const (
	RateLimitWindow    = 15 * time.Minute
	RateLimitThreshold = 5
	RateLimitLockout   = 15 * time.Minute
)

// RateLimitEntry tracks failed login attempts for one username, per
// spec.md §3.
type RateLimitEntry struct {
	Identifier      string
	FailedAttempts  int
	WindowStart     time.Time
	LockedUntil     time.Time // zero value means "not locked"
}

// Locked reports whether the entry is currently under lockout.
func (e *RateLimitEntry) Locked(now time.Time) bool {
	return !e.LockedUntil.IsZero() && now.Before(e.LockedUntil)
}

// RecordFailure increments the failure counter, resetting window if it
// has expired, and engages a lockout once threshold failures have
// landed inside it. window/threshold/lockout are normally Service's
// configured rate-limit parameters, defaulting to RateLimitWindow,
// RateLimitThreshold and RateLimitLockout.
func (e *RateLimitEntry) RecordFailure(now time.Time, window time.Duration, threshold int, lockout time.Duration) {
	if e.WindowStart.IsZero() || now.Sub(e.WindowStart) > window {
		e.WindowStart = now
		e.FailedAttempts = 0
	}
	e.FailedAttempts++
	if e.FailedAttempts >= threshold {
		e.LockedUntil = now.Add(lockout)
	}
}

// Reset clears all failure state after a successful login.
func (e *RateLimitEntry) Reset() {
	e.FailedAttempts = 0
	e.WindowStart = time.Time{}
	e.LockedUntil = time.Time{}
}
