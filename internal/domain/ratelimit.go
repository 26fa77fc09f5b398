package domain

import "time"

// RateLimitRecord fixed-window request counter for one client identity
type RateLimitRecord struct {
	ClientID    string    `json:"-"`
	Count       int       `json:"count"`
	WindowStart time.Time `json:"windowStart"`
}

// WindowExpired returns true if the record's window has elapsed at the given time
func (r *RateLimitRecord) WindowExpired(now time.Time, windowMinutes int) bool {
	return now.Sub(r.WindowStart) >= time.Duration(windowMinutes)*time.Minute
}

// RetryAfter returns how long the client has to wait until the window resets
func (r *RateLimitRecord) RetryAfter(now time.Time, windowMinutes int) time.Duration {
	remaining := r.WindowStart.Add(time.Duration(windowMinutes) * time.Minute).Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
