package services

import (
	"sync"
	"time"

	"github.com/keaton678/research-hub/domain"
)

// SlidingWindowLimiter implements domain.RateLimiter with a per-key
// sliding window of attempt timestamps. Denied checks are not recorded,
// so a client cannot extend its own lockout by retrying.
type SlidingWindowLimiter struct {
	mu          sync.Mutex
	attempts    map[string][]time.Time
	maxAttempts int
	window      time.Duration
	now         func() time.Time
}

// NewSlidingWindowLimiter creates a limiter allowing maxAttempts per key
// within window.
func NewSlidingWindowLimiter(maxAttempts int, window time.Duration) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		attempts:    make(map[string][]time.Time),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
	}
}

// Check implements domain.RateLimiter. An allowed check counts as an
// attempt.
func (l *SlidingWindowLimiter) Check(key string) domain.RateDecision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.attempts[key][:0]
	for _, t := range l.attempts[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= l.maxAttempts {
		l.attempts[key] = recent
		retryAfter := int((recent[0].Add(l.window).Sub(now) + time.Second - 1) / time.Second)
		if retryAfter < 1 {
			retryAfter = 1
		}
		return domain.RateDecision{Allowed: false, RetryAfter: retryAfter}
	}

	l.attempts[key] = append(recent, now)
	return domain.RateDecision{Allowed: true}
}

// Sweep drops keys whose attempts have all aged out of the window. Run it
// periodically so idle keys do not accumulate.
func (l *SlidingWindowLimiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	for key, times := range l.attempts {
		live := false
		for _, t := range times {
			if t.After(cutoff) {
				live = true
				break
			}
		}
		if !live {
			delete(l.attempts, key)
		}
	}
}
