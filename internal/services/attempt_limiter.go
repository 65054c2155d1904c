package services

import (
	"sync"
	"time"

	"github.com/juju/errors"
)

var ErrTooManyAttempts = errors.Unauthorizedf("repeated failed attempts")

// AttemptLimiter counts failures per key inside a sliding window. A nil
// limiter, or one with a non-positive limit, never blocks.
type AttemptLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	limit    int
	window   time.Duration
	now      func() time.Time
}

func NewAttemptLimiter(limit int, window time.Duration) *AttemptLimiter {
	return &AttemptLimiter{
		attempts: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

func (limiter *AttemptLimiter) enabled() bool {
	return limiter != nil && limiter.limit > 0 && limiter.window > 0
}

// Check returns ErrTooManyAttempts while key has reached the limit.
func (limiter *AttemptLimiter) Check(key string) error {
	if !limiter.enabled() {
		return nil
	}
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	if len(limiter.pruneLocked(key, limiter.now())) >= limiter.limit {
		return errors.Annotatef(ErrTooManyAttempts, "%s", key)
	}
	return nil
}

func (limiter *AttemptLimiter) Fail(key string) {
	if !limiter.enabled() {
		return
	}
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	now := limiter.now()
	limiter.attempts[key] = append(limiter.pruneLocked(key, now), now)
}

func (limiter *AttemptLimiter) Reset(key string) {
	if !limiter.enabled() {
		return
	}
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	delete(limiter.attempts, key)
}

func (limiter *AttemptLimiter) pruneLocked(key string, now time.Time) []time.Time {
	values := limiter.attempts[key]
	if len(values) == 0 {
		return []time.Time{}
	}

	threshold := now.Add(-limiter.window)
	pruned := make([]time.Time, 0, len(values))
	for _, value := range values {
		if value.After(threshold) {
			pruned = append(pruned, value)
		}
	}

	if len(pruned) == 0 {
		delete(limiter.attempts, key)
		return []time.Time{}
	}

	limiter.attempts[key] = pruned
	return pruned
}
