package run

import (
	"math"
	"time"
)

// RetryPolicy decides what happens after the n-th consecutive failed refresh
// (n starts at 1). It returns how long to wait before the next attempt, or
// ok == false to give up.
type RetryPolicy interface {
	Next(n uint) (delay time.Duration, ok bool)
}

// RetryFunc adapts a function to RetryPolicy.
type RetryFunc func(n uint) (time.Duration, bool)

func (f RetryFunc) Next(n uint) (time.Duration, bool) { return f(n) }

// Forever retries on the very next loop iteration, without limit. The display
// has no other way to report errors, so it just keeps trying.
var Forever RetryPolicy = RetryFunc(func(uint) (time.Duration, bool) { return 0, true })

// Limit retries immediately, giving up after max consecutive failures.
func Limit(max uint) RetryPolicy {
	return RetryFunc(func(n uint) (time.Duration, bool) { return 0, n < max })
}

// Backoff doubles the delay after each failure, starting from Initial and
// capped at Max. A zero MaxRetries never gives up.
type Backoff struct {
	Initial    time.Duration
	Max        time.Duration
	MaxRetries uint
}

func (b Backoff) Next(n uint) (time.Duration, bool) {
	if b.MaxRetries > 0 && n >= b.MaxRetries {
		return 0, false
	}
	delay := b.Initial
	for i := uint(1); i < n; i++ {
		if delay > math.MaxInt64/2 {
			delay = math.MaxInt64
			break
		}
		delay <<= 1
	}
	if b.Max > 0 && delay > b.Max {
		delay = b.Max
	}
	return delay, true
}
