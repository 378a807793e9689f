package core

import (
	"sync"
	"sync/atomic"
	"time"
)

var (
	coarseClockOnce sync.Once
	coarseNow       atomic.Pointer[time.Time]
)

// Clock returns the timestamp a sink stamps on a record.
type Clock func() time.Time

// StartCoarseClock starts the background goroutine that caches
// time.Now() every 500µs. It is safe to call multiple times; the
// goroutine is started exactly once and runs for the lifetime of the
// process.
func StartCoarseClock() {
	coarseClockOnce.Do(func() {
		t := time.Now()
		coarseNow.Store(&t)
		go func() {
			ticker := time.NewTicker(500 * time.Microsecond)
			for range ticker.C {
				t := time.Now()
				coarseNow.Store(&t)
			}
		}()
	})
}

// CoarseNow returns the most recently cached time.Time value.
// StartCoarseClock must have been called before using CoarseNow.
func CoarseNow() time.Time {
	return *coarseNow.Load()
}

// NewClock returns CoarseNow (starting the clock) when coarse is true and
// time.Now otherwise. Sinks use it to stamp records; microsecond output
// with a coarse clock is only accurate to 500µs.
func NewClock(coarse bool) Clock {
	if coarse {
		StartCoarseClock()
		return CoarseNow
	}
	return time.Now
}
