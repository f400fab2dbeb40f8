// Package control provides the cooperative stop signal shared by every
// long-running part of a session. The perception monitor, the wait primitives,
// and each strategy unit all poll the same token; setting it stops everything
// within one polling interval without interrupting anything mid-action.
package control

import (
	"sync/atomic"
	"time"
)

// sleepSlice bounds how long a cancellable sleep can go without re-checking
// the token, which in turn bounds cancellation latency for arbitrarily long
// sleeps.
const sleepSlice = 25 * time.Millisecond

// Token is a process-wide stop flag. Zero value is ready to use.
//
// Once requested, the flag stays set until Reset, which only a new run should
// call. Safe for concurrent use from the monitor, strategy, and hotkey
// goroutines; it is a bare atomic with no compound invariants.
type Token struct {
	stop atomic.Bool
}

// RequestStop sets the flag. Idempotent.
func (t *Token) RequestStop() {
	t.stop.Store(true)
}

// ShouldStop reports whether a stop has been requested. Never blocks.
func (t *Token) ShouldStop() bool {
	return t.stop.Load()
}

// Reset clears the flag for a new run.
func (t *Token) Reset() {
	t.stop.Store(false)
}

// Sleep blocks for d or until a stop is requested, whichever comes first.
// It returns true if the full duration elapsed and false if it was cut short
// by cancellation. Every polling loop in the session sleeps through here so
// the cancellation latency bound is uniform.
func (t *Token) Sleep(d time.Duration) bool {
	deadline := time.Now().Add(d)
	for {
		if t.stop.Load() {
			return false
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return true
		}
		if remaining > sleepSlice {
			remaining = sleepSlice
		}
		time.Sleep(remaining)
	}
}
