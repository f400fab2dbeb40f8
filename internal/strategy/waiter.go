// Package strategy sequences user-supplied wave logic against the observed
// game state. It provides the blocking wait primitives, the wave-ordered
// execution engine, a registry of named strategies, and the scaled-action
// helpers wave units are built from.
package strategy

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wavepilot/internal/control"
	"github.com/vovakirdan/wavepilot/internal/gamestate"
)

// DefaultPollInterval is the waiter cadence when the config leaves it unset.
// Independent of the monitor's cadence; the two sides only meet at the store.
const DefaultPollInterval = 100 * time.Millisecond

// Waiter blocks the strategy goroutine until a game-state condition holds or
// a stop is requested. All waits share one polling skeleton: check the token,
// check the latest snapshot, cancellable sleep, repeat. No condition variables
// tie it to the monitor; the fixed interval of latency buys full decoupling,
// and either side is testable against a hand-fed store.
type Waiter struct {
	store    *gamestate.Store
	token    *control.Token
	interval time.Duration
	logger   *log.Logger
}

// NewWaiter builds a waiter polling store at the given interval.
func NewWaiter(store *gamestate.Store, token *control.Token, interval time.Duration, logger *log.Logger) *Waiter {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Waiter{
		store:    store,
		token:    token,
		interval: interval,
		logger:   logger.WithPrefix("wait"),
	}
}

// WaitWave blocks until the observed wave reaches target. The comparison is
// >=, never ==: the monitor can miss an intermediate value entirely (wave 1
// straight to 3 on a skipped read) and an equality wait would hang forever.
// Returns true when the condition was observed, false when cancelled first;
// that is a normal outcome, not an error, and callers re-check the token
// themselves.
func (w *Waiter) WaitWave(target int) bool {
	w.logger.Info("waiting for wave", "target", target)
	return w.waitFor(func(s gamestate.Snapshot) bool { return s.Wave >= target })
}

// WaitGold blocks until the observed gold reaches target, with the same
// >= semantics and cancellation behavior as WaitWave.
func (w *Waiter) WaitGold(target int) bool {
	w.logger.Info("waiting for gold", "target", target)
	return w.waitFor(func(s gamestate.Snapshot) bool { return s.Gold >= target })
}

// WaitGameEnd blocks until an end-of-match indicator has been observed.
func (w *Waiter) WaitGameEnd() bool {
	w.logger.Info("waiting for game end")
	return w.waitFor(func(s gamestate.Snapshot) bool { return s.Ended })
}

// waitFor is the shared polling skeleton. Cancellation is checked as the very
// first action, and the condition before the first sleep, so an
// already-satisfied wait returns without blocking at all.
func (w *Waiter) waitFor(cond func(gamestate.Snapshot) bool) bool {
	for {
		if w.token.ShouldStop() {
			w.logger.Info("stop requested, abandoning wait")
			return false
		}
		if cond(w.store.Snapshot()) {
			return true
		}
		if !w.token.Sleep(w.interval) {
			w.logger.Info("stop requested, abandoning wait")
			return false
		}
	}
}
