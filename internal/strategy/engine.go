package strategy

import (
	"fmt"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wavepilot/internal/control"
)

// Unit is one wave's worth of scripted play. Fn is opaque to the engine: it
// may place traps, nest WaitGold calls, or do nothing. The engine's only
// contract is to call units in order, each after its wave has been observed.
// Fn is expected to check the token at its own start and return early on
// cancellation; the engine does not interrupt a running unit.
type Unit struct {
	Name string
	Wave int // Wave that must be observed before Fn runs; <= 1 runs at game start
	Fn   func() error
}

// State is the engine's externally observable phase.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateEnded
	StateCancelled
	StateFailed
)

// String returns the lowercase state name for logs and the TUI.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateEnded:
		return "ended"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of one engine run.
type Outcome int

const (
	// OutcomeEnded means every unit ran and the end-of-match indicator was
	// observed.
	OutcomeEnded Outcome = iota

	// OutcomeCancelled means a stop request unwound the run early. Not an
	// error: already-issued actions stand, no further units run.
	OutcomeCancelled

	// OutcomeFailed means a unit returned an error. The engine halts wave
	// progression without retrying.
	OutcomeFailed
)

// Result reports how a run terminated. Unit and Err are set for OutcomeFailed.
type Result struct {
	Outcome Outcome
	Unit    string
	Err     error
}

// Engine executes an ordered unit list against the observed game state:
// Idle → Running → (Ended | Cancelled | Failed). Between units it blocks in
// WaitWave, so no unit starts before the game has visibly reached its wave.
type Engine struct {
	units  []Unit
	waiter *Waiter
	token  *control.Token
	logger *log.Logger

	state       atomic.Int32
	currentUnit atomic.Int32 // index into units while running, -1 otherwise
}

// NewEngine validates the unit sequence and builds an engine. Units must be
// in non-decreasing wave order: the sequence is a first-class data structure
// and a misordered one is a strategy-authoring bug surfaced at build time,
// not mid-game.
func NewEngine(units []Unit, waiter *Waiter, token *control.Token, logger *log.Logger) (*Engine, error) {
	if len(units) == 0 {
		return nil, fmt.Errorf("strategy: no units registered")
	}
	for i, u := range units {
		if u.Fn == nil {
			return nil, fmt.Errorf("strategy: unit %q has no function", u.Name)
		}
		if i > 0 && u.Wave < units[i-1].Wave {
			return nil, fmt.Errorf("strategy: unit %q (wave %d) ordered after wave %d",
				u.Name, u.Wave, units[i-1].Wave)
		}
	}
	if logger == nil {
		logger = log.Default()
	}
	e := &Engine{
		units:  units,
		waiter: waiter,
		token:  token,
		logger: logger.WithPrefix("engine"),
	}
	e.currentUnit.Store(-1)
	return e, nil
}

// State returns the engine's current phase. Safe from any goroutine.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// CurrentUnit returns the name of the unit in flight, or "" when idle or done.
func (e *Engine) CurrentUnit() string {
	i := e.currentUnit.Load()
	if i < 0 || int(i) >= len(e.units) {
		return ""
	}
	return e.units[i].Name
}

// Units returns the registered sequence, for inspection and listing.
func (e *Engine) Units() []Unit {
	out := make([]Unit, len(e.units))
	copy(out, e.units)
	return out
}

// Run executes the sequence to a terminal state. Blocking; call from the one
// goroutine that owns input injection.
func (e *Engine) Run() Result {
	e.state.Store(int32(StateRunning))
	defer e.currentUnit.Store(-1)

	for i, u := range e.units {
		if e.token.ShouldStop() {
			return e.cancelled(u.Name)
		}

		// Gate on the wave being observably reached. Units at wave <= 1 run
		// immediately after game start; a skipped wave still unblocks thanks
		// to >= wait semantics.
		if u.Wave >= 2 {
			if !e.waiter.WaitWave(u.Wave) {
				return e.cancelled(u.Name)
			}
		}
		if e.token.ShouldStop() {
			return e.cancelled(u.Name)
		}

		e.currentUnit.Store(int32(i))
		e.logger.Info("running unit", "unit", u.Name, "wave", u.Wave)
		if err := u.Fn(); err != nil {
			e.state.Store(int32(StateFailed))
			e.logger.Error("unit failed", "unit", u.Name, "wave", u.Wave, "err", err)
			return Result{
				Outcome: OutcomeFailed,
				Unit:    u.Name,
				Err:     fmt.Errorf("strategy: unit %q (wave %d): %w", u.Name, u.Wave, err),
			}
		}
	}

	if !e.waiter.WaitGameEnd() {
		return e.cancelled("")
	}

	e.state.Store(int32(StateEnded))
	e.logger.Info("match ended")
	return Result{Outcome: OutcomeEnded}
}

func (e *Engine) cancelled(unit string) Result {
	e.state.Store(int32(StateCancelled))
	e.logger.Info("run cancelled", "before_unit", unit)
	return Result{Outcome: OutcomeCancelled}
}
