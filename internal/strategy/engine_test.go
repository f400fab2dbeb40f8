package strategy

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wavepilot/internal/control"
	"github.com/vovakirdan/wavepilot/internal/gamestate"
	"github.com/vovakirdan/wavepilot/internal/input"
)

type runLog struct {
	mu      sync.Mutex
	entries []string
}

func (l *runLog) add(s string) {
	l.mu.Lock()
	l.entries = append(l.entries, s)
	l.mu.Unlock()
}

func (l *runLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

func newEngineForTest(t *testing.T, units []Unit, store *gamestate.Store, token *control.Token) *Engine {
	t.Helper()
	waiter := NewWaiter(store, token, 5*time.Millisecond, log.New(io.Discard))
	e, err := NewEngine(units, waiter, token, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestEngineRejectsMisorderedUnits(t *testing.T) {
	store := gamestate.NewStore()
	var token control.Token
	waiter := NewWaiter(store, &token, time.Millisecond, log.New(io.Discard))

	_, err := NewEngine([]Unit{
		{Name: "wave-3", Wave: 3, Fn: func() error { return nil }},
		{Name: "wave-1", Wave: 1, Fn: func() error { return nil }},
	}, waiter, &token, log.New(io.Discard))
	if err == nil {
		t.Error("misordered unit sequence accepted")
	}

	if _, err := NewEngine(nil, waiter, &token, log.New(io.Discard)); err == nil {
		t.Error("empty unit sequence accepted")
	}
}

// TestOrderingInvariant drives a 3-unit strategy and checks that unit i never
// begins before wave i is observable, and that delaying wave detection delays
// the unit start by the same amount (within one poll interval of slack).
func TestOrderingInvariant(t *testing.T) {
	store := gamestate.NewStore()
	w := store.Writer()
	var token control.Token

	var lg runLog
	waveAt := make(map[int]time.Time) // unit wave -> start time
	var waveAtMu sync.Mutex

	unit := func(n int) Unit {
		name := []string{"", "opening", "midgame", "cleanup"}[n]
		return Unit{Name: name, Wave: n, Fn: func() error {
			waveAtMu.Lock()
			waveAt[n] = time.Now()
			waveAtMu.Unlock()
			if store.Snapshot().Wave < n && n >= 2 {
				t.Errorf("unit %d started with wave %d", n, store.Snapshot().Wave)
			}
			lg.add(name)
			return nil
		}}
	}

	e := newEngineForTest(t, []Unit{unit(1), unit(2), unit(3)}, store, &token)

	const detectionDelay = 60 * time.Millisecond
	start := time.Now()
	go func() {
		w.SetWave(1)
		time.Sleep(detectionDelay)
		w.SetWave(2)
		time.Sleep(detectionDelay)
		w.SetWave(3)
		time.Sleep(detectionDelay)
		w.SetEnded()
	}()

	res := e.Run()
	if res.Outcome != OutcomeEnded {
		t.Fatalf("outcome = %v, want OutcomeEnded", res.Outcome)
	}
	if e.State() != StateEnded {
		t.Errorf("state = %v, want ended", e.State())
	}

	got := lg.snapshot()
	want := []string{"opening", "midgame", "cleanup"}
	if len(got) != len(want) {
		t.Fatalf("units ran %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("units ran %v, want %v", got, want)
		}
	}

	// Unit 2's start should track wave-2 detection time, one poll of slack.
	waveAtMu.Lock()
	u2 := waveAt[2].Sub(start)
	waveAtMu.Unlock()
	if u2 < detectionDelay-time.Millisecond {
		t.Errorf("unit 2 started %v after run start, before wave 2 was detectable (%v)", u2, detectionDelay)
	}
	if u2 > detectionDelay+100*time.Millisecond {
		t.Errorf("unit 2 started %v after run start, too long after detection (%v)", u2, detectionDelay)
	}
}

func TestEngineCancellationUnwinds(t *testing.T) {
	store := gamestate.NewStore()
	w := store.Writer()
	w.SetWave(1)
	var token control.Token

	var lg runLog
	units := []Unit{
		{Name: "first", Wave: 1, Fn: func() error {
			lg.add("first")
			token.RequestStop() // stop mid-run, like a hotkey would
			return nil
		}},
		{Name: "second", Wave: 2, Fn: func() error {
			lg.add("second")
			return nil
		}},
	}

	e := newEngineForTest(t, units, store, &token)
	res := e.Run()

	if res.Outcome != OutcomeCancelled {
		t.Fatalf("outcome = %v, want OutcomeCancelled", res.Outcome)
	}
	if e.State() != StateCancelled {
		t.Errorf("state = %v, want cancelled", e.State())
	}
	if got := lg.snapshot(); len(got) != 1 || got[0] != "first" {
		t.Errorf("units ran %v, want only [first]", got)
	}
}

func TestEngineUnitFailureHalts(t *testing.T) {
	store := gamestate.NewStore()
	w := store.Writer()
	w.SetWave(5)
	var token control.Token

	boom := errors.New("shop not found")
	var lg runLog
	units := []Unit{
		{Name: "buy", Wave: 1, Fn: func() error { return boom }},
		{Name: "after", Wave: 2, Fn: func() error { lg.add("after"); return nil }},
	}

	e := newEngineForTest(t, units, store, &token)
	res := e.Run()

	if res.Outcome != OutcomeFailed {
		t.Fatalf("outcome = %v, want OutcomeFailed", res.Outcome)
	}
	if res.Unit != "buy" {
		t.Errorf("failed unit = %q, want buy", res.Unit)
	}
	if !errors.Is(res.Err, boom) {
		t.Errorf("err = %v, want wrapped %v", res.Err, boom)
	}
	if e.State() != StateFailed {
		t.Errorf("state = %v, want failed", e.State())
	}
	if got := lg.snapshot(); len(got) != 0 {
		t.Errorf("units after failure ran: %v", got)
	}
}

// TestEndToEndScenario is the full coordination check: identity scaling, a
// 2-wave strategy, and a scripted state sequence must yield exactly the two
// placement actions and an Ended terminal state.
func TestEndToEndScenario(t *testing.T) {
	store := gamestate.NewStore()
	w := store.Writer()
	var token control.Token

	rec := input.NewRecorder()
	waiter := NewWaiter(store, &token, 5*time.Millisecond, log.New(io.Discard))

	units := []Unit{
		{Name: "wave-1", Wave: 1, Fn: func() error {
			rec.ClickAt(500, 400) // place the wave-1 trap
			if !waiter.WaitGold(3000) {
				return nil
			}
			return nil
		}},
		{Name: "wave-2", Wave: 2, Fn: func() error {
			rec.ClickAt(800, 600) // place the wave-2 trap
			return nil
		}},
	}

	e, err := NewEngine(units, waiter, &token, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	// Scripted perception sequence:
	// (1,0) -> (1,3000) -> (2,3000) -> (2,ended)
	go func() {
		w.SetWave(1)
		time.Sleep(20 * time.Millisecond)
		w.SetGold(3000)
		time.Sleep(20 * time.Millisecond)
		w.SetWave(2)
		time.Sleep(20 * time.Millisecond)
		w.SetEnded()
	}()

	res := e.Run()
	if res.Outcome != OutcomeEnded {
		t.Fatalf("outcome = %v, want OutcomeEnded", res.Outcome)
	}

	got := rec.Actions()
	want := []string{"click_at 500,400", "click_at 800,600"}
	if len(got) != len(want) {
		t.Fatalf("actions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("actions = %v, want %v", got, want)
		}
	}
}
