package tui

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wavepilot/internal/control"
	"github.com/vovakirdan/wavepilot/internal/gamestate"
	"github.com/vovakirdan/wavepilot/internal/strategy"
)

func TestFormatGold(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "$0"},
		{999, "$999"},
		{1000, "$1,000"},
		{3999600, "$3,999,600"},
	}
	for _, c := range cases {
		if got := formatGold(c.in); got != c.want {
			t.Errorf("formatGold(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestUnitRowsTrackEngineProgress(t *testing.T) {
	store := gamestate.NewStore()
	store.Writer().SetWave(1)
	var token control.Token
	waiter := strategy.NewWaiter(store, &token, time.Millisecond, log.New(io.Discard))

	block := make(chan struct{})
	units := []strategy.Unit{
		{Name: "first", Wave: 1, Fn: func() error { return nil }},
		{Name: "second", Wave: 1, Fn: func() error { <-block; return nil }},
	}
	eng, err := strategy.NewEngine(units, waiter, &token, log.New(io.Discard))
	if err != nil {
		t.Fatal(err)
	}

	m := NewWatchModel(store, func() *strategy.Engine { return eng }, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		eng.Run()
	}()

	// Wait until the second unit is in flight.
	deadline := time.Now().Add(2 * time.Second)
	for eng.CurrentUnit() != "second" {
		if time.Now().After(deadline) {
			t.Fatal("second unit never started")
		}
		time.Sleep(time.Millisecond)
	}

	rows := m.unitRows()
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0][2] != "done" || rows[1][2] != "running" {
		t.Errorf("statuses = %q, %q; want done, running", rows[0][2], rows[1][2])
	}

	close(block)
	token.RequestStop() // unblocks the trailing end-of-match wait
	<-done
}

func TestUnitRowsEmptyBeforeRun(t *testing.T) {
	store := gamestate.NewStore()
	m := NewWatchModel(store, func() *strategy.Engine { return nil }, nil)
	if rows := m.unitRows(); rows != nil {
		t.Errorf("rows = %v, want nil before a run", rows)
	}
}
