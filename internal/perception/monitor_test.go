package perception

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wavepilot/internal/control"
	"github.com/vovakirdan/wavepilot/internal/gamestate"
	"github.com/vovakirdan/wavepilot/internal/scale"
)

func boxAt(x, y int) scale.Region {
	return scale.Region{X: x, Y: y, W: 40, H: 20}
}

var (
	waveRegion = scale.Region{X: 1841, Y: 733, W: 172, H: 52}
	goldRegion = scale.Region{X: 48, Y: 56, W: 120, H: 22}
	endRegion  = scale.Region{X: 0, Y: 0, W: 1920, H: 1080}
)

// scriptedRecognizer feeds the monitor a fixed sequence of frames, one per
// perception cycle, and repeats the last frame once the script runs out.
type scriptedRecognizer struct {
	mu     sync.Mutex
	frames []frame
	cycle  int
}

type frame struct {
	wave string
	gold string
	end  string
	fail bool // simulate a capture/OCR failure for every region
}

func (s *scriptedRecognizer) Recognize(region scale.Region, _ Options) ([]Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.cycle
	if i >= len(s.frames) {
		i = len(s.frames) - 1
	}
	f := s.frames[i]
	// The end region is sampled last in a cycle; advance afterwards.
	if region == endRegion {
		s.cycle++
	}

	if f.fail {
		return nil, errCaptureFailed
	}

	var text string
	switch region {
	case waveRegion:
		text = f.wave
	case goldRegion:
		text = f.gold
	case endRegion:
		text = f.end
	}
	if text == "" {
		return nil, nil
	}
	return []Result{{Text: text, Box: boxAt(region.X, region.Y), Confidence: 0.9}}, nil
}

var errCaptureFailed = &captureError{}

type captureError struct{}

func (*captureError) Error() string { return "capture failed" }

func testConfig() MonitorConfig {
	return MonitorConfig{
		WaveRegion: waveRegion,
		GoldRegion: goldRegion,
		EndRegion:  endRegion,
		EndMarkers: []string{"Victory", "Defeat"},
		Interval:   5 * time.Millisecond,
	}
}

func runMonitor(t *testing.T, rec Recognizer, store *gamestate.Store, token *control.Token) (wait func()) {
	t.Helper()
	m := NewMonitor(testConfig(), rec, store, token, log.New(io.Discard))
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Run()
	}()
	return func() {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("monitor did not stop after cancellation")
		}
	}
}

func awaitSnapshot(t *testing.T, store *gamestate.Store, cond func(gamestate.Snapshot) bool) gamestate.Snapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if snap := store.Snapshot(); cond(snap) {
			return snap
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition not reached; last snapshot %+v", store.Snapshot())
	return gamestate.Snapshot{}
}

func TestMonitorPublishesParsedValues(t *testing.T) {
	rec := &scriptedRecognizer{frames: []frame{
		{wave: "1", gold: "$0"},
		{wave: "1", gold: "$3,000"},
		{wave: "2", gold: "$3,000"},
		{wave: "2", gold: "$3,000", end: "Victory"},
	}}
	store := gamestate.NewStore()
	var token control.Token

	wait := runMonitor(t, rec, store, &token)
	snap := awaitSnapshot(t, store, func(s gamestate.Snapshot) bool {
		return s.Wave == 2 && s.Gold == 3000 && s.Ended
	})
	if snap.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not propagated")
	}

	token.RequestStop()
	wait()
}

func TestMonitorSkipsCorruptedFrames(t *testing.T) {
	rec := &scriptedRecognizer{frames: []frame{
		{wave: "1", gold: "30"},
		{wave: "1", gold: "3O"}, // misread: must not become 3 or 0
		{wave: "1", gold: "3O"},
	}}
	store := gamestate.NewStore()
	var token control.Token

	wait := runMonitor(t, rec, store, &token)
	awaitSnapshot(t, store, func(s gamestate.Snapshot) bool { return s.Gold == 30 })

	// Give the corrupted frames time to flow through.
	time.Sleep(50 * time.Millisecond)
	if got := store.Snapshot().Gold; got != 30 {
		t.Errorf("gold = %d after corrupted frame, want 30 unchanged", got)
	}

	token.RequestStop()
	wait()
}

func TestMonitorSurvivesCaptureFailures(t *testing.T) {
	rec := &scriptedRecognizer{frames: []frame{
		{wave: "1", gold: "500"},
		{fail: true},
		{fail: true},
		{wave: "3", gold: "900"},
	}}
	store := gamestate.NewStore()
	var token control.Token

	wait := runMonitor(t, rec, store, &token)

	// The failed cycles skip updates; the loop keeps running and the next
	// good frame lands.
	awaitSnapshot(t, store, func(s gamestate.Snapshot) bool {
		return s.Wave == 3 && s.Gold == 900
	})

	token.RequestStop()
	wait()
}

func TestMonitorStopsWithinOneInterval(t *testing.T) {
	rec := &scriptedRecognizer{frames: []frame{{wave: "1", gold: "0"}}}
	store := gamestate.NewStore()
	var token control.Token

	m := NewMonitor(testConfig(), rec, store, &token, log.New(io.Discard))
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Run()
	}()

	time.Sleep(20 * time.Millisecond)
	start := time.Now()
	token.RequestStop()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("monitor did not observe cancellation in time")
	}
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Errorf("monitor took %v to stop", elapsed)
	}
}
