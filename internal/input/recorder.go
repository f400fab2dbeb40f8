package input

import (
	"fmt"
	"sync"
	"time"
)

// Recorder is a Driver that records every call instead of touching the
// screen. Tests and dry runs use it to assert exact action sequences.
type Recorder struct {
	mu      sync.Mutex
	actions []string
}

// NewRecorder returns an empty recording driver.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Actions returns a copy of everything recorded so far, in order.
func (r *Recorder) Actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.actions))
	copy(out, r.actions)
	return out
}

func (r *Recorder) record(s string) {
	r.mu.Lock()
	r.actions = append(r.actions, s)
	r.mu.Unlock()
}

func (r *Recorder) MoveTo(x, y int) {
	r.record(fmt.Sprintf("move_to %d,%d", x, y))
}

func (r *Recorder) Click() {
	r.record("click")
}

func (r *Recorder) ClickAt(x, y int) {
	r.record(fmt.Sprintf("click_at %d,%d", x, y))
}

func (r *Recorder) KeyDown(key string) error {
	r.record("key_down " + key)
	return nil
}

func (r *Recorder) KeyUp(key string) error {
	r.record("key_up " + key)
	return nil
}

func (r *Recorder) TapKey(key string) error {
	r.record("tap " + key)
	return nil
}

func (r *Recorder) PressKey(key string, d time.Duration) error {
	r.record(fmt.Sprintf("press %s %s", key, d))
	return nil
}
