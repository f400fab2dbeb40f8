package input

import (
	"fmt"
	"time"

	"github.com/go-vgo/robotgo"
)

// settleDelay is how long ClickAt waits between moving and clicking so the
// game registers the pointer position before the press.
const settleDelay = 100 * time.Millisecond

// RobotDriver injects input through robotgo's OS-level synthesis.
type RobotDriver struct{}

// NewRobotDriver returns the production input backend.
func NewRobotDriver() *RobotDriver {
	return &RobotDriver{}
}

// MoveTo moves the pointer to absolute screen coordinates.
func (d *RobotDriver) MoveTo(x, y int) {
	robotgo.Move(x, y)
}

// Click presses and releases the left button at the current position.
func (d *RobotDriver) Click() {
	robotgo.Click("left", false)
}

// ClickAt moves to (x, y), lets the position settle, and clicks.
func (d *RobotDriver) ClickAt(x, y int) {
	robotgo.Move(x, y)
	time.Sleep(settleDelay)
	robotgo.Click("left", false)
}

// KeyDown presses a key without releasing it.
func (d *RobotDriver) KeyDown(key string) error {
	if err := robotgo.KeyDown(key); err != nil {
		return fmt.Errorf("input: key down %q: %w", key, err)
	}
	return nil
}

// KeyUp releases a previously pressed key.
func (d *RobotDriver) KeyUp(key string) error {
	if err := robotgo.KeyUp(key); err != nil {
		return fmt.Errorf("input: key up %q: %w", key, err)
	}
	return nil
}

// TapKey presses and releases a key.
func (d *RobotDriver) TapKey(key string) error {
	if err := robotgo.KeyTap(key); err != nil {
		return fmt.Errorf("input: key tap %q: %w", key, err)
	}
	return nil
}

// PressKey holds key down for dur.
func (d *RobotDriver) PressKey(key string, dur time.Duration) error {
	if err := robotgo.KeyDown(key); err != nil {
		return fmt.Errorf("input: key down %q: %w", key, err)
	}
	time.Sleep(dur)
	if err := robotgo.KeyUp(key); err != nil {
		return fmt.Errorf("input: key up %q: %w", key, err)
	}
	return nil
}
