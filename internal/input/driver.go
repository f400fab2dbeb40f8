// Package input defines the capability surface for injecting mouse and
// keyboard events, and its production backend. Drivers operate in runtime
// (actual pixel) coordinates only; every reference-space coordinate is scaled
// before it reaches this boundary. The injecting side is a single-pointer
// resource; only the strategy goroutine drives it.
package input

import "time"

// Driver is the minimal move/click/key capability set strategies act through.
// Keys are named the way the backend names them ("space", "g", "4", ...).
type Driver interface {
	// MoveTo moves the pointer to absolute screen coordinates.
	MoveTo(x, y int)

	// Click presses and releases the left button at the current position.
	Click()

	// ClickAt moves to (x, y) and clicks, with enough settle delay for the
	// game engine to register the new position first.
	ClickAt(x, y int)

	// KeyDown presses a key without releasing it.
	KeyDown(key string) error

	// KeyUp releases a previously pressed key.
	KeyUp(key string) error

	// TapKey presses and releases a key.
	TapKey(key string) error

	// PressKey holds a key down for the given duration. Hold-to-upgrade and
	// hold-to-move actions depend on the duration being respected.
	PressKey(key string, d time.Duration) error
}
