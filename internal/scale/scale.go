// Package scale maps coordinates authored against a fixed reference resolution
// onto the live screen resolution. Strategy authors write coordinates once,
// against either the Full HD baseline or their own development screen, and every
// click target and capture region goes through a Scaler before it touches the
// screen.
package scale

import (
	"fmt"
	"math"
	"sync"
)

// FullHDWidth and FullHDHeight define the default reference space.
// Coordinates in bundled strategies and the default config are authored at 1080p.
const (
	FullHDWidth  = 1920
	FullHDHeight = 1080
)

// Region is an axis-aligned rectangle in whichever coordinate space produced it.
// Regions returned by Scaler.Region are in runtime (actual pixel) space and are
// what the capture/OCR side consumes.
type Region struct {
	X, Y int // Top-left corner
	W, H int // Width and height
}

// Center returns the center point of the region.
func (r Region) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// String formats the region as "x,y WxH" for logs.
func (r Region) String() string {
	return fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.W, r.H)
}

// Scaler converts reference-space coordinates to runtime-space pixels.
// One Scaler instance is the single source of truth for its reference pair:
// updating the pair via SetReference transparently re-scales every coordinate
// that goes through the instance afterwards.
//
// Safe for concurrent use; the strategy goroutine and the session setup may
// touch the same instance.
type Scaler struct {
	mu   sync.RWMutex
	refW int
	refH int
	runW int
	runH int
}

// New creates a Scaler for the given reference and runtime resolutions.
// All four dimensions must be positive; a zero reference dimension would make
// every later scaling call divide by zero, so it is rejected here, at
// configuration time.
func New(refW, refH, runW, runH int) (*Scaler, error) {
	if refW <= 0 || refH <= 0 {
		return nil, fmt.Errorf("scale: reference resolution %dx%d is not positive", refW, refH)
	}
	if runW <= 0 || runH <= 0 {
		return nil, fmt.Errorf("scale: runtime resolution %dx%d is not positive", runW, runH)
	}
	return &Scaler{refW: refW, refH: refH, runW: runW, runH: runH}, nil
}

// NewFullHD creates a Scaler with the 1920x1080 reference space.
func NewFullHD(runW, runH int) (*Scaler, error) {
	return New(FullHDWidth, FullHDHeight, runW, runH)
}

// SetReference replaces the reference resolution. All subsequent conversions
// use the new pair; coordinates already converted are unaffected.
func (s *Scaler) SetReference(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("scale: reference resolution %dx%d is not positive", w, h)
	}
	s.mu.Lock()
	s.refW, s.refH = w, h
	s.mu.Unlock()
	return nil
}

// SetRuntime replaces the runtime resolution, normally once per session after
// the target surface has been resolved.
func (s *Scaler) SetRuntime(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("scale: runtime resolution %dx%d is not positive", w, h)
	}
	s.mu.Lock()
	s.runW, s.runH = w, h
	s.mu.Unlock()
	return nil
}

// Reference returns the current reference resolution.
func (s *Scaler) Reference() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refW, s.refH
}

// Runtime returns the current runtime resolution.
func (s *Scaler) Runtime() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runW, s.runH
}

// X converts a reference-space x coordinate to runtime space.
func (s *Scaler) X(x int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return scaleAxis(x, s.refW, s.runW)
}

// Y converts a reference-space y coordinate to runtime space.
func (s *Scaler) Y(y int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return scaleAxis(y, s.refH, s.runH)
}

// Point converts a reference-space point to runtime space.
func (s *Scaler) Point(x, y int) (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return scaleAxis(x, s.refW, s.runW), scaleAxis(y, s.refH, s.runH)
}

// Region converts a reference-space rectangle to runtime space. Position and
// size scale independently per axis.
func (s *Scaler) Region(x, y, w, h int) Region {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Region{
		X: scaleAxis(x, s.refW, s.runW),
		Y: scaleAxis(y, s.refH, s.runH),
		W: scaleAxis(w, s.refW, s.runW),
		H: scaleAxis(h, s.refH, s.runH),
	}
}

// scaleAxis applies the per-axis mapping v * runtime / reference, rounding
// half away from zero so the result is stable for a fixed resolution pair.
// Negative or out-of-surface inputs pass through; clamping is the input
// backend's concern.
func scaleAxis(v, ref, run int) int {
	if ref == run {
		return v
	}
	return int(math.Round(float64(v) * float64(run) / float64(ref)))
}
