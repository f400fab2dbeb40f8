// Package vision is the production capture+OCR collaborator: it grabs screen
// regions, isolates and enlarges HUD text, and recognizes it with Tesseract.
// It implements perception.Recognizer; nothing above this package knows which
// engine is behind the interface.
package vision

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"github.com/vovakirdan/wavepilot/internal/scale"
)

// CaptureRegion grabs one runtime-space rectangle from the live surface.
// Regions are clamped to the display bounds first: reference-space constants
// may overhang the surface by a few pixels at some resolutions, and the OS
// capture call rejects out-of-bounds rects instead of cropping.
func CaptureRegion(r scale.Region) (*image.RGBA, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return nil, fmt.Errorf("vision: no active displays")
	}
	rect := clampToBounds(
		image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H),
		screenshot.GetDisplayBounds(0),
	)
	if rect.Empty() {
		return nil, fmt.Errorf("vision: region %s is entirely off the display", r)
	}

	img, err := screenshot.CaptureRect(rect)
	if err != nil {
		return nil, fmt.Errorf("vision: capture %s: %w", r, err)
	}
	return img, nil
}

// clampToBounds intersects a requested capture rect with the display bounds.
func clampToBounds(r, bounds image.Rectangle) image.Rectangle {
	return r.Intersect(bounds)
}

// PrimaryDisplaySize resolves the runtime surface dimensions from the primary
// display. Used at session start when the config does not pin a resolution.
func PrimaryDisplaySize() (int, int, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return 0, 0, fmt.Errorf("vision: no active displays")
	}
	bounds := screenshot.GetDisplayBounds(0)
	return bounds.Dx(), bounds.Dy(), nil
}
