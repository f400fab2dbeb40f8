// Package perception keeps the game-state store fresh from the screen. It
// defines the recognition contract the monitor consumes (the OCR engine behind
// it is a black box), tolerant text parsers, and the background monitor loop
// itself.
package perception

import (
	"strings"

	"github.com/vovakirdan/wavepilot/internal/scale"
)

// Result is one recognized text fragment with its bounding box in runtime
// screen coordinates. Ephemeral: nothing outlives the polling cycle except the
// values folded into the game state.
type Result struct {
	Text       string
	Box        scale.Region
	Confidence float64
}

// Center returns the center point of the result's bounding box, the usual
// click target for OCR-guided actions.
func (r Result) Center() (int, int) {
	return r.Box.Center()
}

// ColorFilter isolates text of a known color before recognition. Pixels within
// Tolerance (Euclidean RGB distance) of the target color are kept, everything
// else is blanked. Game HUDs render counters in a fixed color, which makes
// this far more reliable than global thresholding on busy backgrounds.
type ColorFilter struct {
	R, G, B   uint8
	Tolerance float64
}

// Options controls a single recognition pass.
type Options struct {
	// Upscale enlarges the region by an integer factor before recognition.
	// Small HUD counters are usually too few pixels for the engine as-is.
	Upscale int

	// Filter, when non-nil, applies a color isolation pass first.
	Filter *ColorFilter

	// DigitsOnly constrains recognition to numeric output where the engine
	// supports it.
	DigitsOnly bool
}

// Recognizer is the capture+OCR collaborator. Implementations grab the given
// runtime-space region from the live surface and return every text fragment
// found in it.
type Recognizer interface {
	Recognize(region scale.Region, opts Options) ([]Result, error)
}

// FindTextContaining returns the first result whose text contains substr.
func FindTextContaining(results []Result, substr string) (Result, bool) {
	for _, r := range results {
		if strings.Contains(r.Text, substr) {
			return r, true
		}
	}
	return Result{}, false
}

// containsAny reports whether any result's text contains any of the needles.
func containsAny(results []Result, needles []string) bool {
	for _, r := range results {
		for _, n := range needles {
			if n != "" && strings.Contains(r.Text, n) {
				return true
			}
		}
	}
	return false
}
