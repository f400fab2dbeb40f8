package vision

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/vovakirdan/wavepilot/internal/perception"
	"github.com/vovakirdan/wavepilot/internal/scale"
)

// digitWhitelist constrains recognition when a region is known to hold a
// counter. Separators stay in so "$3,999,600" survives to the parser, which
// strips them.
const digitWhitelist = "0123456789$,."

// Engine is a Tesseract-backed perception.Recognizer. One underlying client,
// serialized with a mutex: the engine is not reentrant and the screen is a
// single surface anyway.
type Engine struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// NewEngine starts a Tesseract client for the given language ("eng" etc.).
func NewEngine(language string) (*Engine, error) {
	client := gosseract.NewClient()
	if language != "" {
		if err := client.SetLanguage(language); err != nil {
			client.Close()
			return nil, fmt.Errorf("vision: set language %q: %w", language, err)
		}
	}
	return &Engine{client: client}, nil
}

// Close releases the Tesseract client.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.client.Close()
}

// Recognize captures the region, applies the per-call preprocessing options,
// and returns every recognized text line with its bounding box mapped back
// into runtime screen coordinates.
func (e *Engine) Recognize(region scale.Region, opts perception.Options) ([]perception.Result, error) {
	captured, err := CaptureRegion(region)
	if err != nil {
		return nil, err
	}

	var img image.Image = captured
	if opts.Filter != nil {
		img = applyColorFilter(captured, *opts.Filter)
	}
	factor := opts.Upscale
	if factor > 1 {
		img = upscale(img, factor)
	} else {
		factor = 1
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("vision: encode region %s: %w", region, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	whitelist := ""
	if opts.DigitsOnly {
		whitelist = digitWhitelist
	}
	if err := e.client.SetWhitelist(whitelist); err != nil {
		return nil, fmt.Errorf("vision: set whitelist: %w", err)
	}
	if err := e.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("vision: set image: %w", err)
	}

	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("vision: recognize region %s: %w", region, err)
	}

	results := make([]perception.Result, 0, len(boxes))
	for _, b := range boxes {
		if b.Word == "" {
			continue
		}
		// Boxes come back in the preprocessed (possibly upscaled) local
		// image; map back to screen space.
		results = append(results, perception.Result{
			Text:       b.Word,
			Confidence: b.Confidence,
			Box: scale.Region{
				X: region.X + b.Box.Min.X/factor,
				Y: region.Y + b.Box.Min.Y/factor,
				W: b.Box.Dx() / factor,
				H: b.Box.Dy() / factor,
			},
		})
	}
	return results, nil
}
