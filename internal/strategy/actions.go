package strategy

import (
	"fmt"
	"time"

	"github.com/vovakirdan/wavepilot/internal/perception"
	"github.com/vovakirdan/wavepilot/internal/scale"
)

// Timing below matches what the game engine needs to register selections and
// placements; faster and placements silently miss.
const (
	selectDelay = 500 * time.Millisecond
	placeDelay  = 300 * time.Millisecond
	upgradeHold = 3 * time.Second
)

// Place selects a build hotkey and places at a 1080p-authored position.
func Place(rt *Runtime, key string, x, y int) error {
	return PlaceScaled(rt, rt.FullHD, key, x, y)
}

// PlaceScaled is Place with an explicit coordinate space, for strategies
// authored against the dev reference. Double click: the first confirms the
// ghost, the second commits it.
func PlaceScaled(rt *Runtime, sc *scale.Scaler, key string, x, y int) error {
	if rt.Token.ShouldStop() {
		return nil
	}

	rx, ry := sc.Point(x, y)
	rt.Logger.Info("placing", "key", key, "x", rx, "y", ry)

	if err := rt.Input.TapKey(key); err != nil {
		return err
	}
	if !rt.Token.Sleep(selectDelay) {
		return nil
	}
	rt.Input.MoveTo(rx, ry)
	if !rt.Token.Sleep(placeDelay) {
		return nil
	}
	rt.Input.Click()
	if !rt.Token.Sleep(placeDelay) {
		return nil
	}
	rt.Input.Click()
	rt.Token.Sleep(placeDelay)
	return nil
}

// PlaceAll places a series of same-key positions, checking for cancellation
// between each.
func PlaceAll(rt *Runtime, key string, positions [][2]int) error {
	for i, p := range positions {
		if rt.Token.ShouldStop() {
			rt.Logger.Info("stop requested mid-placement", "placed", i, "total", len(positions))
			return nil
		}
		if err := Place(rt, key, p[0], p[1]); err != nil {
			return fmt.Errorf("placement %d/%d: %w", i+1, len(positions), err)
		}
	}
	return nil
}

// Upgrade holds a build hotkey, which is how the game upgrades the selected
// structure.
func Upgrade(rt *Runtime, key string) error {
	if rt.Token.ShouldStop() {
		return nil
	}
	rt.Logger.Info("upgrading", "key", key)
	return rt.Input.PressKey(key, upgradeHold)
}

// ClickText recognizes a 1080p-authored region and clicks the center of the
// first fragment containing substr. Returns false without error when the text
// is not on screen this frame.
func ClickText(rt *Runtime, region scale.Region, substr string) (bool, error) {
	if rt.Token.ShouldStop() {
		return false, nil
	}

	runtimeRegion := rt.FullHD.Region(region.X, region.Y, region.W, region.H)
	results, err := rt.OCR.Recognize(runtimeRegion, perception.Options{})
	if err != nil {
		return false, fmt.Errorf("recognize %s: %w", runtimeRegion, err)
	}

	r, ok := perception.FindTextContaining(results, substr)
	if !ok {
		return false, nil
	}
	cx, cy := r.Center()
	rt.Logger.Info("clicking text", "text", substr, "x", cx, "y", cy)
	rt.Input.ClickAt(cx, cy)
	rt.Token.Sleep(placeDelay)
	return true, nil
}
