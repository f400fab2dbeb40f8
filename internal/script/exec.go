package script

import (
	"fmt"
	"time"

	"github.com/vovakirdan/wavepilot/internal/scale"
	"github.com/vovakirdan/wavepilot/internal/strategy"
)

// Register wraps a parsed script into a strategy definition and adds it to
// the registry, so scripted and hand-written strategies are launched the same
// way.
func Register(s Script) {
	strategy.Register(strategy.Definition{
		ID:         s.Meta.ID,
		Title:      s.Meta.Title,
		Difficulty: s.Meta.Difficulty,
		Build: func(rt *strategy.Runtime) ([]strategy.Unit, error) {
			return Compile(s, rt)
		},
	})
}

// RegisterDir loads and registers every script in dir. Returns how many were
// registered.
func RegisterDir(dir string) (int, error) {
	paths, err := ListDir(dir)
	if err != nil {
		return 0, err
	}
	for _, p := range paths {
		s, err := LoadFile(p)
		if err != nil {
			return 0, err
		}
		Register(s)
	}
	return len(paths), nil
}

// Compile turns a script's wave blocks into engine units bound to rt.
func Compile(s Script, rt *strategy.Runtime) ([]strategy.Unit, error) {
	sc := rt.FullHD
	if s.Meta.Reference == RefDev {
		sc = rt.Dev
	}

	units := make([]strategy.Unit, 0, len(s.Waves))
	for _, w := range s.Waves {
		w := w
		name := w.Name
		if name == "" {
			name = fmt.Sprintf("wave-%d", w.Wave)
		}
		units = append(units, strategy.Unit{
			Name: name,
			Wave: w.Wave,
			Fn: func() error {
				return runSteps(w.Steps, rt, sc)
			},
		})
	}
	return units, nil
}

// runSteps executes one wave block, checking for cancellation between steps.
func runSteps(steps []Step, rt *strategy.Runtime, sc *scale.Scaler) error {
	for i, step := range steps {
		if rt.Token.ShouldStop() {
			rt.Logger.Info("stop requested mid-script", "step", i+1, "total", len(steps))
			return nil
		}
		if err := runStep(step, rt, sc); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func runStep(step Step, rt *strategy.Runtime, sc *scale.Scaler) error {
	kind, err := step.kind()
	if err != nil {
		return err
	}

	switch kind {
	case "tap_key":
		return rt.Input.TapKey(step.TapKey)
	case "key_down":
		return rt.Input.KeyDown(step.KeyDown)
	case "key_up":
		return rt.Input.KeyUp(step.KeyUp)
	case "press_key":
		d := time.Duration(step.PressKey.Duration * float64(time.Second))
		return rt.Input.PressKey(step.PressKey.Key, d)
	case "move_to":
		x, y := sc.Point(step.MoveTo.X, step.MoveTo.Y)
		rt.Input.MoveTo(x, y)
		return nil
	case "click_at":
		x, y := sc.Point(step.ClickAt.X, step.ClickAt.Y)
		rt.Input.ClickAt(x, y)
		return nil
	case "click":
		rt.Input.Click()
		return nil
	case "sleep":
		rt.Token.Sleep(time.Duration(step.Sleep * float64(time.Second)))
		return nil
	case "wait_gold":
		rt.Waiter.WaitGold(step.WaitGold)
		return nil
	case "place":
		return strategy.PlaceScaled(rt, sc, step.Place.Key, step.Place.X, step.Place.Y)
	case "upgrade":
		return strategy.Upgrade(rt, step.Upgrade)
	default:
		return fmt.Errorf("unhandled step kind %q", kind)
	}
}
