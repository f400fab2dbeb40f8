// Package session assembles one automation run: it resolves the coordinate
// spaces, scales the perception regions, wires the monitor, waiter, and
// strategy runtime together, and drives a strategy to its terminal state.
// A Session is single-use: it owns its game-state store and its monitor's
// writer handle, so each match gets a fresh one.
package session

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wavepilot/internal/config"
	"github.com/vovakirdan/wavepilot/internal/control"
	"github.com/vovakirdan/wavepilot/internal/gamestate"
	"github.com/vovakirdan/wavepilot/internal/input"
	"github.com/vovakirdan/wavepilot/internal/perception"
	"github.com/vovakirdan/wavepilot/internal/scale"
	"github.com/vovakirdan/wavepilot/internal/strategy"
	"github.com/vovakirdan/wavepilot/internal/vision"
)

// Session holds everything one run needs, fully wired and validated.
type Session struct {
	cfg    config.Config
	store  *gamestate.Store
	token  *control.Token
	waiter *strategy.Waiter
	mon    *perception.Monitor
	rt     *strategy.Runtime
	logger *log.Logger

	mu     sync.Mutex
	engine *strategy.Engine
}

// New builds a session from a validated config. The runtime resolution comes
// from the config when pinned, otherwise from the primary display. Fails fast
// on anything that would otherwise surface mid-match.
func New(cfg config.Config, rec perception.Recognizer, driver input.Driver, logger *log.Logger) (*Session, error) {
	if logger == nil {
		logger = log.Default()
	}

	runW, runH := cfg.Screen.Width, cfg.Screen.Height
	if runW == 0 || runH == 0 {
		var err error
		runW, runH, err = vision.PrimaryDisplaySize()
		if err != nil {
			return nil, fmt.Errorf("session: detect display: %w", err)
		}
		logger.Info("detected display", "width", runW, "height", runH)
	}

	fullHD, err := scale.NewFullHD(runW, runH)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	dev, err := scale.New(cfg.Screen.DevWidth, cfg.Screen.DevHeight, runW, runH)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	monCfg, err := monitorConfig(cfg, fullHD)
	if err != nil {
		return nil, err
	}

	store := gamestate.NewStore()
	token := &control.Token{}
	waiter := strategy.NewWaiter(store, token, cfg.Monitor.WaitInterval(), logger)

	s := &Session{
		cfg:    cfg,
		store:  store,
		token:  token,
		waiter: waiter,
		mon:    perception.NewMonitor(monCfg, rec, store, token, logger),
		logger: logger.WithPrefix("session"),
	}
	s.rt = &strategy.Runtime{
		Input:  driver,
		OCR:    rec,
		FullHD: fullHD,
		Dev:    dev,
		Waiter: waiter,
		Token:  token,
		Logger: logger,
	}
	return s, nil
}

// monitorConfig scales the configured reference-space regions into runtime
// space and attaches per-region recognition options: the wave and gold
// counters are small digit strips that get upscaling and a digit whitelist,
// and gold additionally gets color isolation when enabled. The end banner is
// large text and goes through untouched.
func monitorConfig(cfg config.Config, sc *scale.Scaler) (perception.MonitorConfig, error) {
	digits := perception.Options{
		Upscale:    cfg.OCR.Upscale,
		DigitsOnly: true,
	}
	goldOpts := digits
	if cfg.OCR.GoldColorFilter {
		r, g, b, err := config.ParseHexColor(cfg.OCR.GoldColor)
		if err != nil {
			return perception.MonitorConfig{}, fmt.Errorf("session: %w", err)
		}
		goldOpts.Filter = &perception.ColorFilter{R: r, G: g, B: b, Tolerance: cfg.OCR.GoldTolerance}
	}

	region := func(r config.RegionConfig) scale.Region {
		return sc.Region(r.X, r.Y, r.W, r.H)
	}
	return perception.MonitorConfig{
		WaveRegion:  region(cfg.Monitor.WaveRegion),
		GoldRegion:  region(cfg.Monitor.GoldRegion),
		EndRegion:   region(cfg.Monitor.EndRegion),
		WaveOptions: digits,
		GoldOptions: goldOpts,
		EndOptions:  perception.Options{},
		EndMarkers:  cfg.Monitor.EndMarkers,
		Interval:    cfg.Monitor.Interval(),
	}, nil
}

// Run drives the named strategy to a terminal state, with the monitor
// feeding the store from a background goroutine for the whole run. Blocking.
// When the engine finishes for any reason the monitor is wound down before
// Run returns, so no perception cycle outlives the session.
func (s *Session) Run(strategyID string) (strategy.Result, error) {
	def, err := strategy.Get(strategyID)
	if err != nil {
		return strategy.Result{}, err
	}
	units, err := def.Build(s.rt)
	if err != nil {
		return strategy.Result{}, fmt.Errorf("session: build %q: %w", strategyID, err)
	}
	engine, err := strategy.NewEngine(units, s.waiter, s.token, s.logger)
	if err != nil {
		return strategy.Result{}, err
	}

	s.mu.Lock()
	s.engine = engine
	s.mu.Unlock()

	s.logger.Info("starting run", "strategy", strategyID, "units", len(units))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.mon.Run()
	}()

	res := engine.Run()

	// The engine is done; stop the monitor too, whatever the outcome.
	s.token.RequestStop()
	wg.Wait()

	s.logger.Info("run finished", "outcome", outcomeString(res.Outcome))
	return res, nil
}

// Observe runs only the perception side: the monitor keeps the store fresh
// until Stop, no strategy plays. Blocking. Used for calibration, where the
// operator wants to see what the OCR sees without touching the game.
func (s *Session) Observe() {
	s.mon.Run()
}

// Stop requests cooperative cancellation. Safe from any goroutine, including
// hotkey callbacks.
func (s *Session) Stop() {
	s.token.RequestStop()
}

// Store exposes the game-state store for read-side observers such as the
// live view.
func (s *Session) Store() *gamestate.Store {
	return s.store
}

// Engine returns the engine for the current run, or nil before Run is called.
func (s *Session) Engine() *strategy.Engine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine
}

// Runtime exposes the strategy runtime, mainly so probes can reuse the
// session's scalers and recognizer.
func (s *Session) Runtime() *strategy.Runtime {
	return s.rt
}

func outcomeString(o strategy.Outcome) string {
	switch o {
	case strategy.OutcomeEnded:
		return "ended"
	case strategy.OutcomeCancelled:
		return "cancelled"
	case strategy.OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}
