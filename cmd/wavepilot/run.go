package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/wavepilot/internal/config"
	"github.com/vovakirdan/wavepilot/internal/hotkey"
	"github.com/vovakirdan/wavepilot/internal/input"
	"github.com/vovakirdan/wavepilot/internal/perception"
	"github.com/vovakirdan/wavepilot/internal/platform/tui"
	"github.com/vovakirdan/wavepilot/internal/script"
	"github.com/vovakirdan/wavepilot/internal/session"
	"github.com/vovakirdan/wavepilot/internal/strategy"
	"github.com/vovakirdan/wavepilot/internal/vision"
)

var (
	flagHotkeys bool
	flagWatch   bool
	flagDryRun  bool
	flagScripts string
)

var runCmd = &cobra.Command{
	Use:   "run <strategy>",
	Short: "Run a strategy against the live game",
	Long: `Start the perception monitor and play the named strategy to the end
of the match.

Modes:
  default    - Start immediately, stop on Ctrl+C or match end
  --hotkeys  - Arm global keys instead: F1 starts a match, F2 stops it.
               Each F1 press runs one full match; press F1 again for the next.
  --watch    - Show a live terminal view of the observed game state
  --dry-run  - Record input actions instead of injecting them, then print them

Examples:
  wavepilot run training-hard
  wavepilot run training-hard --hotkeys
  wavepilot run training-hard --watch
  wavepilot run training-hard --dry-run`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().BoolVar(&flagHotkeys, "hotkeys", false, "Arm F1/F2 global hotkeys instead of starting immediately")
	runCmd.Flags().BoolVar(&flagWatch, "watch", false, "Show the live session view")
	runCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Record actions instead of injecting input")
	runCmd.Flags().StringVar(&flagScripts, "scripts", "", "Extra directory of YAML strategy scripts")
}

func runRun(cmd *cobra.Command, args []string) {
	strategyID := args[0]
	cfg := loadConfig()
	logger := newLogger()

	registerScripts(cfg, logger)

	if !strategy.Exists(strategyID) {
		fmt.Fprintf(os.Stderr, "Error: unknown strategy %q\n", strategyID)
		fmt.Fprintln(os.Stderr, "Run 'wavepilot list' to see registered strategies.")
		os.Exit(1)
	}

	ocr, err := vision.NewEngine(cfg.OCR.Language)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting OCR engine: %v\n", err)
		os.Exit(1)
	}
	defer ocr.Close()

	var rec *input.Recorder
	var driver input.Driver
	switch {
	case flagDryRun:
		rec = input.NewRecorder()
		driver = rec
	default:
		switch cfg.Input.Backend {
		case "", "robotgo":
			driver = input.NewRobotDriver()
		case "recorder":
			rec = input.NewRecorder()
			driver = rec
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown input backend %q\n", cfg.Input.Backend)
			os.Exit(1)
		}
	}

	if flagWatch && !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: --watch needs a terminal")
		os.Exit(1)
	}

	if flagHotkeys {
		runWithHotkeys(cfg, ocr, driver, strategyID, logger)
	} else {
		runOnce(cfg, ocr, driver, strategyID, logger)
	}

	if rec != nil {
		fmt.Println("Recorded actions:")
		for _, a := range rec.Actions() {
			fmt.Println("  " + a)
		}
	}
}

// registerScripts loads YAML strategies from the configured directory and the
// --scripts override. Missing directories are not an error.
func registerScripts(cfg config.Config, logger *log.Logger) {
	for _, dir := range []string{cfg.Strategy.ScriptsDir, flagScripts} {
		if dir == "" {
			continue
		}
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		if _, err := script.RegisterDir(dir); err != nil {
			logger.Warn("loading strategy scripts", "dir", dir, "err", err)
		}
	}
}

// runOnce plays one match immediately. Ctrl+C requests a cooperative stop.
func runOnce(cfg config.Config, rec perception.Recognizer, driver input.Driver, strategyID string, logger *log.Logger) {
	s, err := session.New(cfg, rec, driver, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		logger.Info("interrupt received, stopping")
		s.Stop()
	}()

	if flagWatch {
		runWatched(s, strategyID, logger)
		return
	}

	if _, err := s.Run(strategyID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runWatched drives the session from a background goroutine while the live
// view owns the terminal. Quitting the view stops the run.
func runWatched(s *session.Session, strategyID string, logger *log.Logger) {
	done := make(chan error, 1)
	go func() {
		_, err := s.Run(strategyID)
		done <- err
	}()

	if err := tui.Run(s.Store(), s.Engine, s.Stop); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	s.Stop()
	if err := <-done; err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runWithHotkeys arms the global bindings and plays one match per start
// press. Sessions are single-use, so each press builds a fresh one.
func runWithHotkeys(cfg config.Config, rec perception.Recognizer, driver input.Driver, strategyID string, logger *log.Logger) {
	starts := make(chan struct{}, 1)
	var current atomic.Pointer[session.Session]

	stop := hotkey.Listen(hotkey.DefaultBindings(),
		func() {
			select {
			case starts <- struct{}{}:
			default: // a run is already queued or in flight
			}
		},
		func() {
			if s := current.Load(); s != nil {
				s.Stop()
			}
		},
		logger,
	)
	defer stop()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigc)

	logger.Info("armed", "start", "F1", "stop", "F2", "strategy", strategyID)
	for {
		select {
		case <-sigc:
			if s := current.Load(); s != nil {
				s.Stop()
			}
			logger.Info("exiting")
			return
		case <-starts:
			s, err := session.New(cfg, rec, driver, logger)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			current.Store(s)
			if _, err := s.Run(strategyID); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			current.Store(nil)
			logger.Info("match done, press F1 for the next")
		}
	}
}
