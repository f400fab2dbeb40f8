package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/wavepilot/internal/input"
	"github.com/vovakirdan/wavepilot/internal/platform/tui"
	"github.com/vovakirdan/wavepilot/internal/session"
	"github.com/vovakirdan/wavepilot/internal/strategy"
	"github.com/vovakirdan/wavepilot/internal/vision"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the game state without playing",
	Long: `Runs only the perception monitor and shows the live view: the wave
and gold counters as OCR sees them, and whether the end banner has been
spotted. No input is ever injected. Use it to verify region coordinates
and OCR settings against the running game.

Quit the view to stop watching.`,
	Run: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: watch needs a terminal")
		os.Exit(1)
	}

	cfg := loadConfig()
	logger := newLogger()

	ocr, err := vision.NewEngine(cfg.OCR.Language)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting OCR engine: %v\n", err)
		os.Exit(1)
	}
	defer ocr.Close()

	// The recorder is an inert stand-in: watch never drives input.
	s, err := session.New(cfg, ocr, input.NewRecorder(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Observe()
	}()

	noEngine := func() *strategy.Engine { return nil }
	if err := tui.Run(s.Store(), noEngine, s.Stop); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	s.Stop()
	<-done
}
