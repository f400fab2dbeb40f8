package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wavepilot/internal/config"
	"github.com/vovakirdan/wavepilot/internal/perception"
	"github.com/vovakirdan/wavepilot/internal/scale"
	"github.com/vovakirdan/wavepilot/internal/vision"
)

var (
	flagProbeRegion  string
	flagProbeRef     string
	flagProbeDigits  bool
	flagProbeFilter  bool
	flagProbeUpscale int
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "One-shot OCR of a screen region",
	Long: `Captures and recognizes a single region once and prints every text
fragment found. Use it to calibrate region coordinates and OCR options
before committing them to the config.

The region is given in reference coordinates and scaled to the live
display, exactly as the monitor would scale it.

Examples:
  wavepilot probe --region 1841,733,172,52 --digits
  wavepilot probe --region 48,56,120,22 --digits --gold-filter
  wavepilot probe --region 0,0,2560,1440 --ref dev`,
	Run: runProbe,
}

func init() {
	probeCmd.Flags().StringVar(&flagProbeRegion, "region", "", "Region as x,y,w,h in reference coordinates (required)")
	probeCmd.Flags().StringVar(&flagProbeRef, "ref", "1080p", "Reference space: 1080p or dev")
	probeCmd.Flags().BoolVar(&flagProbeDigits, "digits", false, "Constrain recognition to digits")
	probeCmd.Flags().BoolVar(&flagProbeFilter, "gold-filter", false, "Apply the configured gold color filter")
	probeCmd.Flags().IntVar(&flagProbeUpscale, "upscale", -1, "Upscale factor (-1 = use config)")
	//nolint:errcheck
	probeCmd.MarkFlagRequired("region")
}

func runProbe(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger()

	ref, err := parseRegionFlag(flagProbeRegion)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	runW, runH := cfg.Screen.Width, cfg.Screen.Height
	if runW == 0 || runH == 0 {
		runW, runH, err = vision.PrimaryDisplaySize()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error detecting display: %v\n", err)
			os.Exit(1)
		}
	}

	var sc *scale.Scaler
	switch flagProbeRef {
	case "1080p":
		sc, err = scale.NewFullHD(runW, runH)
	case "dev":
		sc, err = scale.New(cfg.Screen.DevWidth, cfg.Screen.DevHeight, runW, runH)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown reference %q (want 1080p or dev)\n", flagProbeRef)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := perception.Options{
		Upscale:    cfg.OCR.Upscale,
		DigitsOnly: flagProbeDigits,
	}
	if flagProbeUpscale >= 0 {
		opts.Upscale = flagProbeUpscale
	}
	if flagProbeFilter {
		r, g, b, cerr := config.ParseHexColor(cfg.OCR.GoldColor)
		if cerr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", cerr)
			os.Exit(1)
		}
		opts.Filter = &perception.ColorFilter{R: r, G: g, B: b, Tolerance: cfg.OCR.GoldTolerance}
	}

	ocr, err := vision.NewEngine(cfg.OCR.Language)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting OCR engine: %v\n", err)
		os.Exit(1)
	}
	defer ocr.Close()

	region := sc.Region(ref.X, ref.Y, ref.W, ref.H)
	logger.Info("probing", "reference", ref, "runtime", region)

	results, err := ocr.Recognize(region, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(results) == 0 {
		fmt.Println("No text recognized.")
		return
	}
	for _, r := range results {
		fmt.Printf("%-30q  box=%s  confidence=%.1f\n", r.Text, r.Box, r.Confidence)
	}
}

// parseRegionFlag parses "x,y,w,h" into a reference-space region.
func parseRegionFlag(s string) (scale.Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return scale.Region{}, fmt.Errorf("region %q is not x,y,w,h", s)
	}
	var vals [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return scale.Region{}, fmt.Errorf("region %q is not x,y,w,h", s)
		}
		vals[i] = v
	}
	return scale.Region{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}, nil
}
