package config

import (
	_ "embed"
)

//go:embed defaults/config.yaml
var defaultConfigYAML []byte

// Default returns the built-in configuration: 1080p-authored regions from the
// reference HUD layout, a 300ms perception cadence, and color-filtered gold
// recognition.
func Default() Config {
	return Config{
		Screen: ScreenConfig{
			Width:     0, // auto-detect
			Height:    0,
			DevWidth:  2560,
			DevHeight: 1440,
		},
		Monitor: MonitorConfig{
			IntervalMS:     300,
			WaitIntervalMS: 100,
			WaveRegion:     RegionConfig{X: 1841, Y: 733, W: 172, H: 52},
			GoldRegion:     RegionConfig{X: 48, Y: 56, W: 120, H: 22},
			EndRegion:      RegionConfig{X: 0, Y: 0, W: 1920, H: 1080},
			EndMarkers:     []string{"Victory", "Defeat", "Mission Complete"},
		},
		OCR: OCRConfig{
			Language:        "eng",
			Upscale:         3,
			GoldColor:       "#d9e1e3",
			GoldTolerance:   35,
			GoldColorFilter: true,
		},
		Input: InputConfig{
			Backend: "robotgo",
		},
		Strategy: StrategyConfig{
			ScriptsDir: "",
		},
	}
}
