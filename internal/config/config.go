// Package config provides YAML-based session configuration: runtime and
// reference resolutions, perception regions and cadence, OCR options, and the
// input backend. Configuration is resolved once at session start and never
// hot-reloaded mid-session.
package config

import (
	"fmt"
	"time"
)

// Config is the full session configuration.
type Config struct {
	Screen   ScreenConfig   `yaml:"screen"`
	Monitor  MonitorConfig  `yaml:"monitor"`
	OCR      OCRConfig      `yaml:"ocr"`
	Input    InputConfig    `yaml:"input"`
	Strategy StrategyConfig `yaml:"strategy"`
}

// ScreenConfig resolves the coordinate spaces.
type ScreenConfig struct {
	// Width and Height pin the runtime surface; 0 means auto-detect from the
	// primary display at session start.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// DevWidth and DevHeight define the developer reference space: the
	// resolution coordinates were copied from. Strategies authored against
	// the 1080p baseline ignore this pair.
	DevWidth  int `yaml:"dev_width"`
	DevHeight int `yaml:"dev_height"`
}

// RegionConfig is a rectangle in 1080p reference space. The session scales it
// to runtime space before any capture happens.
type RegionConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// MonitorConfig tunes the perception loop.
type MonitorConfig struct {
	// IntervalMS is the perception cadence in milliseconds, the main
	// latency/CPU trade-off.
	IntervalMS int `yaml:"interval_ms"`

	// WaitIntervalMS is the wait-primitive polling cadence, independent of
	// the monitor's.
	WaitIntervalMS int `yaml:"wait_interval_ms"`

	WaveRegion RegionConfig `yaml:"wave_region"`
	GoldRegion RegionConfig `yaml:"gold_region"`
	EndRegion  RegionConfig `yaml:"end_region"`

	// EndMarkers are substrings that mean the match is over when they show
	// up in the end region.
	EndMarkers []string `yaml:"end_markers"`
}

// Interval returns the perception cadence as a duration.
func (m MonitorConfig) Interval() time.Duration {
	return time.Duration(m.IntervalMS) * time.Millisecond
}

// WaitInterval returns the wait-primitive cadence as a duration.
func (m MonitorConfig) WaitInterval() time.Duration {
	return time.Duration(m.WaitIntervalMS) * time.Millisecond
}

// OCRConfig tunes recognition.
type OCRConfig struct {
	// Language is the Tesseract language pack.
	Language string `yaml:"language"`

	// Upscale is the integer enlargement factor for small counter regions.
	Upscale int `yaml:"upscale"`

	// GoldColor is the HUD gold counter's text color as "#rrggbb", used for
	// color isolation; GoldTolerance is the allowed RGB distance.
	GoldColor       string  `yaml:"gold_color"`
	GoldTolerance   float64 `yaml:"gold_tolerance"`
	GoldColorFilter bool    `yaml:"gold_color_filter"`

	// Debug logs raw recognition output every cycle.
	Debug bool `yaml:"debug"`
}

// InputConfig selects the injection backend.
type InputConfig struct {
	Backend string `yaml:"backend"`
}

// StrategyConfig locates declarative strategy scripts.
type StrategyConfig struct {
	// ScriptsDir is scanned for *.yaml strategy scripts at startup.
	ScriptsDir string `yaml:"scripts_dir"`
}

// ParseHexColor parses "#rrggbb" (or "rrggbb") into components.
func ParseHexColor(s string) (r, g, b uint8, err error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("config: color %q is not #rrggbb", s)
	}
	var v [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexNibble(s[i*2])
		lo, ok2 := hexNibble(s[i*2+1])
		if !ok1 || !ok2 {
			return 0, 0, 0, fmt.Errorf("config: color %q is not #rrggbb", s)
		}
		v[i] = hi<<4 | lo
	}
	return v[0], v[1], v[2], nil
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Validate rejects configurations that would fail mid-session. Called once at
// startup so a zero reference dimension or a malformed color never reaches a
// running loop.
func (c *Config) Validate() error {
	if c.Screen.DevWidth <= 0 || c.Screen.DevHeight <= 0 {
		return fmt.Errorf("config: dev reference resolution %dx%d is not positive",
			c.Screen.DevWidth, c.Screen.DevHeight)
	}
	if c.Screen.Width < 0 || c.Screen.Height < 0 {
		return fmt.Errorf("config: screen resolution %dx%d is invalid",
			c.Screen.Width, c.Screen.Height)
	}
	if c.Monitor.IntervalMS <= 0 {
		return fmt.Errorf("config: monitor interval %dms is not positive", c.Monitor.IntervalMS)
	}
	if c.Monitor.WaitIntervalMS <= 0 {
		return fmt.Errorf("config: wait interval %dms is not positive", c.Monitor.WaitIntervalMS)
	}
	for name, r := range map[string]RegionConfig{
		"wave_region": c.Monitor.WaveRegion,
		"gold_region": c.Monitor.GoldRegion,
		"end_region":  c.Monitor.EndRegion,
	} {
		if r.W <= 0 || r.H <= 0 {
			return fmt.Errorf("config: %s %d,%d %dx%d has no area", name, r.X, r.Y, r.W, r.H)
		}
		if r.X < 0 || r.Y < 0 {
			return fmt.Errorf("config: %s origin %d,%d is negative", name, r.X, r.Y)
		}
	}
	if c.OCR.GoldColorFilter {
		if _, _, _, err := ParseHexColor(c.OCR.GoldColor); err != nil {
			return err
		}
		if c.OCR.GoldTolerance <= 0 {
			return fmt.Errorf("config: gold_tolerance %v is not positive", c.OCR.GoldTolerance)
		}
	}
	if c.OCR.Upscale < 0 {
		return fmt.Errorf("config: upscale %d is negative", c.OCR.Upscale)
	}
	return nil
}
