// Package script loads declarative YAML strategies: per-wave step lists that
// compile into engine units, so maps can be automated without writing Go.
// Coordinates in a script are authored against a declared reference space and
// scaled at execution time.
package script

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Reference space names a script can declare.
const (
	RefFullHD = "1080p" // default
	RefDev    = "dev"   // the configurable developer resolution
)

// Script is one declarative strategy.
type Script struct {
	Meta  Meta        `yaml:"meta"`
	Waves []WaveBlock `yaml:"waves"`
}

// Meta identifies the script and its coordinate space.
type Meta struct {
	ID         string `yaml:"id"`
	Title      string `yaml:"title"`
	Difficulty string `yaml:"difficulty"`

	// Reference is the coordinate space coordinates were authored in:
	// "1080p" (default) or "dev".
	Reference string `yaml:"reference"`
}

// WaveBlock is the step list for one wave.
type WaveBlock struct {
	Wave  int    `yaml:"wave"`
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// PointStep is an authored coordinate pair.
type PointStep struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// PressStep holds a key for a duration in seconds.
type PressStep struct {
	Key      string  `yaml:"key"`
	Duration float64 `yaml:"duration"`
}

// PlaceStep selects a build hotkey and commits a placement.
type PlaceStep struct {
	Key string `yaml:"key"`
	X   int    `yaml:"x"`
	Y   int    `yaml:"y"`
}

// Step is one action in a wave block. Exactly one field may be set; which one
// determines the step kind. YAML-friendly stand-in for a tagged union.
type Step struct {
	TapKey   string     `yaml:"tap_key,omitempty"`
	KeyDown  string     `yaml:"key_down,omitempty"`
	KeyUp    string     `yaml:"key_up,omitempty"`
	PressKey *PressStep `yaml:"press_key,omitempty"`
	MoveTo   *PointStep `yaml:"move_to,omitempty"`
	ClickAt  *PointStep `yaml:"click_at,omitempty"`
	Click    bool       `yaml:"click,omitempty"`
	Sleep    float64    `yaml:"sleep,omitempty"`
	WaitGold int        `yaml:"wait_gold,omitempty"`
	Place    *PlaceStep `yaml:"place,omitempty"`
	Upgrade  string     `yaml:"upgrade,omitempty"`
}

// kind returns the step's single set field name, or an error when the step is
// empty or ambiguous.
func (s Step) kind() (string, error) {
	var kinds []string
	if s.TapKey != "" {
		kinds = append(kinds, "tap_key")
	}
	if s.KeyDown != "" {
		kinds = append(kinds, "key_down")
	}
	if s.KeyUp != "" {
		kinds = append(kinds, "key_up")
	}
	if s.PressKey != nil {
		kinds = append(kinds, "press_key")
	}
	if s.MoveTo != nil {
		kinds = append(kinds, "move_to")
	}
	if s.ClickAt != nil {
		kinds = append(kinds, "click_at")
	}
	if s.Click {
		kinds = append(kinds, "click")
	}
	if s.Sleep > 0 {
		kinds = append(kinds, "sleep")
	}
	if s.WaitGold > 0 {
		kinds = append(kinds, "wait_gold")
	}
	if s.Place != nil {
		kinds = append(kinds, "place")
	}
	if s.Upgrade != "" {
		kinds = append(kinds, "upgrade")
	}
	switch len(kinds) {
	case 0:
		return "", fmt.Errorf("empty step")
	case 1:
		return kinds[0], nil
	default:
		return "", fmt.Errorf("step sets %v, want exactly one action", kinds)
	}
}

// Parse decodes and validates one script document.
func Parse(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("script: parse: %w", err)
	}
	if err := s.validate(); err != nil {
		return s, err
	}
	return s, nil
}

// LoadFile loads and validates a script from disk.
func LoadFile(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("script: read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return s, fmt.Errorf("script: %s: %w", path, err)
	}
	return s, nil
}

// ListDir returns the script files in dir, sorted by name.
func ListDir(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("script: scan %s: %w", dir, err)
	}
	sort.Strings(matches)
	return matches, nil
}

func (s *Script) validate() error {
	if s.Meta.ID == "" {
		return fmt.Errorf("script: meta.id is required")
	}
	switch s.Meta.Reference {
	case "", RefFullHD, RefDev:
	default:
		return fmt.Errorf("script: %s: unknown reference space %q", s.Meta.ID, s.Meta.Reference)
	}
	if len(s.Waves) == 0 {
		return fmt.Errorf("script: %s: no waves", s.Meta.ID)
	}
	for i, w := range s.Waves {
		if w.Wave < 0 {
			return fmt.Errorf("script: %s: wave block %d has negative wave %d", s.Meta.ID, i, w.Wave)
		}
		if i > 0 && w.Wave < s.Waves[i-1].Wave {
			return fmt.Errorf("script: %s: wave %d ordered after wave %d",
				s.Meta.ID, w.Wave, s.Waves[i-1].Wave)
		}
		for j, step := range w.Steps {
			if _, err := step.kind(); err != nil {
				return fmt.Errorf("script: %s: wave %d step %d: %w", s.Meta.ID, w.Wave, j+1, err)
			}
		}
	}
	return nil
}
