package perception

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wavepilot/internal/control"
	"github.com/vovakirdan/wavepilot/internal/gamestate"
	"github.com/vovakirdan/wavepilot/internal/scale"
)

// MonitorConfig describes what the monitor watches and how often. Regions are
// in runtime coordinates; the session scales them from reference space before
// constructing the monitor.
type MonitorConfig struct {
	WaveRegion scale.Region
	GoldRegion scale.Region
	EndRegion  scale.Region

	WaveOptions Options
	GoldOptions Options
	EndOptions  Options

	// EndMarkers are substrings whose appearance in the end region means the
	// match is over.
	EndMarkers []string

	// Interval is the polling cadence. It is the dominant responsiveness
	// tunable: shorter means faster detection and more OCR load.
	Interval time.Duration
}

// DefaultInterval is the monitor cadence used when the config leaves it unset.
const DefaultInterval = 300 * time.Millisecond

// Monitor is the background perception loop. It owns the store's writer
// handle: every cycle it recognizes the configured regions, parses what it
// can, and publishes the values it saw. It reports faithfully: no debouncing,
// no monotonic clamping; consumers compare with >= instead.
type Monitor struct {
	cfg    MonitorConfig
	rec    Recognizer
	writer *gamestate.Writer
	token  *control.Token
	logger *log.Logger
}

// NewMonitor builds a monitor publishing into store. Claims the store's
// writer handle, so at most one monitor can exist per store.
func NewMonitor(cfg MonitorConfig, rec Recognizer, store *gamestate.Store, token *control.Token, logger *log.Logger) *Monitor {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Monitor{
		cfg:    cfg,
		rec:    rec,
		writer: store.Writer(),
		token:  token,
		logger: logger.WithPrefix("monitor"),
	}
}

// Run executes perception cycles until cancellation. Capture or recognition
// failures skip the update for that cycle and never terminate the loop.
// Call in its own goroutine; it is the single writer for the session.
func (m *Monitor) Run() {
	m.logger.Info("starting",
		"wave_region", m.cfg.WaveRegion,
		"gold_region", m.cfg.GoldRegion,
		"interval", m.cfg.Interval)

	for !m.token.ShouldStop() {
		m.sampleWave()
		m.sampleGold()
		m.sampleEnd()

		if !m.token.Sleep(m.cfg.Interval) {
			break
		}
	}

	m.logger.Info("stopped")
}

func (m *Monitor) sampleWave() {
	results, err := m.rec.Recognize(m.cfg.WaveRegion, m.cfg.WaveOptions)
	if err != nil {
		m.logger.Debug("wave recognition failed", "err", err)
		return
	}
	for _, r := range results {
		// Wave 0 means "not started"; a parsed zero is a misread.
		if n, ok := parseNumber(r.Text); ok && n > 0 {
			m.writer.SetWave(n)
		}
	}
}

func (m *Monitor) sampleGold() {
	results, err := m.rec.Recognize(m.cfg.GoldRegion, m.cfg.GoldOptions)
	if err != nil {
		m.logger.Debug("gold recognition failed", "err", err)
		return
	}
	for _, r := range results {
		if n, ok := parseNumber(r.Text); ok {
			m.writer.SetGold(n)
		}
	}
}

func (m *Monitor) sampleEnd() {
	if len(m.cfg.EndMarkers) == 0 {
		return
	}
	results, err := m.rec.Recognize(m.cfg.EndRegion, m.cfg.EndOptions)
	if err != nil {
		m.logger.Debug("end-banner recognition failed", "err", err)
		return
	}
	if containsAny(results, m.cfg.EndMarkers) {
		m.writer.SetEnded()
	}
}
