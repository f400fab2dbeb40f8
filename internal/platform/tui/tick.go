// Package tui provides the Bubble Tea live view for a running session: the
// observed wave and gold counters, match status, and strategy progress. It is
// a read-side observer: it polls the snapshot store and never touches the
// writer or the input driver.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a dashboard refresh.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the given
// interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
