package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/wavepilot/internal/gamestate"
	"github.com/vovakirdan/wavepilot/internal/strategy"
)

// refreshInterval is the dashboard redraw cadence. Faster than the monitor's
// default cycle so the view never lags perception by more than one frame.
const refreshInterval = 200 * time.Millisecond

// WatchKeyMap defines the key bindings for the live view.
type WatchKeyMap struct {
	Stop key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k WatchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Stop, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k WatchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Stop, k.Quit}}
}

// DefaultWatchKeyMap returns default key bindings.
func DefaultWatchKeyMap() WatchKeyMap {
	return WatchKeyMap{
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop run"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit view"),
		),
	}
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	endedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	staleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// EngineFn resolves the engine for the current run. It may return nil before
// the run starts; the view shows "idle" until it doesn't.
type EngineFn func() *strategy.Engine

// WatchModel is the Bubble Tea model for the live session view.
type WatchModel struct {
	store    *gamestate.Store
	engineFn EngineFn
	onStop   func()

	snap     gamestate.Snapshot
	units    table.Model
	spin     spinner.Model
	help     help.Model
	keys     WatchKeyMap
	width    int
	quitting bool
}

// NewWatchModel creates a live view over the given store. onStop is invoked
// when the user requests a stop; nil disables the binding.
func NewWatchModel(store *gamestate.Store, engineFn EngineFn, onStop func()) WatchModel {
	columns := []table.Column{
		{Title: "Unit", Width: 24},
		{Title: "Wave", Width: 6},
		{Title: "Status", Width: 10},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(8),
		table.WithFocused(false),
	)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

	h := help.New()
	h.ShowAll = false

	return WatchModel{
		store:    store,
		engineFn: engineFn,
		onStop:   onStop,
		units:    t,
		spin:     sp,
		help:     h,
		keys:     DefaultWatchKeyMap(),
	}
}

// Init starts the refresh loop.
func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(refreshInterval), m.spin.Tick)
}

// Update handles messages and updates the model state.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Stop):
			if m.onStop != nil {
				m.onStop()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.snap = m.store.Snapshot()
		m.units.SetRows(m.unitRows())
		return m, tickCmd(refreshInterval)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// unitRows derives the progress table from the engine's unit sequence. Units
// before the one in flight are done; once the run ends, everything is.
func (m WatchModel) unitRows() []table.Row {
	eng := m.engineFn()
	if eng == nil {
		return nil
	}

	units := eng.Units()
	current := eng.CurrentUnit()
	state := eng.State()

	running := -1
	for i, u := range units {
		if u.Name == current {
			running = i
			break
		}
	}

	rows := make([]table.Row, 0, len(units))
	for i, u := range units {
		status := "pending"
		switch {
		case state == strategy.StateEnded:
			status = "done"
		case running >= 0 && i < running:
			status = "done"
		case running >= 0 && i == running:
			status = "running"
		}
		rows = append(rows, table.Row{u.Name, strconv.Itoa(u.Wave), status})
	}
	return rows
}

// View renders the dashboard.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("wavepilot — live session"))
	b.WriteString("\n\n")

	b.WriteString(m.renderSnapshot())
	b.WriteString("\n")
	b.WriteString(m.renderEngine())

	if len(m.units.Rows()) > 0 {
		b.WriteString("\n")
		b.WriteString(panelStyle.Render(m.units.View()))
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m WatchModel) renderSnapshot() string {
	var rows []string

	wave := "—"
	if m.snap.Wave > 0 {
		wave = strconv.Itoa(m.snap.Wave)
	}
	rows = append(rows, labelStyle.Render("Wave")+valueStyle.Render(wave))
	rows = append(rows, labelStyle.Render("Gold")+valueStyle.Render(formatGold(m.snap.Gold)))

	status := "in progress"
	if m.snap.Ended {
		status = endedStyle.Render("match over")
	} else if m.snap.Wave == 0 {
		status = "waiting for game"
	}
	rows = append(rows, labelStyle.Render("Match")+status)

	age := "never"
	if !m.snap.UpdatedAt.IsZero() {
		d := time.Since(m.snap.UpdatedAt).Round(100 * time.Millisecond)
		age = d.String() + " ago"
		if d > time.Second {
			age = staleStyle.Render(age)
		}
	}
	rows = append(rows, labelStyle.Render("Last seen")+age)

	return panelStyle.Render(strings.Join(rows, "\n"))
}

func (m WatchModel) renderEngine() string {
	eng := m.engineFn()
	state := "idle"
	unit := "—"
	if eng != nil {
		state = eng.State().String()
		if eng.State() == strategy.StateRunning {
			state = m.spin.View() + " " + state
		}
		if cur := eng.CurrentUnit(); cur != "" {
			unit = cur
		}
	}
	rows := []string{
		labelStyle.Render("Engine") + valueStyle.Render(state),
		labelStyle.Render("Unit") + valueStyle.Render(unit),
	}
	return panelStyle.Render(strings.Join(rows, "\n"))
}

// formatGold renders a gold amount with thousands separators, the way the
// HUD itself shows it.
func formatGold(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return "$" + s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return "$" + b.String()
}

// Run starts the live view and blocks until the user quits it.
func Run(store *gamestate.Store, engineFn EngineFn, onStop func()) error {
	p := tea.NewProgram(
		NewWatchModel(store, engineFn, onStop),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
