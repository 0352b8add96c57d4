package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	metricsdto "pulse/internal/modules/metrics/dto"
	"pulse/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type MetricsPort interface {
	Refresh(ctx context.Context) (metricsdto.MetricsOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// MetricsLoadedMsg carries the refresh generation it answers; results for
// an older generation are dropped.
type MetricsLoadedMsg struct {
	Seq     int
	Metrics metricsdto.MetricsOutput
	Err     error
}

type OpenFeedbackMsg struct{}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port       MetricsPort
	spinner    spinner.Model
	metrics    metricsdto.MetricsOutput
	loaded     bool
	refreshing bool
	seq        int
	cancel     context.CancelFunc
	err        error
	width      int
	height     int
}

func New(port MetricsPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{port: port, spinner: sp}
}

// Refresh starts a new metrics fetch and abandons any fetch in flight.
func (m *Model) Refresh() tea.Cmd {
	m.Teardown()
	if m.port == nil {
		m.err = fmt.Errorf("metrics source not configured")
		return nil
	}
	m.seq++
	m.refreshing = true
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	seq, port := m.seq, m.port
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		out, err := port.Refresh(ctx)
		return MetricsLoadedMsg{Seq: seq, Metrics: out, Err: err}
	})
}

// Teardown cancels a pending refresh, e.g. when the dashboard leaves the
// screen.
func (m *Model) Teardown() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.refreshing = false
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case MetricsLoadedMsg:
		if msg.Seq != m.seq || !m.refreshing {
			return m, nil
		}
		m.refreshing = false
		m.cancel = nil
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.metrics = msg.Metrics
		m.loaded = true

	case spinner.TickMsg:
		if !m.refreshing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			cmd := m.Refresh()
			return m, cmd
		case "f":
			return m, func() tea.Msg { return OpenFeedbackMsg{} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	header := theme.Title.Render("Today")
	if m.refreshing {
		header += "  " + m.spinner.View() + theme.Muted.Render(" refreshing")
	}

	var body string
	switch {
	case !m.loaded && m.err == nil:
		body = theme.Muted.Render("Waiting for the first reading…")
	default:
		cards := lipgloss.JoinHorizontal(lipgloss.Top,
			card("Heart rate", fmt.Sprintf("%d", m.metrics.HeartRate), "bpm", true),
			card("Resting", fmt.Sprintf("%d", m.metrics.RestingHeartRate), "bpm", false),
			card("HRV", fmt.Sprintf("%d", m.metrics.HRV), "ms", false),
			card("Steps", fmt.Sprintf("%d", m.metrics.Steps), "today", false),
		)
		body = cards
		if m.loaded {
			body += "\n" + theme.Muted.Render("updated "+m.metrics.UpdatedAt.Local().Format("15:04:05"))
		}
	}
	if m.err != nil {
		body += "\n" + theme.Warning.Render("refresh failed: "+m.err.Error())
	}

	help := theme.Muted.Render("r: refresh   f: send feedback")
	content := strings.Join([]string{header, "", body, "", help}, "\n")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func card(label, value, unit string, heart bool) string {
	icon := ""
	if heart {
		icon = theme.Heart.Render("♥ ")
	}
	inner := lipgloss.JoinVertical(lipgloss.Left,
		icon+theme.Muted.Render(label),
		theme.Value.Render(value)+" "+theme.Muted.Render(unit),
	)
	return theme.Pane.Width(18).Render(inner)
}
