package app

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	feedbackdto "pulse/internal/modules/feedback/dto"
	metricsdto "pulse/internal/modules/metrics/dto"
	navdto "pulse/internal/modules/navigation/dto"
	"pulse/internal/ui/components"
	"pulse/internal/ui/theme"
	dashboardview "pulse/internal/ui/views/dashboard"
	feedbackview "pulse/internal/ui/views/feedback"
	loadingview "pulse/internal/ui/views/loading"
	onboardingview "pulse/internal/ui/views/onboarding"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type navigationPort interface {
	Start(ctx context.Context, onChange func(navdto.StateOutput)) (navdto.StateOutput, error)
	Advance(ctx context.Context, skip bool) (navdto.StateOutput, error)
	ResetSession(ctx context.Context) (navdto.StateOutput, error)
	HandleDeepLink(ctx context.Context, url string) (navdto.StateOutput, error)
}

type metricsPort interface {
	Refresh(ctx context.Context) (metricsdto.MetricsOutput, error)
}

type feedbackPort interface {
	Validate(ctx context.Context, rating int, text string) feedbackdto.ValidationOutput
	Submit(ctx context.Context, rating int, category, text, email string, followUp bool) (feedbackdto.SubmitOutput, error)
	Categories(ctx context.Context) []feedbackdto.CategoryOutput
}

const (
	screenInitializing = "initializing"
	screenOnboarding   = "onboarding"
	screenDashboard    = "dashboard"
)

// ─── async messages ───────────────────────────────────────────────────────────

// stateMsg carries a navigation state. fromEvents marks states delivered by
// delayed transitions, after which the event listener is re-armed. advance
// marks the answer to an advance request.
type stateMsg struct {
	state      navdto.StateOutput
	err        error
	fromEvents bool
	advance    bool
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Next    key.Binding
	Skip    key.Binding
	Refresh key.Binding
	Review  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Next:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next page")),
		Skip:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh metrics")),
		Review:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "send feedback")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Skip},
		{k.Refresh, k.Review},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. The visible screen is a function of
// the navigation state handed back by the navigation port; the model never
// changes that state itself.
type Model struct {
	version string
	nav     navigationPort
	events  chan navdto.StateOutput

	loading    loadingview.Model
	onboarding onboardingview.Model
	dashboard  dashboardview.Model
	feedback   feedbackview.Model

	state        navdto.StateOutput
	advancing    bool
	showFeedback bool
	keys         keyMap
	help         help.Model
	showHelp     bool
	palette      components.Palette
	status       string
	width        int
	height       int
}

func NewModel(version string, nav navigationPort, metrics metricsPort, feedback feedbackPort) Model {
	return Model{
		version:    version,
		nav:        nav,
		events:     make(chan navdto.StateOutput, 1),
		loading:    loadingview.New(version),
		onboarding: onboardingview.New(),
		dashboard:  dashboardview.New(metrics),
		feedback:   feedbackview.New(feedback),
		state:      navdto.StateOutput{Screen: screenInitializing, Initializing: true},
		keys:       defaultKeys(),
		help:       help.New(),
		palette:    components.NewPalette(),
		status:     "starting",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.startCmd(), m.waitForStateCmd())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The palette owns the keyboard while open; everything else still
	// reaches the model below.
	if key, ok := msg.(tea.KeyMsg); ok && m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(key)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case stateMsg:
		var cmds []tea.Cmd
		if msg.fromEvents {
			cmds = append(cmds, m.waitForStateCmd())
		}
		if msg.advance {
			m.advancing = false
		}
		if msg.err != nil {
			m.status = "navigation: " + msg.err.Error()
			return m, tea.Batch(cmds...)
		}
		if msg.state.Revision < m.state.Revision {
			return m, tea.Batch(cmds...)
		}
		cmds = append(cmds, m.applyState(msg.state))
		return m, tea.Batch(cmds...)

	case onboardingview.AdvanceRequestedMsg:
		cmd := m.requestAdvance(msg.Skip)
		return m, cmd

	case dashboardview.OpenFeedbackMsg:
		cmd := m.openFeedback()
		return m, cmd

	case feedbackview.CloseMsg:
		m.showFeedback = false
		m.feedback.Reset()
		m.status = "ready"
		return m, nil

	case feedbackview.SubmittedMsg:
		var cmd tea.Cmd
		m.feedback, cmd = m.feedback.Update(msg)
		if msg.Err == nil && msg.Out.Acknowledged {
			m.status = "feedback sent"
		}
		return m, cmd

	case dashboardview.MetricsLoadedMsg:
		var cmd tea.Cmd
		m.dashboard, cmd = m.dashboard.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		// The feedback form owns the keyboard while it is open.
		if !m.showFeedback || !m.feedback.Typing() {
			switch msg.String() {
			case "q":
				if !m.showFeedback {
					return m, tea.Quit
				}
			case "?":
				m.showHelp = true
				return m, nil
			case ":":
				cmd := m.palette.Open()
				return m, cmd
			}
		}
	}

	if m.palette.Visible() {
		// Cursor blinks belong to the palette input.
		var paletteCmd tea.Cmd
		m.palette, paletteCmd = m.palette.Update(msg)
		next, cmd := m.updateActive(msg)
		return next, tea.Batch(paletteCmd, cmd)
	}
	return m.updateActive(msg)
}

// updateActive forwards msg to the view that owns the current screen.
func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.state.Screen == screenInitializing:
		m.loading, cmd = m.loading.Update(msg)
	case m.state.Screen == screenOnboarding:
		m.onboarding, cmd = m.onboarding.Update(msg)
	case m.showFeedback:
		m.feedback, cmd = m.feedback.Update(msg)
	default:
		m.dashboard, cmd = m.dashboard.Update(msg)
	}
	return m, cmd
}

// applyState adopts a new navigation state and runs the enter/leave hooks
// of the affected screens.
func (m *Model) applyState(next navdto.StateOutput) tea.Cmd {
	prev := m.state.Screen
	m.state = next
	m.onboarding.SetState(next)
	if prev == next.Screen {
		return nil
	}

	if prev == screenDashboard {
		m.dashboard.Teardown()
		m.feedback.Reset()
		m.showFeedback = false
	}
	switch next.Screen {
	case screenInitializing:
		m.status = "starting"
		return m.loading.Init()
	case screenOnboarding:
		m.status = "welcome"
	case screenDashboard:
		m.status = "ready"
		return m.dashboard.Refresh()
	}
	return nil
}

func (m *Model) openFeedback() tea.Cmd {
	if m.state.Screen != screenDashboard {
		return nil
	}
	m.feedback.Reset()
	m.showFeedback = true
	m.status = "feedback"
	return nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.showFeedback && m.state.Screen == screenDashboard:
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.feedback.View())
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) activeView() string {
	switch m.state.Screen {
	case screenOnboarding:
		return m.onboarding.View()
	case screenDashboard:
		return m.dashboard.View()
	default:
		return m.loading.View()
	}
}

func (m Model) renderHeader() string {
	title := theme.Heart.Render("♥") + " " + theme.Title.Render("Pulse")
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(title) + "\n"
}

func (m Model) renderStatusBar() string {
	left := theme.Hot.Render(m.state.Screen) + "  " + m.status
	right := theme.Muted.Render("?:help  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "feedback":
		if m.state.Screen != screenDashboard {
			m.status = "feedback is available from the dashboard"
			return m, nil
		}
		cmd := m.openFeedback()
		return m, cmd

	case "refresh":
		if m.state.Screen != screenDashboard {
			m.status = "nothing to refresh yet"
			return m, nil
		}
		cmd := m.dashboard.Refresh()
		return m, cmd

	case "onboarding:next":
		cmd := m.requestAdvance(false)
		return m, cmd

	case "onboarding:skip":
		cmd := m.requestAdvance(true)
		return m, cmd

	case "deeplink":
		if len(parts) < 2 {
			m.status = "usage: deeplink <url>"
			return m, nil
		}
		return m, m.deepLinkCmd(parts[1])

	case "dev:reset":
		return m, m.resetCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.loading, _ = m.loading.Update(sz)
	m.onboarding, _ = m.onboarding.Update(sz)
	m.dashboard, _ = m.dashboard.Update(sz)
	m.feedback, _ = m.feedback.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) startCmd() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		state, err := m.nav.Start(context.Background(), func(s navdto.StateOutput) { events <- s })
		return stateMsg{state: state, err: err}
	}
}

func (m Model) waitForStateCmd() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return stateMsg{state: <-events, fromEvents: true}
	}
}

// requestAdvance issues one advance at a time; requests made while one is
// in flight are dropped.
func (m *Model) requestAdvance(skip bool) tea.Cmd {
	if m.advancing {
		return nil
	}
	m.advancing = true
	nav := m.nav
	return func() tea.Msg {
		state, err := nav.Advance(context.Background(), skip)
		return stateMsg{state: state, err: err, advance: true}
	}
}

func (m Model) resetCmd() tea.Cmd {
	return func() tea.Msg {
		state, err := m.nav.ResetSession(context.Background())
		return stateMsg{state: state, err: err}
	}
}

func (m Model) deepLinkCmd(url string) tea.Cmd {
	return func() tea.Msg {
		state, err := m.nav.HandleDeepLink(context.Background(), url)
		return stateMsg{state: state, err: err}
	}
}
