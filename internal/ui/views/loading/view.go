package loading

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pulse/internal/ui/theme"
)

type Model struct {
	spinner spinner.Model
	version string
	width   int
	height  int
}

func New(version string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Pulse
	sp.Style = theme.Heart
	return Model{spinner: sp, version: version}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		theme.Heart.Render("♥")+" "+theme.Title.Render("Pulse"),
		"",
		m.spinner.View()+" "+theme.Muted.Render("Getting things ready…"),
		"",
		theme.Muted.Render("v"+m.version),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}
