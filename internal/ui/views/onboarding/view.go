package onboarding

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	navdto "pulse/internal/modules/navigation/dto"
	"pulse/internal/ui/theme"
)

// AdvanceRequestedMsg asks the app to advance onboarding. The view never
// changes pages itself; it re-renders once the app hands it a new state.
type AdvanceRequestedMsg struct {
	Skip bool
}

type Model struct {
	state  navdto.StateOutput
	width  int
	height int
}

func New() Model {
	return Model{}
}

func (m *Model) SetState(state navdto.StateOutput) {
	m.state = state
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "right", " ", "n":
			return m, request(false)
		case "s":
			if m.state.Page.Skippable {
				return m, request(true)
			}
		}
	}
	return m, nil
}

func request(skip bool) tea.Cmd {
	return func() tea.Msg { return AdvanceRequestedMsg{Skip: skip} }
}

func (m Model) View() string {
	page := m.state.Page
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(page.Title) + "\n\n")
	sb.WriteString(lipgloss.NewStyle().Width(max(min(m.width-12, 60), 20)).Render(page.Body) + "\n\n")
	sb.WriteString(m.dots() + "\n\n")

	hint := theme.Focused.Render("enter") + theme.Muted.Render(": "+page.Action)
	if page.Skippable {
		hint += theme.Muted.Render("   s: skip for now")
	}
	sb.WriteString(hint)

	card := theme.PaneActive.Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}

func (m Model) dots() string {
	parts := make([]string, m.state.PageCount)
	for i := range parts {
		if i == m.state.PageIndex {
			parts[i] = theme.Hot.Render("●")
		} else {
			parts[i] = theme.Muted.Render("○")
		}
	}
	return strings.Join(parts, " ")
}
