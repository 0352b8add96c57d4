package feedback

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	feedbackdto "pulse/internal/modules/feedback/dto"
	apperrors "pulse/internal/platform/errors"
	"pulse/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type FeedbackPort interface {
	Validate(ctx context.Context, rating int, text string) feedbackdto.ValidationOutput
	Submit(ctx context.Context, rating int, category, text, email string, followUp bool) (feedbackdto.SubmitOutput, error)
	Categories(ctx context.Context) []feedbackdto.CategoryOutput
}

// ─── messages ────────────────────────────────────────────────────────────────

type SubmittedMsg struct {
	Seq int
	Out feedbackdto.SubmitOutput
	Err error
}

// CloseMsg tells the app to dismiss the form.
type CloseMsg struct{}

// ─── model ───────────────────────────────────────────────────────────────────

type field int

const (
	fieldRating field = iota
	fieldCategory
	fieldText
	fieldEmail
	fieldFollowUp
	fieldCount
)

type phase int

const (
	phaseEditing phase = iota
	phaseSubmitting
	phaseDone
)

type Model struct {
	port       FeedbackPort
	categories []feedbackdto.CategoryOutput

	rating   int
	category int
	text     textarea.Model
	email    textinput.Model
	followUp bool
	focus    field

	phase   phase
	reason  string
	ack     feedbackdto.SubmitOutput
	seq     int
	cancel  context.CancelFunc
	spinner spinner.Model
	width   int
}

func New(port FeedbackPort) Model {
	ta := textarea.New()
	ta.Placeholder = "Tell us what works and what does not…"
	ta.ShowLineNumbers = false
	ta.CharLimit = 2000
	ta.SetHeight(5)
	ta.SetWidth(56)

	ti := textinput.New()
	ti.Placeholder = "optional"
	ti.CharLimit = 254

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	m := Model{port: port, text: ta, email: ti, spinner: sp}
	if port != nil {
		m.categories = port.Categories(context.Background())
	}
	return m
}

// Reset clears the form for a fresh entry.
func (m *Model) Reset() {
	m.Teardown()
	m.rating = 0
	m.category = 0
	m.text.Reset()
	m.email.SetValue("")
	m.followUp = false
	m.focus = fieldRating
	m.phase = phaseEditing
	m.reason = ""
	m.text.Blur()
	m.email.Blur()
}

// Teardown abandons an in-flight submission. Its completion, if it still
// arrives, is ignored because the sequence number no longer matches.
func (m *Model) Teardown() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.seq++
	if m.phase == phaseSubmitting {
		m.phase = phaseEditing
	}
}

// Typing reports whether a free-text field has focus, in which case the
// app must not treat printable keys as global shortcuts.
func (m Model) Typing() bool {
	return m.phase == phaseEditing && (m.focus == fieldText || m.focus == fieldEmail)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.text.SetWidth(max(min(msg.Width-12, 72), 20))

	case SubmittedMsg:
		if msg.Seq != m.seq || m.phase != phaseSubmitting {
			return m, nil
		}
		m.cancel = nil
		if msg.Err != nil {
			m.phase = phaseEditing
			switch {
			case errors.Is(msg.Err, context.Canceled):
			case errors.Is(msg.Err, apperrors.ErrInvalidInput):
				m.reason = strings.TrimPrefix(msg.Err.Error(), apperrors.ErrInvalidInput.Error()+": ")
			default:
				m.reason = msg.Err.Error()
			}
			return m, nil
		}
		m.phase = phaseDone
		m.ack = msg.Out
		return m, nil

	case spinner.TickMsg:
		if m.phase != phaseSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.phase {
	case phaseDone:
		return m, closeCmd()
	case phaseSubmitting:
		if msg.String() == "esc" {
			m.Teardown()
			return m, closeCmd()
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.Teardown()
		return m, closeCmd()
	case "ctrl+s":
		return m.submit()
	case "tab":
		cmd := m.setFocus((m.focus + 1) % fieldCount)
		return m, cmd
	case "shift+tab":
		cmd := m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, cmd
	}

	switch m.focus {
	case fieldRating:
		switch s := msg.String(); s {
		case "left":
			m.rating = max(m.rating-1, 1)
		case "right":
			m.rating = min(m.rating+1, 5)
		case "1", "2", "3", "4", "5":
			m.rating = int(s[0] - '0')
		}
	case fieldCategory:
		if n := len(m.categories); n > 0 {
			switch msg.String() {
			case "left":
				m.category = (m.category + n - 1) % n
			case "right":
				m.category = (m.category + 1) % n
			}
		}
	case fieldFollowUp:
		if msg.String() == " " || msg.String() == "enter" {
			m.followUp = !m.followUp
		}
	case fieldText:
		var cmd tea.Cmd
		m.text, cmd = m.text.Update(msg)
		return m, cmd
	case fieldEmail:
		var cmd tea.Cmd
		m.email, cmd = m.email.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) setFocus(f field) tea.Cmd {
	m.focus = f
	m.text.Blur()
	m.email.Blur()
	switch f {
	case fieldText:
		return m.text.Focus()
	case fieldEmail:
		return m.email.Focus()
	}
	return nil
}

func (m Model) submit() (Model, tea.Cmd) {
	if m.port == nil {
		m.reason = "feedback is not available"
		return m, nil
	}
	check := m.port.Validate(context.Background(), m.rating, m.text.Value())
	if !check.Valid {
		m.reason = check.Reason
		return m, nil
	}
	m.reason = ""
	m.Teardown()
	m.phase = phaseSubmitting
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	seq, port := m.seq, m.port
	rating, category := m.rating, m.selectedCategory()
	text, email, followUp := m.text.Value(), m.email.Value(), m.followUp
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		out, err := port.Submit(ctx, rating, category, text, email, followUp)
		return SubmittedMsg{Seq: seq, Out: out, Err: err}
	})
}

func (m Model) selectedCategory() string {
	if len(m.categories) == 0 {
		return ""
	}
	return m.categories[m.category].ID
}

func closeCmd() tea.Cmd {
	return func() tea.Msg { return CloseMsg{} }
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Send feedback") + "\n\n")

	if m.phase == phaseDone {
		sb.WriteString(theme.Success.Render("✓ "+m.ack.Message) + "\n\n")
		sb.WriteString(theme.Muted.Render("reference "+m.ack.SubmissionID) + "\n\n")
		sb.WriteString(theme.Muted.Render("press any key to return"))
		return theme.PaneActive.Render(sb.String())
	}

	sb.WriteString(m.label(fieldRating, "Rating") + m.stars() + "\n")
	sb.WriteString(m.label(fieldCategory, "Category") + m.categoryLabel() + "\n\n")
	sb.WriteString(m.label(fieldText, "What's on your mind?") + "\n" + m.text.View() + "\n\n")
	sb.WriteString(m.label(fieldEmail, "Contact email") + m.email.View() + "\n")
	check := "[ ]"
	if m.followUp {
		check = "[x]"
	}
	sb.WriteString(m.label(fieldFollowUp, "Follow up with me") + check + "\n\n")

	switch {
	case m.phase == phaseSubmitting:
		sb.WriteString(m.spinner.View() + theme.Muted.Render(" sending…"))
	case m.reason != "":
		sb.WriteString(theme.Warning.Render("✗ " + m.reason))
	default:
		sb.WriteString(theme.Muted.Render("a few words, at least 10 characters"))
	}
	sb.WriteString("\n\n" + theme.Muted.Render("tab: next field  ←/→: change  ctrl+s: send  esc: cancel"))
	return theme.PaneActive.Render(sb.String())
}

func (m Model) label(f field, text string) string {
	if m.focus == f && m.phase == phaseEditing {
		return theme.Focused.Render("› "+text) + "  "
	}
	return theme.Muted.Render("  "+text) + "  "
}

func (m Model) stars() string {
	var sb strings.Builder
	for i := 1; i <= 5; i++ {
		if i <= m.rating {
			sb.WriteString(theme.Hot.Render("★"))
		} else {
			sb.WriteString(theme.Muted.Render("☆"))
		}
	}
	return sb.String()
}

func (m Model) categoryLabel() string {
	if len(m.categories) == 0 {
		return theme.Muted.Render("—")
	}
	return "‹ " + m.categories[m.category].Label + " ›"
}
