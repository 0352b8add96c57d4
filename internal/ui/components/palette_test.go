package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatches(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"onboarding:next", "onboarding:skip"}, Matches("onb"))
	assert.Len(t, Matches(""), len(paletteHints))
	assert.Empty(t, Matches("zzz"))
}

func TestPaletteSubmitAndHistory(t *testing.T) {
	t.Parallel()
	p := NewPalette()
	p.Open()
	p.input.SetValue("dev:reset")

	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, PaletteSubmitMsg{Input: "dev:reset"}, cmd())
	assert.False(t, p.Visible())

	p.Open()
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "dev:reset", p.input.Value())
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "", p.input.Value())

	p, cmd = p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, PaletteCancelMsg{}, cmd())
	assert.False(t, p.Visible())
}

func TestPaletteTabCompletes(t *testing.T) {
	t.Parallel()
	p := NewPalette()
	p.Open()
	p.input.SetValue("deep")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "deeplink ", p.input.Value())
}
