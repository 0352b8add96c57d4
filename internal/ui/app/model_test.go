package app

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	navdto "pulse/internal/modules/navigation/dto"
	"pulse/internal/ui/components"
	onboardingview "pulse/internal/ui/views/onboarding"
)

// fakeNav stamps a fresh revision on every state-changing call, as the
// navigation service does.
type fakeNav struct {
	mu       sync.Mutex
	revision uint64
	advances []bool
	resets   int
	links    []string
	state    navdto.StateOutput
}

func (f *fakeNav) Start(_ context.Context, _ func(navdto.StateOutput)) (navdto.StateOutput, error) {
	return navdto.StateOutput{Screen: screenInitializing, Initializing: true}, nil
}

func (f *fakeNav) Advance(_ context.Context, skip bool) (navdto.StateOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.advances = append(f.advances, skip)
	f.revision++
	f.state.Revision = f.revision
	return f.state, nil
}

func (f *fakeNav) ResetSession(_ context.Context) (navdto.StateOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	f.revision++
	return navdto.StateOutput{Screen: screenInitializing, Initializing: true, Revision: f.revision}, nil
}

func (f *fakeNav) HandleDeepLink(_ context.Context, url string) (navdto.StateOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.links = append(f.links, url)
	return f.state, nil
}

func onboardingState(page int) navdto.StateOutput {
	return navdto.StateOutput{
		Screen:    screenOnboarding,
		Phase:     "page",
		PageIndex: page,
		PageCount: 3,
		Page:      navdto.PageOutput{Index: page, Title: "Welcome", Skippable: page == 2},
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func TestStateMessageSelectsScreen(t *testing.T) {
	t.Parallel()
	m := NewModel("1.0.0", &fakeNav{}, nil, nil)
	assert.Equal(t, screenInitializing, m.state.Screen)

	m, _ = update(t, m, stateMsg{state: onboardingState(0)})
	assert.Equal(t, screenOnboarding, m.state.Screen)
	assert.Equal(t, "welcome", m.status)
}

func TestOnboardingRequestGoesThroughNavigation(t *testing.T) {
	t.Parallel()
	nav := &fakeNav{state: onboardingState(1)}
	m := NewModel("1.0.0", nav, nil, nil)
	m, _ = update(t, m, stateMsg{state: onboardingState(0)})

	m, cmd := update(t, m, onboardingview.AdvanceRequestedMsg{Skip: false})
	require.NotNil(t, cmd)
	// The request alone does not move the view.
	assert.Equal(t, 0, m.state.PageIndex)

	msg := cmd()
	m, _ = update(t, m, msg)
	assert.Equal(t, 1, m.state.PageIndex)
	assert.Equal(t, []bool{false}, nav.advances)
}

func TestAdvanceRequestsDoNotOverlap(t *testing.T) {
	t.Parallel()
	nav := &fakeNav{state: onboardingState(1)}
	m := NewModel("1.0.0", nav, nil, nil)
	m, _ = update(t, m, stateMsg{state: onboardingState(0)})

	m, first := update(t, m, onboardingview.AdvanceRequestedMsg{})
	require.NotNil(t, first)
	m, second := update(t, m, onboardingview.AdvanceRequestedMsg{})
	assert.Nil(t, second)
	m, viaPalette := update(t, m, components.PaletteSubmitMsg{Input: "onboarding:next"})
	assert.Nil(t, viaPalette)

	m, _ = update(t, m, first())
	assert.Equal(t, 1, m.state.PageIndex)
	assert.Len(t, nav.advances, 1)

	_, third := update(t, m, onboardingview.AdvanceRequestedMsg{})
	assert.NotNil(t, third)
}

func TestOutdatedStateIsDropped(t *testing.T) {
	t.Parallel()
	m := NewModel("1.0.0", &fakeNav{}, nil, nil)

	newer := onboardingState(2)
	newer.Revision = 5
	older := onboardingState(1)
	older.Revision = 4

	m, _ = update(t, m, stateMsg{state: newer})
	m, _ = update(t, m, stateMsg{state: older})
	assert.Equal(t, 2, m.state.PageIndex)
	assert.Equal(t, uint64(5), m.state.Revision)
}

func TestDelayedStateReachesModelWhilePaletteOpen(t *testing.T) {
	t.Parallel()
	m := NewModel("1.0.0", &fakeNav{}, nil, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{':'}})
	require.True(t, m.palette.Visible())

	delayed := onboardingState(0)
	delayed.Revision = 2
	m, cmd := update(t, m, stateMsg{state: delayed, fromEvents: true})
	assert.Equal(t, screenOnboarding, m.state.Screen)
	assert.NotNil(t, cmd, "event listener must be re-armed")
	assert.True(t, m.palette.Visible())

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.False(t, m.palette.Visible())
	assert.Equal(t, screenOnboarding, m.state.Screen)
}

func TestPaletteCommands(t *testing.T) {
	t.Parallel()
	nav := &fakeNav{state: onboardingState(0)}
	m := NewModel("1.0.0", nav, nil, nil)
	m, _ = update(t, m, stateMsg{state: onboardingState(0)})

	m, _ = update(t, m, components.PaletteSubmitMsg{Input: "feedback"})
	assert.Equal(t, "feedback is available from the dashboard", m.status)
	assert.False(t, m.showFeedback)

	m, cmd := update(t, m, components.PaletteSubmitMsg{Input: "deeplink pulse://x"})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Equal(t, []string{"pulse://x"}, nav.links)
	assert.Equal(t, screenOnboarding, m.state.Screen)

	m, cmd = update(t, m, components.PaletteSubmitMsg{Input: "dev:reset"})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Equal(t, 1, nav.resets)
	assert.Equal(t, screenInitializing, m.state.Screen)

	m, _ = update(t, m, components.PaletteSubmitMsg{Input: "bogus"})
	assert.Equal(t, "unknown command: bogus", m.status)
}

func TestDelayedStateRearmsListener(t *testing.T) {
	t.Parallel()
	m := NewModel("1.0.0", &fakeNav{}, nil, nil)
	m.events <- onboardingState(0)

	msg := m.waitForStateCmd()()
	m, cmd := update(t, m, msg)
	assert.Equal(t, screenOnboarding, m.state.Screen)
	assert.NotNil(t, cmd)
}
