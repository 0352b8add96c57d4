package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	navinadapter "pulse/internal/modules/navigation/adapter/in"
	navoutadapter "pulse/internal/modules/navigation/adapter/out"
	navdto "pulse/internal/modules/navigation/dto"
	navservice "pulse/internal/modules/navigation/service"
	navusecase "pulse/internal/modules/navigation/usecase"
	"pulse/internal/platform/clock"
	onboardingview "pulse/internal/ui/views/onboarding"
)

func newNavigation(t *testing.T) navinadapter.CLIHandler {
	t.Helper()
	svc := navservice.NewNavigationService(navoutadapter.NewMemoryFlagStore(), clock.NewManualScheduler(), 0, nil)
	return navinadapter.NewCLIHandler(navusecase.NewInteractor(svc))
}

func TestScreenFollowsServiceAcrossRapidAdvances(t *testing.T) {
	t.Parallel()
	nav := newNavigation(t)
	m := NewModel("1.0.0", nav, nil, nil)

	m, _ = update(t, m, m.startCmd()())
	require.Equal(t, screenOnboarding, m.state.Screen)

	m, first := update(t, m, onboardingview.AdvanceRequestedMsg{})
	m, second := update(t, m, onboardingview.AdvanceRequestedMsg{})
	require.NotNil(t, first)
	assert.Nil(t, second)
	m, _ = update(t, m, first())

	want, err := nav.State(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want.PageIndex, m.state.PageIndex)
	assert.Equal(t, 1, m.state.PageIndex)
}

func TestLateAnswerCannotRewindScreen(t *testing.T) {
	t.Parallel()
	nav := newNavigation(t)
	ctx := context.Background()
	m := NewModel("1.0.0", nav, nil, nil)
	m, _ = update(t, m, m.startCmd()())

	page1, err := nav.Advance(ctx, false)
	require.NoError(t, err)
	page2, err := nav.Advance(ctx, false)
	require.NoError(t, err)

	for _, s := range []navdto.StateOutput{page2, page1} {
		m, _ = update(t, m, stateMsg{state: s})
	}
	assert.Equal(t, 2, m.state.PageIndex)
}
