package domain

import "fmt"

// FlagOnboardingComplete is the persisted key recording that the user
// finished onboarding.
const FlagOnboardingComplete = "hasCompletedOnboarding"

type Screen string

const (
	ScreenInitializing Screen = "initializing"
	ScreenOnboarding   Screen = "onboarding"
	ScreenDashboard    Screen = "dashboard"
)

type Action string

const (
	ActionStartupComplete Action = "startup_complete"
	ActionAdvance         Action = "advance"
	// ActionSkip behaves exactly like ActionAdvance.
	ActionSkip  Action = "skip"
	ActionReset Action = "reset"
)

// Effect names the durable write a transition requires. The caller performs
// it before committing the returned state.
type Effect int

const (
	EffectNone Effect = iota
	EffectPersistComplete
	EffectClearFlag
)

// SessionState lives for one process. Epoch increases on every reset so
// delayed completions scheduled under an older session can be told apart.
// Revision is stamped by the owner on every commit; Transition leaves it
// alone.
type SessionState struct {
	Initializing       bool
	OnboardingComplete bool
	PageIndex          int
	Epoch              uint64
	Revision           uint64
}

// NewSessionState seeds a session from the persisted flag.
func NewSessionState(onboardingComplete bool) SessionState {
	return SessionState{Initializing: true, OnboardingComplete: onboardingComplete}
}

func (s SessionState) Screen() Screen {
	switch {
	case s.Initializing:
		return ScreenInitializing
	case s.OnboardingComplete:
		return ScreenDashboard
	default:
		return ScreenOnboarding
	}
}

func (s SessionState) Phase() Phase {
	if s.OnboardingComplete {
		return PhaseCompleted
	}
	return PhaseForPage(s.PageIndex)
}

// Transition is the whole navigation state machine. It never touches
// storage; a non-None effect tells the caller what to persist.
func Transition(s SessionState, a Action) (SessionState, Effect) {
	mustValidPage(s.PageIndex)
	switch a {
	case ActionStartupComplete:
		if !s.Initializing {
			return s, EffectNone
		}
		s.Initializing = false
		return s, EffectNone

	case ActionAdvance, ActionSkip:
		if s.Screen() != ScreenOnboarding {
			return s, EffectNone
		}
		if s.PageIndex < LastPage {
			s.PageIndex++
			return s, EffectNone
		}
		s.OnboardingComplete = true
		return s, EffectPersistComplete

	case ActionReset:
		next := NewSessionState(false)
		next.Epoch = s.Epoch + 1
		next.Revision = s.Revision
		return next, EffectClearFlag

	default:
		panic(fmt.Sprintf("navigation: unknown action %q", a))
	}
}

func mustValidPage(i int) {
	if i < 0 || i > LastPage {
		panic(fmt.Sprintf("navigation: onboarding page index %d outside [0,%d]", i, LastPage))
	}
}
