package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"pulse/internal/modules/navigation/domain"
	navout "pulse/internal/modules/navigation/port/out"
	"pulse/internal/platform/clock"
	apperrors "pulse/internal/platform/errors"
	"pulse/internal/platform/logging"
)

// NavigationService owns SessionState. Every mutation goes through
// domain.Transition under mu; the durable write an effect names happens
// before the new state is committed.
type NavigationService struct {
	store        navout.FlagStore
	scheduler    clock.Scheduler
	startupDelay time.Duration
	logger       *zap.Logger

	mu       sync.Mutex
	state    domain.SessionState
	revision uint64
	started  bool
	pending  clock.Timer
	onChange func(domain.SessionState)
}

func NewNavigationService(store navout.FlagStore, scheduler clock.Scheduler, startupDelay time.Duration, logger *zap.Logger) *NavigationService {
	return &NavigationService{
		store:        store,
		scheduler:    scheduler,
		startupDelay: startupDelay,
		logger:       logging.OrNop(logger).Named("navigation"),
	}
}

// Start reads the persisted flag once and enters Initializing. The startup
// completion fires after the configured delay, or immediately when the
// delay is zero. onChange receives states produced by delayed completions.
func (s *NavigationService) Start(ctx context.Context, onChange func(domain.SessionState)) (domain.SessionState, error) {
	complete, err := s.store.ReadFlag(ctx, domain.FlagOnboardingComplete)
	if err != nil {
		return domain.SessionState{}, fmt.Errorf("read onboarding flag: %w", err)
	}

	s.mu.Lock()
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	epoch := s.state.Epoch
	if s.started {
		epoch++
	}
	fresh := domain.NewSessionState(complete)
	fresh.Epoch = epoch
	s.commitLocked(fresh)
	s.started = true
	s.onChange = onChange
	s.logger.Info("session started", zap.Bool("onboarding_complete", complete), zap.Uint64("epoch", epoch))
	state := s.scheduleStartupLocked()
	s.mu.Unlock()
	return state, nil
}

// OnStartupComplete leaves Initializing. It is ignored once the session has
// already left Initializing.
func (s *NavigationService) OnStartupComplete(_ context.Context) (domain.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return domain.SessionState{}, apperrors.ErrSessionNotStarted
	}
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	return s.applyLocked(domain.ActionStartupComplete), nil
}

// Advance moves onboarding forward. On the last page it persists the
// completion flag first and only then commits the Completed state.
func (s *NavigationService) Advance(ctx context.Context, skip bool) (domain.SessionState, error) {
	action := domain.ActionAdvance
	if skip {
		action = domain.ActionSkip
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return domain.SessionState{}, apperrors.ErrSessionNotStarted
	}
	next, effect := domain.Transition(s.state, action)
	if err := s.performLocked(ctx, effect); err != nil {
		return s.state, err
	}
	if next.Phase() != s.state.Phase() {
		s.logger.Debug("onboarding advanced",
			zap.String("from", string(s.state.Phase())),
			zap.String("to", string(next.Phase())),
			zap.Bool("skip", skip))
	}
	s.commitLocked(next)
	return s.state, nil
}

// ResetSession clears the persisted flag and restarts the session in
// Initializing. Any pending startup completion from the previous epoch is
// cancelled.
func (s *NavigationService) ResetSession(ctx context.Context) (domain.SessionState, error) {
	s.mu.Lock()
	if !s.started {
		s.commitLocked(domain.NewSessionState(false))
		s.started = true
	}
	next, effect := domain.Transition(s.state, domain.ActionReset)
	if err := s.performLocked(ctx, effect); err != nil {
		s.mu.Unlock()
		return domain.SessionState{}, err
	}
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.commitLocked(next)
	s.logger.Info("session reset", zap.Uint64("epoch", next.Epoch))
	state := s.scheduleStartupLocked()
	s.mu.Unlock()
	return state, nil
}

// HandleDeepLink is an extension point for routing external links. It
// currently leaves the session untouched.
func (s *NavigationService) HandleDeepLink(_ context.Context, url string) domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Debug("deep link ignored", zap.String("url", url))
	return s.state
}

func (s *NavigationService) State() (domain.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return domain.SessionState{}, apperrors.ErrSessionNotStarted
	}
	return s.state, nil
}

// scheduleStartupLocked arms the startup completion for the current epoch.
// With no delay the transition is applied inline.
func (s *NavigationService) scheduleStartupLocked() domain.SessionState {
	if s.startupDelay <= 0 {
		return s.applyLocked(domain.ActionStartupComplete)
	}
	epoch := s.state.Epoch
	notify := s.onChange
	s.pending = s.scheduler.AfterFunc(s.startupDelay, func() {
		state, err := s.completeStartup(epoch)
		if err != nil {
			return
		}
		if notify != nil {
			notify(state)
		}
	})
	return s.state
}

// completeStartup runs on the scheduler. A completion armed under an older
// epoch is dropped so it cannot overwrite the current session.
func (s *NavigationService) completeStartup(epoch uint64) (domain.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.state.Epoch {
		s.logger.Debug("dropping stale startup completion",
			zap.Uint64("epoch", epoch), zap.Uint64("current", s.state.Epoch))
		return domain.SessionState{}, apperrors.ErrStaleCompletion
	}
	if !s.state.Initializing {
		return domain.SessionState{}, apperrors.ErrStaleCompletion
	}
	s.pending = nil
	return s.applyLocked(domain.ActionStartupComplete), nil
}

func (s *NavigationService) applyLocked(action domain.Action) domain.SessionState {
	next, _ := domain.Transition(s.state, action)
	if next.Screen() != s.state.Screen() {
		s.logger.Info("screen changed",
			zap.String("from", string(s.state.Screen())),
			zap.String("to", string(next.Screen())))
	}
	s.commitLocked(next)
	return s.state
}

// commitLocked installs next with a fresh revision so observers can order
// the states they receive.
func (s *NavigationService) commitLocked(next domain.SessionState) {
	s.revision++
	next.Revision = s.revision
	s.state = next
}

func (s *NavigationService) performLocked(ctx context.Context, effect domain.Effect) error {
	switch effect {
	case domain.EffectNone:
		return nil
	case domain.EffectPersistComplete:
		if err := s.store.WriteFlag(ctx, domain.FlagOnboardingComplete, true); err != nil {
			return fmt.Errorf("persist onboarding completion: %w", err)
		}
		s.logger.Info("onboarding completed")
		return nil
	case domain.EffectClearFlag:
		if err := s.store.WriteFlag(ctx, domain.FlagOnboardingComplete, false); err != nil {
			return fmt.Errorf("clear onboarding flag: %w", err)
		}
		return nil
	default:
		panic(fmt.Sprintf("navigation: unknown effect %d", effect))
	}
}
