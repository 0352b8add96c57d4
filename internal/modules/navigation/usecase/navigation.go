package usecase

import (
	"context"

	"pulse/internal/modules/navigation/domain"
	navdto "pulse/internal/modules/navigation/dto"
	navin "pulse/internal/modules/navigation/port/in"
	"pulse/internal/modules/navigation/service"
)

type Interactor struct {
	svc *service.NavigationService
}

func NewInteractor(svc *service.NavigationService) navin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Start(ctx context.Context, input navdto.StartInput) (navdto.StateOutput, error) {
	var onChange func(domain.SessionState)
	if input.OnChange != nil {
		onChange = func(s domain.SessionState) { input.OnChange(toOutput(s)) }
	}
	state, err := i.svc.Start(ctx, onChange)
	if err != nil {
		return navdto.StateOutput{}, err
	}
	return toOutput(state), nil
}

func (i *Interactor) OnStartupComplete(ctx context.Context) (navdto.StateOutput, error) {
	state, err := i.svc.OnStartupComplete(ctx)
	if err != nil {
		return navdto.StateOutput{}, err
	}
	return toOutput(state), nil
}

func (i *Interactor) Advance(ctx context.Context, input navdto.AdvanceInput) (navdto.StateOutput, error) {
	state, err := i.svc.Advance(ctx, input.Skip)
	if err != nil {
		return navdto.StateOutput{}, err
	}
	return toOutput(state), nil
}

func (i *Interactor) ResetSession(ctx context.Context) (navdto.StateOutput, error) {
	state, err := i.svc.ResetSession(ctx)
	if err != nil {
		return navdto.StateOutput{}, err
	}
	return toOutput(state), nil
}

func (i *Interactor) HandleDeepLink(ctx context.Context, url string) (navdto.StateOutput, error) {
	return toOutput(i.svc.HandleDeepLink(ctx, url)), nil
}

func (i *Interactor) State(_ context.Context) (navdto.StateOutput, error) {
	state, err := i.svc.State()
	if err != nil {
		return navdto.StateOutput{}, err
	}
	return toOutput(state), nil
}

func toOutput(s domain.SessionState) navdto.StateOutput {
	page := domain.PageAt(s.PageIndex)
	return navdto.StateOutput{
		Screen:             string(s.Screen()),
		Phase:              string(s.Phase()),
		Initializing:       s.Initializing,
		OnboardingComplete: s.OnboardingComplete,
		PageIndex:          s.PageIndex,
		PageCount:          domain.PageCount,
		Revision:           s.Revision,
		Page: navdto.PageOutput{
			Index:     s.PageIndex,
			Title:     page.Title,
			Body:      page.Body,
			Action:    page.Action,
			Skippable: page.Skippable,
		},
	}
}
