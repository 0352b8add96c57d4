package in

import (
	"context"

	navdto "pulse/internal/modules/navigation/dto"
	navin "pulse/internal/modules/navigation/port/in"
)

type CLIHandler struct {
	usecase navin.Usecase
}

func NewCLIHandler(usecase navin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, onChange func(navdto.StateOutput)) (navdto.StateOutput, error) {
	return h.usecase.Start(ctx, navdto.StartInput{OnChange: onChange})
}

func (h CLIHandler) OnStartupComplete(ctx context.Context) (navdto.StateOutput, error) {
	return h.usecase.OnStartupComplete(ctx)
}

func (h CLIHandler) Advance(ctx context.Context, skip bool) (navdto.StateOutput, error) {
	return h.usecase.Advance(ctx, navdto.AdvanceInput{Skip: skip})
}

func (h CLIHandler) ResetSession(ctx context.Context) (navdto.StateOutput, error) {
	return h.usecase.ResetSession(ctx)
}

func (h CLIHandler) HandleDeepLink(ctx context.Context, url string) (navdto.StateOutput, error) {
	return h.usecase.HandleDeepLink(ctx, url)
}

func (h CLIHandler) State(ctx context.Context) (navdto.StateOutput, error) {
	return h.usecase.State(ctx)
}
