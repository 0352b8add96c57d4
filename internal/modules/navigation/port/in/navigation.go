package in

import (
	"context"

	"pulse/internal/modules/navigation/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StateOutput, error)
	OnStartupComplete(ctx context.Context) (dto.StateOutput, error)
	Advance(ctx context.Context, input dto.AdvanceInput) (dto.StateOutput, error)
	ResetSession(ctx context.Context) (dto.StateOutput, error)
	HandleDeepLink(ctx context.Context, url string) (dto.StateOutput, error)
	State(ctx context.Context) (dto.StateOutput, error)
}
