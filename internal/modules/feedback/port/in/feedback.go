package in

import (
	"context"

	"pulse/internal/modules/feedback/dto"
)

type Usecase interface {
	Validate(ctx context.Context, rating int, text string) dto.ValidationOutput
	Submit(ctx context.Context, input dto.SubmitInput) (dto.SubmitOutput, error)
	Categories(ctx context.Context) []dto.CategoryOutput
}
