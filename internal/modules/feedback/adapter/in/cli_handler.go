package in

import (
	"context"

	feedbackdto "pulse/internal/modules/feedback/dto"
	feedbackin "pulse/internal/modules/feedback/port/in"
)

type CLIHandler struct {
	usecase feedbackin.Usecase
}

func NewCLIHandler(usecase feedbackin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Validate(ctx context.Context, rating int, text string) feedbackdto.ValidationOutput {
	return h.usecase.Validate(ctx, rating, text)
}

func (h CLIHandler) Submit(ctx context.Context, rating int, category, text, email string, followUp bool) (feedbackdto.SubmitOutput, error) {
	return h.usecase.Submit(ctx, feedbackdto.SubmitInput{
		Rating:       rating,
		Category:     category,
		Text:         text,
		ContactEmail: email,
		FollowUp:     followUp,
	})
}

func (h CLIHandler) Categories(ctx context.Context) []feedbackdto.CategoryOutput {
	return h.usecase.Categories(ctx)
}
