package usecase

import (
	"context"
	"fmt"

	"pulse/internal/modules/feedback/domain"
	feedbackdto "pulse/internal/modules/feedback/dto"
	feedbackin "pulse/internal/modules/feedback/port/in"
	"pulse/internal/modules/feedback/service"
	apperrors "pulse/internal/platform/errors"
)

const thankYou = "Thank you! Your feedback helps us improve Pulse."

type Interactor struct {
	svc *service.FeedbackService
}

func NewInteractor(svc *service.FeedbackService) feedbackin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Validate(_ context.Context, rating int, text string) feedbackdto.ValidationOutput {
	r := domain.Validate(rating, text)
	return feedbackdto.ValidationOutput{Valid: r.Valid, Reason: r.Reason}
}

func (i *Interactor) Submit(ctx context.Context, input feedbackdto.SubmitInput) (feedbackdto.SubmitOutput, error) {
	category, err := domain.ParseCategory(input.Category)
	if err != nil {
		return feedbackdto.SubmitOutput{}, fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, err)
	}
	receipt, err := i.svc.Submit(ctx, domain.Draft{
		Rating:       input.Rating,
		Category:     category,
		Text:         input.Text,
		ContactEmail: input.ContactEmail,
		FollowUp:     input.FollowUp,
	})
	if err != nil {
		return feedbackdto.SubmitOutput{}, err
	}
	return feedbackdto.SubmitOutput{
		SubmissionID: receipt.Submission.ID,
		SubmittedAt:  receipt.Submission.SubmittedAt,
		Category:     string(receipt.Submission.Category),
		Acknowledged: true,
		Delivered:    receipt.Delivered,
		Message:      thankYou,
	}, nil
}

func (i *Interactor) Categories(_ context.Context) []feedbackdto.CategoryOutput {
	all := domain.Categories()
	out := make([]feedbackdto.CategoryOutput, 0, len(all))
	for _, c := range all {
		out = append(out, feedbackdto.CategoryOutput{ID: string(c), Label: c.Label()})
	}
	return out
}
