package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	feedbackout "pulse/internal/modules/feedback/adapter/out"
	feedbackdto "pulse/internal/modules/feedback/dto"
	"pulse/internal/modules/feedback/service"
	"pulse/internal/modules/feedback/usecase"
	"pulse/internal/platform/clock"
	apperrors "pulse/internal/platform/errors"
	"pulse/internal/platform/id"
)

func newInteractor(logger *zap.Logger) *usecase.Interactor {
	svc := service.NewFeedbackService(
		clock.FixedClock{At: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)},
		id.UUID{},
		clock.NewManualScheduler(),
		feedbackout.NewLogSubmitter(logger),
		0,
		"1.0.0",
		logger,
	)
	return usecase.NewInteractor(svc).(*usecase.Interactor)
}

func TestSubmitThroughLogSubmitter(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zap.InfoLevel)
	uc := newInteractor(zap.New(core))

	out, err := uc.Submit(context.Background(), feedbackdto.SubmitInput{
		Rating:       5,
		Category:     "userInterface",
		Text:         "The dashboard is easy to read.",
		ContactEmail: "me@example.com",
	})
	require.NoError(t, err)
	assert.True(t, out.Acknowledged)
	assert.True(t, out.Delivered)
	assert.NotEmpty(t, out.SubmissionID)
	assert.NotEmpty(t, out.Message)

	entries := logs.FilterMessage("feedback submitted").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, out.SubmissionID, fields["id"])
	assert.Equal(t, "userInterface", fields["category"])
	assert.Equal(t, true, fields["has_contact"])
	assert.NotContains(t, fields, "text", "feedback text must not be logged")
}

func TestSubmitRejectsUnknownCategoryInput(t *testing.T) {
	t.Parallel()
	uc := newInteractor(nil)
	_, err := uc.Submit(context.Background(), feedbackdto.SubmitInput{Rating: 3, Category: "billing", Text: "0123456789"})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestValidateAndCategories(t *testing.T) {
	t.Parallel()
	uc := newInteractor(nil)
	ctx := context.Background()
	assert.Equal(t, feedbackdto.ValidationOutput{Reason: "insufficient detail"}, uc.Validate(ctx, 5, "a"))
	assert.Equal(t, feedbackdto.ValidationOutput{Valid: true}, uc.Validate(ctx, 5, "  0123456789  "))
	assert.Equal(t, feedbackdto.ValidationOutput{Reason: "rating out of range"}, uc.Validate(ctx, 0, "0123456789"))

	cats := uc.Categories(ctx)
	require.Len(t, cats, 5)
	assert.Equal(t, "general", cats[0].ID)
	assert.Equal(t, "features", cats[4].ID)
}
