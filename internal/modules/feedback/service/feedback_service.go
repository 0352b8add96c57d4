package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pulse/internal/modules/feedback/domain"
	feedbackout "pulse/internal/modules/feedback/port/out"
	"pulse/internal/platform/clock"
	apperrors "pulse/internal/platform/errors"
	"pulse/internal/platform/id"
	"pulse/internal/platform/logging"
)

type FeedbackService struct {
	clock      clock.Clock
	idGen      id.Generator
	scheduler  clock.Scheduler
	submitter  feedbackout.Submitter
	delay      time.Duration
	appVersion string
	logger     *zap.Logger
}

type Receipt struct {
	Submission domain.Submission
	Delivered  bool
}

func NewFeedbackService(clk clock.Clock, idGen id.Generator, scheduler clock.Scheduler, submitter feedbackout.Submitter, delay time.Duration, appVersion string, logger *zap.Logger) *FeedbackService {
	return &FeedbackService{
		clock:      clk,
		idGen:      idGen,
		scheduler:  scheduler,
		submitter:  submitter,
		delay:      delay,
		appVersion: appVersion,
		logger:     logging.OrNop(logger).Named("feedback"),
	}
}

// Submit validates the draft, waits out the submission delay and hands a
// snapshot to the submitter. A submitter failure is logged and reported
// through Receipt.Delivered; it is not returned as an error. Cancelling ctx
// before the delay elapses abandons the submission.
func (s *FeedbackService) Submit(ctx context.Context, draft domain.Draft) (Receipt, error) {
	if err := draft.Validate(); err != nil {
		return Receipt{}, fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, err)
	}
	if s.submitter == nil {
		return Receipt{}, fmt.Errorf("feedback submitter: %w", apperrors.ErrNotConfigured)
	}
	submission := domain.NewSubmission(s.idGen.New(), draft, s.clock.Now(), s.appVersion)

	if err := clock.Sleep(ctx, s.scheduler, s.delay); err != nil {
		s.logger.Debug("feedback submission abandoned", zap.String("id", submission.ID), zap.Error(err))
		return Receipt{}, err
	}

	if err := s.submitter.Submit(ctx, submission); err != nil {
		s.logger.Warn("feedback hand-off failed",
			zap.String("id", submission.ID),
			zap.String("category", string(submission.Category)),
			zap.Error(err))
		return Receipt{Submission: submission}, nil
	}
	return Receipt{Submission: submission, Delivered: true}, nil
}
