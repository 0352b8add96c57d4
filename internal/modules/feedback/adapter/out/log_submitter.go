package out

import (
	"context"
	"unicode/utf8"

	"go.uber.org/zap"

	"pulse/internal/modules/feedback/domain"
	feedbackout "pulse/internal/modules/feedback/port/out"
	"pulse/internal/platform/logging"
)

// LogSubmitter stands in for the feedback backend: it records the hand-off
// as a structured log line and keeps nothing.
type LogSubmitter struct {
	logger *zap.Logger
}

func NewLogSubmitter(logger *zap.Logger) feedbackout.Submitter {
	return &LogSubmitter{logger: logging.OrNop(logger).Named("feedback.submitter")}
}

func (s *LogSubmitter) Submit(ctx context.Context, submission domain.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fields := []zap.Field{
		zap.String("id", submission.ID),
		zap.Int("rating", submission.Rating),
		zap.String("category", string(submission.Category)),
		zap.Int("text_length", utf8.RuneCountInString(submission.Text)),
		zap.Time("submitted_at", submission.SubmittedAt),
		zap.String("app_version", submission.AppVersion),
		zap.Bool("follow_up", submission.FollowUp),
	}
	if submission.ContactEmail != "" {
		fields = append(fields, zap.Bool("has_contact", true))
	}
	s.logger.Info("feedback submitted", fields...)
	return nil
}
