package out

import (
	"context"

	"pulse/internal/modules/feedback/domain"
)

// Submitter receives validated feedback. Implementations must not retain
// the submission after returning.
type Submitter interface {
	Submit(ctx context.Context, submission domain.Submission) error
}
