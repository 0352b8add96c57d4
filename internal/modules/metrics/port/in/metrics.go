package in

import (
	"context"

	"pulse/internal/modules/metrics/dto"
)

type Usecase interface {
	Refresh(ctx context.Context) (dto.MetricsOutput, error)
}
