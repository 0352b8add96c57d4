package out

import (
	"context"

	"pulse/internal/modules/metrics/domain"
)

type MetricsSource interface {
	FetchMetrics(ctx context.Context) (domain.HealthMetrics, error)
}
