package in

import (
	"context"

	metricsdto "pulse/internal/modules/metrics/dto"
	metricsin "pulse/internal/modules/metrics/port/in"
)

type CLIHandler struct {
	usecase metricsin.Usecase
}

func NewCLIHandler(usecase metricsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Refresh(ctx context.Context) (metricsdto.MetricsOutput, error) {
	return h.usecase.Refresh(ctx)
}
