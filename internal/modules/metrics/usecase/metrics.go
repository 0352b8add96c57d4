package usecase

import (
	"context"

	metricsdto "pulse/internal/modules/metrics/dto"
	metricsin "pulse/internal/modules/metrics/port/in"
	"pulse/internal/modules/metrics/service"
)

type Interactor struct {
	svc *service.MetricsService
}

func NewInteractor(svc *service.MetricsService) metricsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Refresh(ctx context.Context) (metricsdto.MetricsOutput, error) {
	m, err := i.svc.Refresh(ctx)
	if err != nil {
		return metricsdto.MetricsOutput{}, err
	}
	return metricsdto.MetricsOutput{
		HeartRate:        m.HeartRate,
		RestingHeartRate: m.RestingHeartRate,
		HRV:              m.HRV,
		Steps:            m.Steps,
		UpdatedAt:        m.UpdatedAt,
	}, nil
}
