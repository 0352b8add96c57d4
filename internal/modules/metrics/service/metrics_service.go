package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pulse/internal/modules/metrics/domain"
	metricsout "pulse/internal/modules/metrics/port/out"
	"pulse/internal/platform/clock"
	"pulse/internal/platform/logging"
)

type MetricsService struct {
	source    metricsout.MetricsSource
	scheduler clock.Scheduler
	delay     time.Duration
	logger    *zap.Logger
}

func NewMetricsService(source metricsout.MetricsSource, scheduler clock.Scheduler, delay time.Duration, logger *zap.Logger) *MetricsService {
	return &MetricsService{source: source, scheduler: scheduler, delay: delay, logger: logging.OrNop(logger).Named("metrics")}
}

// Refresh waits out the refresh delay, then fetches a reading.
func (s *MetricsService) Refresh(ctx context.Context) (domain.HealthMetrics, error) {
	if err := clock.Sleep(ctx, s.scheduler, s.delay); err != nil {
		return domain.HealthMetrics{}, err
	}
	m, err := s.source.FetchMetrics(ctx)
	if err != nil {
		return domain.HealthMetrics{}, fmt.Errorf("fetch metrics: %w", err)
	}
	if err := m.Validate(); err != nil {
		return domain.HealthMetrics{}, fmt.Errorf("metrics source: %w", err)
	}
	s.logger.Debug("metrics refreshed", zap.Int("heart_rate", m.HeartRate), zap.Int("steps", m.Steps))
	return m, nil
}
