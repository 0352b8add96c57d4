package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	metricsout "pulse/internal/modules/metrics/adapter/out"
	"pulse/internal/modules/metrics/domain"
	"pulse/internal/modules/metrics/service"
	"pulse/internal/platform/clock"
)

type badSource struct{}

func (badSource) FetchMetrics(context.Context) (domain.HealthMetrics, error) {
	return domain.HealthMetrics{Steps: -1}, nil
}

func TestRefreshReturnsNonNegativeReadings(t *testing.T) {
	t.Parallel()
	at := time.Date(2026, 10, 19, 7, 0, 0, 0, time.UTC)
	svc := service.NewMetricsService(metricsout.NewSyntheticSource(clock.FixedClock{At: at}, 42), clock.NewManualScheduler(), 0, nil)
	for i := 0; i < 50; i++ {
		m, err := svc.Refresh(context.Background())
		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.Equal(t, at, m.UpdatedAt)
		assert.GreaterOrEqual(t, m.HeartRate, 60)
		assert.LessOrEqual(t, m.Steps, 12000)
	}
}

func TestSyntheticSourceIsSeedDeterministic(t *testing.T) {
	t.Parallel()
	clk := clock.FixedClock{At: time.Unix(0, 0).UTC()}
	a, err := metricsout.NewSyntheticSource(clk, 7).FetchMetrics(context.Background())
	require.NoError(t, err)
	b, err := metricsout.NewSyntheticSource(clk, 7).FetchMetrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRefreshRejectsInvalidReading(t *testing.T) {
	t.Parallel()
	svc := service.NewMetricsService(badSource{}, clock.NewManualScheduler(), 0, nil)
	_, err := svc.Refresh(context.Background())
	require.Error(t, err)
}

func TestRefreshCancelledDuringDelay(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := service.NewMetricsService(badSource{}, clock.NewManualScheduler(), time.Second, nil)
	_, err := svc.Refresh(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
