package out

import (
	"context"
	"math/rand/v2"
	"sync"

	"pulse/internal/modules/metrics/domain"
	metricsout "pulse/internal/modules/metrics/port/out"
	"pulse/internal/platform/clock"
)

// SyntheticSource produces plausible sample readings until a real health
// data source is integrated.
type SyntheticSource struct {
	clock clock.Clock
	mu    sync.Mutex
	rng   *rand.Rand
}

func NewSyntheticSource(clk clock.Clock, seed uint64) metricsout.MetricsSource {
	return &SyntheticSource{clock: clk, rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *SyntheticSource) FetchMetrics(ctx context.Context) (domain.HealthMetrics, error) {
	if err := ctx.Err(); err != nil {
		return domain.HealthMetrics{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.HealthMetrics{
		HeartRate:        s.between(60, 100),
		RestingHeartRate: s.between(55, 75),
		HRV:              s.between(25, 65),
		Steps:            s.between(2000, 12000),
		UpdatedAt:        s.clock.Now(),
	}, nil
}

func (s *SyntheticSource) between(lo, hi int) int {
	return lo + s.rng.IntN(hi-lo+1)
}
