package dashboard

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	metricsdto "pulse/internal/modules/metrics/dto"
)

type fakeMetrics struct {
	out metricsdto.MetricsOutput
}

func (f fakeMetrics) Refresh(ctx context.Context) (metricsdto.MetricsOutput, error) {
	if err := ctx.Err(); err != nil {
		return metricsdto.MetricsOutput{}, err
	}
	return f.out, nil
}

// loadedMsg runs the refresh batch and returns its metrics result.
func loadedMsg(t *testing.T, cmd tea.Cmd) MetricsLoadedMsg {
	t.Helper()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, c := range batch {
		if c == nil {
			continue
		}
		if msg, ok := c().(MetricsLoadedMsg); ok {
			return msg
		}
	}
	t.Fatal("refresh produced no MetricsLoadedMsg")
	return MetricsLoadedMsg{}
}

var sample = metricsdto.MetricsOutput{HeartRate: 72, RestingHeartRate: 58, HRV: 45, Steps: 8000, UpdatedAt: time.Unix(0, 0)}

func TestRefreshAppliesCurrentResult(t *testing.T) {
	t.Parallel()
	m := New(fakeMetrics{out: sample})

	msg := loadedMsg(t, m.Refresh())
	m, _ = m.Update(msg)
	assert.True(t, m.loaded)
	assert.False(t, m.refreshing)
	assert.Equal(t, sample, m.metrics)
}

func TestResultAfterTeardownIsIgnored(t *testing.T) {
	t.Parallel()
	m := New(fakeMetrics{out: sample})

	cmd := m.Refresh()
	m.Teardown()
	msg := loadedMsg(t, cmd)
	require.ErrorIs(t, msg.Err, context.Canceled)

	m, _ = m.Update(msg)
	assert.False(t, m.loaded)
	assert.NoError(t, m.err)
}

func TestOlderRefreshIsIgnored(t *testing.T) {
	t.Parallel()
	m := New(fakeMetrics{out: sample})

	first := m.Refresh()
	second := m.Refresh()
	stale := MetricsLoadedMsg{Seq: 1, Metrics: metricsdto.MetricsOutput{HeartRate: 999}}

	m, _ = m.Update(stale)
	assert.False(t, m.loaded)
	assert.True(t, m.refreshing)

	m, _ = m.Update(loadedMsg(t, second))
	assert.Equal(t, 72, m.metrics.HeartRate)
	assert.NotNil(t, first)
}

func TestRefreshWithoutSource(t *testing.T) {
	t.Parallel()
	m := New(nil)
	assert.Nil(t, m.Refresh())
	assert.Error(t, m.err)
}
