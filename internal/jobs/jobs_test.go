package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/fuazim/fitcamp/internal/dashboard"
	"github.com/fuazim/fitcamp/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticBacklog struct {
	backlog *dashboard.Backlog
	err     error
}

func (s staticBacklog) Backlog(context.Context) (*dashboard.Backlog, error) {
	return s.backlog, s.err
}

type staticQueue int64

func (q staticQueue) QueueLength(context.Context) int64 { return int64(q) }

func TestScheduler_Refresh(t *testing.T) {
	s, err := New("@every 1m", staticBacklog{backlog: &dashboard.Backlog{PendingOrders: 7, PaymentsWaiting: 3, ActiveTickets: 21}}, staticQueue(2))
	require.NoError(t, err)

	s.Refresh(context.Background())

	assert.Equal(t, float64(7), testutil.ToFloat64(metrics.PendingOrders))
	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.PaymentsWaitingReview))
	assert.Equal(t, float64(21), testutil.ToFloat64(metrics.ActiveTickets))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.EmailQueueLength))
}

func TestScheduler_RefreshKeepsGaugesOnError(t *testing.T) {
	metrics.SetBacklog(1, 1, 1)
	s, err := New("@every 1m", staticBacklog{err: errors.New("db down")}, nil)
	require.NoError(t, err)

	s.Refresh(context.Background())

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.PendingOrders))
}

func TestNew_InvalidSpec(t *testing.T) {
	_, err := New("every now and then", staticBacklog{}, nil)
	assert.Error(t, err)
}

func TestScheduler_StartStop(t *testing.T) {
	s, err := New("@every 1h", staticBacklog{backlog: &dashboard.Backlog{}}, nil)
	require.NoError(t, err)

	s.Start()
	s.Stop()
}
