package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/fuazim/fitcamp/internal/dashboard"
	"github.com/fuazim/fitcamp/internal/logger"
	"github.com/fuazim/fitcamp/internal/metrics"

	"github.com/robfig/cron/v3"
)

const refreshTimeout = 10 * time.Second

type BacklogSource interface {
	Backlog(ctx context.Context) (*dashboard.Backlog, error)
}

type QueueSource interface {
	QueueLength(ctx context.Context) int64
}

// Scheduler refreshes the backlog gauges on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	backlog BacklogSource
	queue   QueueSource
}

func New(spec string, backlog BacklogSource, queue QueueSource) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(),
		backlog: backlog,
		queue:   queue,
	}

	if _, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		s.Refresh(ctx)
	}); err != nil {
		return nil, fmt.Errorf("invalid stats schedule %q: %w", spec, err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	logger.Info("stats scheduler started")
	s.cron.Start()
}

// Stop waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Info("stats scheduler stopped")
}

func (s *Scheduler) Refresh(ctx context.Context) {
	if s.queue != nil {
		metrics.EmailQueueLength.Set(float64(s.queue.QueueLength(ctx)))
	}

	b, err := s.backlog.Backlog(ctx)
	if err != nil {
		logger.Error("failed to refresh backlog gauges", "error", err)
		return
	}
	metrics.SetBacklog(b.PendingOrders, b.PaymentsWaiting, b.ActiveTickets)
}
