package room

import (
	"context"
	"time"

	"kitchen-rush/internal/logging"
)

// Scheduler drives every active room from a single goroutine.
type Scheduler struct {
	manager  *Manager
	interval time.Duration
}

func NewScheduler(m *Manager, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Scheduler{manager: m, interval: interval}
}

// Run ticks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	logger := logging.FromContext(ctx).Named("room.scheduler")
	logger.Infof("scheduler started, interval %s", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Infof("scheduler stopped")
			return nil
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

func (s *Scheduler) RunOnce(ctx context.Context) {
	s.manager.TickAll(ctx)
}
