package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Compactor reclaims space left behind by replaced or deleted PDFs.
type Compactor interface {
	Compact(ctx context.Context) error
}

// MaintenanceService runs storage compaction on a cron schedule.
type MaintenanceService struct {
	compactor Compactor
	mu        sync.Mutex
	sched     *cron.Cron
}

// NewMaintenanceService creates a MaintenanceService.
func NewMaintenanceService(c Compactor) *MaintenanceService {
	return &MaintenanceService{compactor: c}
}

// Start schedules compaction using a standard 5-field cron expression or a
// descriptor such as "@daily". An empty schedule disables it.
func (s *MaintenanceService) Start(ctx context.Context, schedule string) error {
	s.Stop()
	if schedule == "" {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("maintenance: invalid schedule %q: %w", schedule, err)
	}
	c.Start()

	s.mu.Lock()
	s.sched = c
	s.mu.Unlock()
	slog.Info("maintenance: compaction scheduled", "schedule", schedule)
	return nil
}

// RunOnce compacts the store now.
func (s *MaintenanceService) RunOnce(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err := s.compactor.Compact(ctx); err != nil {
		slog.Error("maintenance: compaction failed", "err", err)
		return err
	}
	slog.Debug("maintenance: compaction done")
	return nil
}

// Stop cancels the schedule and waits for a running compaction.
func (s *MaintenanceService) Stop() {
	s.mu.Lock()
	c := s.sched
	s.sched = nil
	s.mu.Unlock()
	if c != nil {
		<-c.Stop().Done()
	}
}
