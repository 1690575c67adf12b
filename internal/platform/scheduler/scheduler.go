package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/SscSPs/shop_ledger/internal/middleware"
)

// OverdueDispatcher is the slice of the debt service the sweep needs.
type OverdueDispatcher interface {
	DispatchOverdueReminders(ctx context.Context, now time.Time) (int, error)
}

// Scheduler runs the periodic overdue reminder sweep.
type Scheduler struct {
	cron       *cron.Cron
	dispatcher OverdueDispatcher
	logger     *slog.Logger
	timeout    time.Duration
	now        func() time.Time
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(dispatcher OverdueDispatcher, logger *slog.Logger) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	return &Scheduler{
		cron:       cron.New(cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger))),
		dispatcher: dispatcher,
		logger:     logger,
		timeout:    2 * time.Minute,
		now:        time.Now,
	}
}

// Start registers the sweep under schedule and starts the cron scheduler.
func (s *Scheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.RunOverdueSweep); err != nil {
		return fmt.Errorf("failed to schedule overdue reminder sweep %q: %w", schedule, err)
	}
	s.logger.Info("scheduled overdue reminder sweep", "schedule", schedule)
	s.cron.Start()
	return nil
}

// RunOverdueSweep sends reminders for every overdue account once.
func (s *Scheduler) RunOverdueSweep() {
	logger := s.logger.With(slog.String("job", "overdue_reminders"))
	ctx, cancel := context.WithTimeout(middleware.WithLogger(context.Background(), logger), s.timeout)
	defer cancel()

	sent, err := s.dispatcher.DispatchOverdueReminders(ctx, s.now())
	if err != nil {
		logger.Error("overdue reminder sweep finished with errors", "sent", sent, "error", err)
		return
	}
	logger.Info("overdue reminder sweep finished", "sent", sent)
}

// Stop gracefully stops the cron scheduler.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
