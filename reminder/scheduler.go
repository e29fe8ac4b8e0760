package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the planner and dispatcher on a cron schedule.
type Scheduler struct {
	cron       *cron.Cron
	planner    *Planner
	dispatcher *Dispatcher
	logger     *slog.Logger
	timeout    time.Duration
}

// NewScheduler registers a planning and dispatch pass on spec, which accepts
// standard cron expressions and descriptors such as "@every 1m".
func NewScheduler(spec string, planner *Planner, dispatcher *Dispatcher, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Scheduler{
		cron:       cron.New(),
		planner:    planner,
		dispatcher: dispatcher,
		logger:     logger,
		timeout:    time.Minute,
	}
	if _, err := s.cron.AddFunc(spec, s.Tick); err != nil {
		return nil, fmt.Errorf("reminder schedule %q: %w", spec, err)
	}
	return s, nil
}

// Tick runs one planning and dispatch pass.
func (s *Scheduler) Tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	s.planner.Plan()
	if _, err := s.dispatcher.Run(ctx); err != nil {
		s.logger.Error("reminder dispatch failed", "error", err)
	}
}

// Start begins running the schedule in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("reminder scheduler started")
}

// Stop halts the schedule and waits for a running pass or ctx, whichever
// finishes first.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
