package backup

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jacentio/studiodesk/store"
)

// Spec maps a backup frequency onto a cron descriptor. Unknown values run
// daily.
func Spec(freq store.BackupFrequency) string {
	switch freq {
	case store.BackupWeekly:
		return "@weekly"
	case store.BackupMonthly:
		return "@monthly"
	default:
		return "@daily"
	}
}

// Result reports what a backup pass did.
type Result struct {
	Manifest Manifest
	// Skipped is set when no export ran.
	Skipped bool
	Reason  string
}

// Run exports the current snapshot of s unless automatic backups are off or
// the contents still match lastFingerprint. An empty lastFingerprint always
// exports.
func Run(ctx context.Context, s *store.Store, exp Exporter, lastFingerprint string) (Result, error) {
	if !s.SystemSettings().AutoBackup {
		return Result{Skipped: true, Reason: "auto backup disabled"}, nil
	}

	snap := s.Snapshot()
	if lastFingerprint != "" {
		fp, err := Fingerprint(snap)
		if err != nil {
			return Result{}, err
		}
		if fp == lastFingerprint {
			return Result{Skipped: true, Reason: "unchanged since last backup"}, nil
		}
	}

	m, err := exp.Export(ctx, snap)
	if err != nil {
		return Result{}, fmt.Errorf("export: %w", err)
	}
	return Result{Manifest: m}, nil
}

// Scheduler runs backups in-process on the frequency held in the system
// settings, following changes to them.
type Scheduler struct {
	cron     *cron.Cron
	store    *store.Store
	exporter Exporter
	logger   *slog.Logger
	timeout  time.Duration

	mu          sync.Mutex
	entry       cron.EntryID
	spec        string
	fingerprint string
	unsubscribe func()
}

// NewScheduler creates a Scheduler. Call Start to begin.
func NewScheduler(s *store.Store, exp Exporter, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:     cron.New(),
		store:    s,
		exporter: exp,
		logger:   logger,
		timeout:  5 * time.Minute,
	}
}

// Start schedules backups and begins following system settings changes.
func (sc *Scheduler) Start() error {
	if err := sc.reschedule(); err != nil {
		return err
	}
	sc.mu.Lock()
	sc.unsubscribe = sc.store.Subscribe(func(c store.Change) {
		if c.Entity != store.EntitySystem {
			return
		}
		if err := sc.reschedule(); err != nil {
			sc.logger.Error("backup reschedule failed", "error", err)
		}
	})
	sc.mu.Unlock()

	sc.cron.Start()
	sc.logger.Info("backup scheduler started", "spec", sc.Spec())
	return nil
}

// Stop halts the schedule and waits for a running backup or ctx, whichever
// finishes first.
func (sc *Scheduler) Stop(ctx context.Context) {
	sc.mu.Lock()
	if sc.unsubscribe != nil {
		sc.unsubscribe()
		sc.unsubscribe = nil
	}
	sc.mu.Unlock()

	select {
	case <-sc.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// Spec returns the cron descriptor currently scheduled.
func (sc *Scheduler) Spec() string {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.spec
}

// reschedule replaces the cron entry when the frequency changed.
func (sc *Scheduler) reschedule() error {
	spec := Spec(sc.store.SystemSettings().BackupFrequency)

	sc.mu.Lock()
	defer sc.mu.Unlock()
	if spec == sc.spec {
		return nil
	}
	id, err := sc.cron.AddFunc(spec, sc.Tick)
	if err != nil {
		return fmt.Errorf("backup schedule %q: %w", spec, err)
	}
	if sc.spec != "" {
		sc.cron.Remove(sc.entry)
		sc.logger.Info("backup rescheduled", "from", sc.spec, "to", spec)
	}
	sc.entry = id
	sc.spec = spec
	return nil
}

// Tick runs one backup pass with the scheduler's timeout.
func (sc *Scheduler) Tick() {
	ctx, cancel := context.WithTimeout(context.Background(), sc.timeout)
	defer cancel()
	if _, err := sc.RunOnce(ctx); err != nil {
		sc.logger.Error("backup failed", "error", err)
	}
}

// RunOnce runs a backup pass, skipping it when nothing changed since the last
// export this scheduler made.
func (sc *Scheduler) RunOnce(ctx context.Context) (Result, error) {
	sc.mu.Lock()
	last := sc.fingerprint
	sc.mu.Unlock()

	res, err := Run(ctx, sc.store, sc.exporter, last)
	if err != nil {
		return res, err
	}
	if res.Skipped {
		sc.logger.Debug("backup skipped", "reason", res.Reason)
		return res, nil
	}

	sc.mu.Lock()
	sc.fingerprint = res.Manifest.Fingerprint
	sc.mu.Unlock()
	return res, nil
}
