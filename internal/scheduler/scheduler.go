// Package scheduler runs periodic maintenance jobs: expired cache sweeps and
// recommendation history retention.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/crop-advisor/internal/config"
	"github.com/donaldgifford/crop-advisor/internal/metrics"
)

// Job names used in logs and metrics.
const (
	JobCacheSweep   = "cache_sweep"
	JobHistoryPrune = "history_prune"
)

// Sweeper removes expired cache entries.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// HistoryPruner deletes history rows older than a cutoff.
type HistoryPruner interface {
	PruneHistory(ctx context.Context, olderThan time.Time) (int, error)
}

// Scheduler manages periodic maintenance tasks.
type Scheduler struct {
	cron      *cron.Cron
	sweeper   Sweeper
	pruner    HistoryPruner
	retention time.Duration
	now       func() time.Time
	log       *slog.Logger
}

// NewScheduler registers a job for every non-zero interval in cfg. A nil
// sweeper or pruner disables its job regardless of the interval.
func NewScheduler(
	cfg config.ScheduleConfig,
	sweeper Sweeper,
	pruner HistoryPruner,
	log *slog.Logger,
) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:      c,
		sweeper:   sweeper,
		pruner:    pruner,
		retention: cfg.HistoryRetention,
		now:       time.Now,
		log:       log,
	}

	if sweeper != nil && cfg.CacheSweepInterval > 0 {
		if _, err := c.AddFunc(
			"@every "+cfg.CacheSweepInterval.String(),
			func() { s.RunCacheSweep(context.Background()) },
		); err != nil {
			return nil, err
		}
	}

	if pruner != nil && cfg.HistoryPruneInterval > 0 && cfg.HistoryRetention > 0 {
		if _, err := c.AddFunc(
			"@every "+cfg.HistoryPruneInterval.String(),
			func() { s.RunHistoryPrune(context.Background()) },
		); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started", "jobs", len(s.cron.Entries()))
	s.cron.Start()
}

// Stop stops the scheduler. The returned context is done once running jobs
// have finished.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// RunCacheSweep removes expired cache entries once.
func (s *Scheduler) RunCacheSweep(ctx context.Context) {
	removed, err := s.sweeper.Sweep(ctx)
	if err != nil {
		metrics.SchedulerRunsTotal.WithLabelValues(JobCacheSweep, "error").Inc()
		s.log.Error("cache sweep failed", "error", err)
		return
	}
	metrics.SchedulerRunsTotal.WithLabelValues(JobCacheSweep, "ok").Inc()
	s.log.Debug("cache sweep finished", "removed", removed)
}

// RunHistoryPrune deletes history older than the retention window once.
func (s *Scheduler) RunHistoryPrune(ctx context.Context) {
	cutoff := s.now().Add(-s.retention)
	pruned, err := s.pruner.PruneHistory(ctx, cutoff)
	if err != nil {
		metrics.SchedulerRunsTotal.WithLabelValues(JobHistoryPrune, "error").Inc()
		s.log.Error("history prune failed", "error", err)
		return
	}
	metrics.SchedulerRunsTotal.WithLabelValues(JobHistoryPrune, "ok").Inc()
	metrics.HistoryPrunedTotal.Add(float64(pruned))
	s.log.Info("history prune finished", "pruned", pruned, "cutoff", cutoff)
}
