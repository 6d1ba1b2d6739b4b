package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/crop-advisor/internal/scheduler"
	"github.com/donaldgifford/crop-advisor/internal/store"
	"github.com/donaldgifford/crop-advisor/internal/tracing"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and maintenance scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing, Version, log)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.WithoutCancel(ctx)); err != nil {
			log.Warn("flushing telemetry", "error", err)
		}
	}()

	backend, err := newBackend(ctx, &cfg.LLM)
	if err != nil {
		return err
	}

	rc, err := newResultCache(&cfg.Cache)
	if err != nil {
		return err
	}
	defer func() {
		if err := rc.close(); err != nil {
			log.Warn("closing cache", "error", err)
		}
	}()

	var (
		st     store.Store
		pruner scheduler.HistoryPruner
	)
	if cfg.Database.Enabled() {
		pg, err := store.NewPostgresStore(ctx, cfg.Database.DSN(), cfg.Database.PoolSize)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer pg.Close()

		if err := pg.Migrate(ctx); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		st, pruner = pg, pg
	} else {
		log.Info("no database configured, profiles and history are disabled")
	}

	reporter := newFallbackReporter(&cfg.Notifications, log)
	defer reporter.Wait()

	adv := newAdvisor(cfg, backend, rc.cache, reporter.Handle, log)

	sched, err := scheduler.NewScheduler(cfg.Schedule, rc.sweeper, pruner, log)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	log.Info("crop advisor ready",
		"version", Version,
		"llm_backend", backend.Name(),
		"cache_backend", cfg.Cache.Backend,
		"scheduled_jobs", len(sched.Entries()),
	)

	e := newRouter(routerDeps{advisor: adv, store: st, cache: rc, log: log})
	if err := startServer(ctx, e, &cfg.Server, log); err != nil {
		return err
	}

	log.Info("server stopped")
	return nil
}
