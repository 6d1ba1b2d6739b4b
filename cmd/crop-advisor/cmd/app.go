package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"github.com/donaldgifford/crop-advisor/api/openapi"
	"github.com/donaldgifford/crop-advisor/internal/api/handlers"
	"github.com/donaldgifford/crop-advisor/internal/api/middleware"
	"github.com/donaldgifford/crop-advisor/internal/cache"
	"github.com/donaldgifford/crop-advisor/internal/config"
	"github.com/donaldgifford/crop-advisor/internal/notify"
	"github.com/donaldgifford/crop-advisor/internal/scheduler"
	"github.com/donaldgifford/crop-advisor/internal/store"
	"github.com/donaldgifford/crop-advisor/pkg/advisor"
)

const apiTitle = "Crop Advisor API"

// newBackend builds the configured LLM backend.
func newBackend(ctx context.Context, cfg *config.LLMConfig) (advisor.LLMBackend, error) {
	switch cfg.Backend {
	case "gemini":
		opts := []advisor.GeminiOption{
			advisor.WithGeminiRateLimit(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst),
		}
		if cfg.Model != "" {
			opts = append(opts, advisor.WithGeminiModel(cfg.Model))
		}
		if cfg.Endpoint != "" {
			opts = append(opts, advisor.WithGeminiEndpoint(cfg.Endpoint))
		}
		return advisor.NewGeminiBackend(cfg.APIKey, opts...)
	case "genai":
		var opts []advisor.GenAIOption
		if cfg.Endpoint != "" {
			opts = append(opts, advisor.WithGenAIBaseURL(cfg.Endpoint))
		}
		return advisor.NewGenAIBackend(ctx, cfg.APIKey, cfg.Model, opts...)
	default:
		return nil, fmt.Errorf("%w: unknown llm backend %q", advisor.ErrConfiguration, cfg.Backend)
	}
}

// resultCache is the configured cache plus the hooks the server needs
// around it.
type resultCache struct {
	cache   advisor.ResultCache
	sweeper scheduler.Sweeper
	pinger  handlers.Pinger
	close   func() error
}

func newResultCache(cfg *config.CacheConfig) (*resultCache, error) {
	switch cfg.Backend {
	case "memory":
		mem := cache.NewMemoryCache(cache.WithTTL(cfg.TTL))
		return &resultCache{
			cache:   mem,
			sweeper: mem,
			pinger:  mem,
			close:   func() error { return nil },
		}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rc := cache.NewRedisCache(client,
			cache.WithRedisTTL(cfg.TTL),
			cache.WithKeyPrefix(cfg.Redis.KeyPrefix),
		)
		// Redis expires keys itself, so there is nothing to sweep.
		return &resultCache{cache: rc, pinger: rc, close: rc.Close}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// newFallbackReporter returns a reporter that posts to Discord when it is
// configured and only logs otherwise.
func newFallbackReporter(cfg *config.NotificationsConfig, log *slog.Logger) *notify.FallbackReporter {
	var n notify.Notifier = notify.NewNoOpNotifier(log)
	if cfg.Discord.Enabled && cfg.Discord.WebhookURL != "" {
		n = notify.NewDiscordNotifier(cfg.Discord.WebhookURL)
	}
	return notify.NewFallbackReporter(n, log)
}

// newAdvisor wires the completer and the orchestrator.
func newAdvisor(
	cfg *config.Config,
	backend advisor.LLMBackend,
	rc advisor.ResultCache,
	onFallback advisor.FallbackHandler,
	log *slog.Logger,
) *advisor.Advisor {
	policy := cfg.LLM.RetryPolicy()

	completer := advisor.NewCompleter(backend,
		advisor.WithTimeout(cfg.LLM.Timeout),
		advisor.WithTemperature(cfg.LLM.Temperature),
		advisor.WithTopK(cfg.LLM.TopK),
		advisor.WithTopP(cfg.LLM.TopP),
		advisor.WithMaxOutputTokens(cfg.LLM.MaxOutputTokens),
		advisor.WithCompleterRetryPolicy(policy),
		advisor.WithCompleterLogger(log),
	)

	return advisor.NewAdvisor(completer,
		advisor.WithLogger(log),
		advisor.WithCache(rc),
		advisor.WithRetryPolicy(policy),
		advisor.WithSingleFlight(cfg.Recommend.SingleFlight),
		advisor.WithFallbackHandler(onFallback),
		advisor.WithTracerProvider(otel.GetTracerProvider()),
	)
}

// routerDeps holds what the HTTP surface is built from. A nil store leaves
// the profile routes unregistered and records no history.
type routerDeps struct {
	advisor advisor.Recommender
	store   store.Store
	cache   *resultCache
	log     *slog.Logger
}

func newRouter(deps routerDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLog(deps.log))
	e.Use(middleware.Tracing(otel.GetTracerProvider()))
	e.Use(middleware.Metrics())
	e.Use(middleware.Recovery(deps.log))

	humaCfg := huma.DefaultConfig(apiTitle, Version)
	humaCfg.DocsPath = ""
	api := humaecho.New(e, humaCfg)

	var history handlers.HistoryRecorder
	checks := map[string]handlers.Pinger{"cache": deps.cache.pinger}
	if deps.store != nil {
		history = deps.store
		checks["database"] = deps.store
	}

	rec := handlers.NewRecommendHandler(deps.advisor, history, deps.log)
	handlers.RegisterHealthRoutes(api, handlers.NewHealthHandler(checks))
	handlers.RegisterRecommendRoutes(api, rec)
	handlers.RegisterCacheRoutes(api, handlers.NewCacheHandler(deps.cache.cache))
	if deps.store != nil {
		handlers.RegisterProfileRoutes(api, handlers.NewProfilesHandler(deps.store, rec))
	}

	openapi.RegisterRoutes(e, apiTitle, humaCfg.OpenAPIPath+".json")
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}

// startServer runs e until ctx is cancelled, then shuts it down.
func startServer(ctx context.Context, e *echo.Echo, cfg *config.ServerConfig, log *slog.Logger) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      e,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}
