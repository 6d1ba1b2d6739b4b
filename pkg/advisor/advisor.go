package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/donaldgifford/crop-advisor/internal/metrics"
	domain "github.com/donaldgifford/crop-advisor/pkg/types"
)

const tracerName = "github.com/donaldgifford/crop-advisor/pkg/advisor"

// Outcome is a served recommendation and how it was produced.
type Outcome struct {
	Result      *domain.RecommendationResult
	Source      domain.ResultSource
	Request     domain.FarmRequest
	Fingerprint string
	Attempts    int
	// Failure is the last failed attempt when Source is SourceFallback.
	Failure *Failure
}

// FallbackEvent describes a request that was answered with the fallback set.
type FallbackEvent struct {
	Request     domain.FarmRequest
	Fingerprint string
	Attempts    int
	Failure     *Failure
}

// FallbackHandler is notified whenever the fallback set is served.
type FallbackHandler func(ctx context.Context, ev FallbackEvent)

// Advisor runs the recommendation pipeline: cache lookup, prompt, completion
// with retries, extraction, normalization, cache write. When every attempt
// fails it serves FallbackResult instead of an error.
type Advisor struct {
	completer  *Completer
	cache      ResultCache
	policy     RetryPolicy
	log        *slog.Logger
	tracer     trace.Tracer
	flights    *singleflight.Group
	onFallback FallbackHandler
}

// Option configures the Advisor.
type Option func(*Advisor)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Advisor) {
		a.log = l
	}
}

// WithCache sets the result cache.
func WithCache(c ResultCache) Option {
	return func(a *Advisor) {
		a.cache = c
	}
}

// WithRetryPolicy sets the attempt budget and backoff.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(a *Advisor) {
		a.policy = p
	}
}

// WithSingleFlight makes concurrent callers with the same fingerprint share
// one pipeline run instead of each calling the model.
func WithSingleFlight(enabled bool) Option {
	return func(a *Advisor) {
		if enabled {
			a.flights = &singleflight.Group{}
		} else {
			a.flights = nil
		}
	}
}

// WithFallbackHandler registers a hook for fallback responses.
func WithFallbackHandler(h FallbackHandler) Option {
	return func(a *Advisor) {
		a.onFallback = h
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(a *Advisor) {
		a.tracer = tp.Tracer(tracerName)
	}
}

// NewAdvisor creates an Advisor around a Completer.
func NewAdvisor(completer *Completer, opts ...Option) *Advisor {
	a := &Advisor{
		completer: completer,
		cache:     nopCache{},
		policy:    DefaultRetryPolicy(),
		log:       slog.Default(),
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Recommend returns crop recommendations for a farm. Invalid input fails
// with ErrValidation before any network call; cancellation of ctx fails with
// ErrCancelled. Every other path returns an Outcome.
func (a *Advisor) Recommend(
	ctx context.Context,
	raw *domain.FarmRequestRaw,
) (*Outcome, error) {
	req, err := NormalizeRequest(raw)
	if err != nil {
		return nil, err
	}
	fp, err := Fingerprint(&req)
	if err != nil {
		return nil, &ValidationError{Problems: []string{err.Error()}}
	}

	ctx, span := a.tracer.Start(ctx, "advisor.Recommend",
		trace.WithAttributes(attribute.String("farm.fingerprint", fp)),
	)
	defer span.End()

	start := time.Now()
	out, err := a.recommend(ctx, &req, fp)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	metrics.RecommendationsTotal.WithLabelValues(string(out.Source)).Inc()
	metrics.RecommendationDuration.WithLabelValues(string(out.Source)).
		Observe(time.Since(start).Seconds())
	span.SetAttributes(
		attribute.String("recommendation.source", string(out.Source)),
		attribute.Int("recommendation.attempts", out.Attempts),
	)
	return out, nil
}

func (a *Advisor) recommend(
	ctx context.Context,
	req *domain.FarmRequest,
	fp string,
) (*Outcome, error) {
	if cached, ok := a.lookup(ctx, fp); ok {
		return &Outcome{
			Result:      cached,
			Source:      domain.SourceCached,
			Request:     *req,
			Fingerprint: fp,
		}, nil
	}

	if a.flights == nil {
		return a.generate(ctx, req, fp)
	}

	// The shared run is detached from any one caller so that a caller
	// leaving early does not cancel it for the others.
	ch := a.flights.DoChan(fp, func() (any, error) {
		return a.generate(context.WithoutCancel(ctx), req, fp)
	})
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		out := *res.Val.(*Outcome)
		out.Request = *req
		return &out, nil
	}
}

func (a *Advisor) lookup(ctx context.Context, fp string) (*domain.RecommendationResult, bool) {
	cached, ok, err := a.cache.Get(ctx, fp)
	switch {
	case err != nil:
		metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
		a.log.Warn("cache lookup failed, treating as miss", "fingerprint", fp, "error", err)
		return nil, false
	case ok:
		metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
		a.log.Debug("cache hit", "fingerprint", fp)
		return cached, true
	default:
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		return nil, false
	}
}

func (a *Advisor) generate(
	ctx context.Context,
	req *domain.FarmRequest,
	fp string,
) (*Outcome, error) {
	prompt, err := BuildPrompt(req)
	if err != nil {
		return nil, fmt.Errorf("building prompt: %w", err)
	}

	var (
		result   *domain.RecommendationResult
		attempts int
		last     *Failure
	)
	err = a.policy.Do(ctx, func(ctx context.Context, attempt int) error {
		attempts = attempt
		res, err := a.attempt(ctx, prompt, req.SoilType, attempt)
		if err != nil {
			if ctx.Err() == nil {
				last = &Failure{Kind: classify(err), Attempt: attempt, Err: err}
				metrics.AttemptFailuresTotal.WithLabelValues(string(last.Kind)).Inc()
				return last
			}
			return err
		}
		result = res
		return nil
	}, func(attempt int, err error, wait time.Duration) {
		a.log.Warn("recommendation attempt failed",
			"fingerprint", fp,
			"attempt", attempt,
			"retry_in", wait,
			"error", err,
		)
	})

	if ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
	}

	if err != nil {
		return a.fallback(ctx, req, fp, attempts, last), nil
	}

	if err := a.cache.Put(ctx, fp, result); err != nil {
		a.log.Warn("cache write failed", "fingerprint", fp, "error", err)
	}

	return &Outcome{
		Result:      result,
		Source:      domain.SourceFresh,
		Request:     *req,
		Fingerprint: fp,
		Attempts:    attempts,
	}, nil
}

// attempt runs one request, extract, normalize pass.
func (a *Advisor) attempt(
	ctx context.Context,
	prompt string,
	soil domain.SoilType,
	attempt int,
) (*domain.RecommendationResult, error) {
	ctx, span := a.tracer.Start(ctx, "advisor.attempt",
		trace.WithAttributes(
			attribute.Int("attempt", attempt),
			attribute.String("llm.backend", a.completer.Backend()),
		),
	)
	defer span.End()

	text, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	parsed, err := ExtractJSON(text)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	result, err := NormalizeResult(parsed)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	FillSoilCompatibility(result, soil)
	return result, nil
}

func (a *Advisor) fallback(
	ctx context.Context,
	req *domain.FarmRequest,
	fp string,
	attempts int,
	last *Failure,
) *Outcome {
	kind := "unknown"
	var cause error
	if last != nil {
		kind = string(last.Kind)
		cause = last.Err
	}
	metrics.FallbacksTotal.WithLabelValues(kind).Inc()
	a.log.Warn("serving fallback recommendations",
		"fingerprint", fp,
		"attempts", attempts,
		"failure_kind", kind,
		"error", cause,
	)

	if a.onFallback != nil {
		a.onFallback(ctx, FallbackEvent{
			Request:     *req,
			Fingerprint: fp,
			Attempts:    attempts,
			Failure:     last,
		})
	}

	return &Outcome{
		Result:      FallbackResult(),
		Source:      domain.SourceFallback,
		Request:     *req,
		Fingerprint: fp,
		Attempts:    attempts,
		Failure:     last,
	}
}

// nopCache never stores anything.
type nopCache struct{}

func (nopCache) Get(context.Context, string) (*domain.RecommendationResult, bool, error) {
	return nil, false, nil
}

func (nopCache) Put(context.Context, string, *domain.RecommendationResult) error { return nil }

func (nopCache) Evict(context.Context, string) error { return nil }
