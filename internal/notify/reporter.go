package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/donaldgifford/crop-advisor/internal/metrics"
	"github.com/donaldgifford/crop-advisor/pkg/advisor"
)

const defaultSendTimeout = 10 * time.Second

// FallbackReporter turns advisor fallback events into notifications. Sends
// run in the background so a slow webhook never delays a response, and
// failures are only logged and counted.
type FallbackReporter struct {
	notifier Notifier
	log      *slog.Logger
	timeout  time.Duration
	now      func() time.Time
	wg       sync.WaitGroup
}

// ReporterOption configures a FallbackReporter.
type ReporterOption func(*FallbackReporter)

// WithSendTimeout bounds each background send.
func WithSendTimeout(d time.Duration) ReporterOption {
	return func(r *FallbackReporter) {
		r.timeout = d
	}
}

// WithClock overrides the alert timestamp source.
func WithClock(now func() time.Time) ReporterOption {
	return func(r *FallbackReporter) {
		r.now = now
	}
}

// NewFallbackReporter creates a reporter that forwards to n.
func NewFallbackReporter(n Notifier, log *slog.Logger, opts ...ReporterOption) *FallbackReporter {
	r := &FallbackReporter{
		notifier: n,
		log:      log,
		timeout:  defaultSendTimeout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handle matches advisor.FallbackHandler.
func (r *FallbackReporter) Handle(ctx context.Context, ev advisor.FallbackEvent) {
	alert := AlertFromEvent(ev, r.now())

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()

		if err := r.notifier.SendFallbackAlert(sendCtx, alert); err != nil {
			metrics.NotificationFailuresTotal.Inc()
			r.log.Warn("fallback notification failed",
				"fingerprint", alert.Fingerprint,
				"error", err,
			)
		}
	}()
}

// Wait blocks until every in-flight send has finished.
func (r *FallbackReporter) Wait() {
	r.wg.Wait()
}
