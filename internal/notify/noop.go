package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded alerts. It is used
// when Discord is not configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards alerts with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// SendFallbackAlert logs and discards the alert.
func (n *NoOpNotifier) SendFallbackAlert(_ context.Context, alert *FallbackAlert) error {
	n.log.Debug("notification discarded (no backend configured)",
		"fingerprint", alert.Fingerprint,
		"failure_kind", alert.FailureKind,
		"attempts", alert.Attempts,
	)
	return nil
}
