// Package notify delivers degraded-mode alerts when the advisor serves
// fallback recommendations.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/donaldgifford/crop-advisor/pkg/advisor"
)

// FallbackAlert contains the data needed to report a fallback response.
type FallbackAlert struct {
	Location    string
	Soil        string
	Fingerprint string
	FailureKind string
	Attempts    int
	Error       string
	OccurredAt  time.Time
}

// Notifier defines the interface for sending degraded-mode alerts.
type Notifier interface {
	SendFallbackAlert(ctx context.Context, alert *FallbackAlert) error
}

// AlertFromEvent builds an alert from an advisor fallback event.
func AlertFromEvent(ev advisor.FallbackEvent, now time.Time) *FallbackAlert {
	alert := &FallbackAlert{
		Location:    locationLabel(ev),
		Soil:        string(ev.Request.SoilType),
		Fingerprint: ev.Fingerprint,
		FailureKind: "unknown",
		Attempts:    ev.Attempts,
		OccurredAt:  now,
	}
	if ev.Failure != nil {
		alert.FailureKind = string(ev.Failure.Kind)
		if ev.Failure.Err != nil {
			alert.Error = ev.Failure.Err.Error()
		}
	}
	return alert
}

func locationLabel(ev advisor.FallbackEvent) string {
	loc := ev.Request.Location
	if loc.Name != "" {
		return loc.Name
	}
	return fmt.Sprintf("%.4f, %.4f", loc.Latitude, loc.Longitude)
}
