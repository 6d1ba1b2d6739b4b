package main

import "errors"

// KnownMetrics is the set of metric names exported by crop-advisor plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"crop_advisor_http_request_duration_seconds": true,
	"crop_advisor_http_requests_total":           true,

	// Health metrics.
	"crop_advisor_healthz_up": true,
	"crop_advisor_readyz_up":  true,

	// Recommendation metrics.
	"crop_advisor_recommendations_total":           true,
	"crop_advisor_recommendation_duration_seconds": true,
	"crop_advisor_attempt_failures_total":          true,
	"crop_advisor_fallbacks_total":                 true,

	// Completion metrics.
	"crop_advisor_completion_duration_seconds": true,
	"crop_advisor_completion_tokens_total":     true,

	// Cache metrics.
	"crop_advisor_cache_lookups_total":   true,
	"crop_advisor_cache_entries":         true,
	"crop_advisor_cache_evictions_total": true,

	// Scheduler and notification metrics.
	"crop_advisor_history_pruned_total":          true,
	"crop_advisor_scheduler_runs_total":          true,
	"crop_advisor_notification_duration_seconds": true,
	"crop_advisor_notification_failures_total":   true,

	// Recording rules.
	"crop_advisor:http_requests:rate5m":         true,
	"crop_advisor:http_errors:rate5m":           true,
	"crop_advisor:recommendations:rate5m":       true,
	"crop_advisor:fallbacks:rate5m":             true,
	"crop_advisor:attempt_failures:rate5m":      true,
	"crop_advisor:cache_hits:rate5m":            true,
	"crop_advisor:cache_lookups:rate5m":         true,
	"crop_advisor:notification_duration:p95_5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
