package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// CompletionDuration returns a timeseries panel showing p50 and p95 model
// call latencies per backend.
func CompletionDuration() *timeseries.PanelBuilder {
	const hist = "crop_advisor_completion_duration_seconds"
	return timeseries.NewPanelBuilder().
		Title("Completion Duration").
		Description("Text-generation call duration percentiles by backend").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(Quantile(0.50, hist, "backend"), "p50 {{backend}}", "A")).
		WithTarget(PromQuery(Quantile(0.95, hist, "backend"), "p95 {{backend}}", "B")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// AttemptFailures returns a timeseries panel showing failed attempts by
// failure kind (transport, extraction, schema).
func AttemptFailures() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Attempt Failures").
		Description("Failed recommendation attempts per second, by failure kind").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum(rate(crop_advisor_attempt_failures_total{`+JobSelector+`}[5m])) by (kind)`,
			"{{kind}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenYellowRed(0.01, 0.1)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// TokenRate returns a timeseries panel showing model tokens consumed per
// minute by backend.
func TokenRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Tokens / min").
		Description("Tokens consumed by completions per minute, by backend").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum(rate(crop_advisor_completion_tokens_total{`+JobSelector+`}[5m])) by (backend) * 60`,
			"{{backend}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
