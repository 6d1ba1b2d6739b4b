package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RecommendationsBySource returns a stacked timeseries of served
// recommendations split into fresh, cached, and fallback.
func RecommendationsBySource() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Recommendations by Source").
		Description("Recommendations served per second, by where the result came from").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum(rate(crop_advisor_recommendations_total{`+JobSelector+`}[5m])) by (source)`,
			"{{source}}", "A",
		)).
		Unit("reqps").
		FillOpacity(30).
		LineWidth(1).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// RecommendationLatency returns p50 and p95 end-to-end recommendation
// latency per source. Fallback latency includes every retry wait.
func RecommendationLatency() *timeseries.PanelBuilder {
	const hist = "crop_advisor_recommendation_duration_seconds"
	return timeseries.NewPanelBuilder().
		Title("Recommendation Latency").
		Description("End-to-end recommendation duration percentiles by source").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(Quantile(0.50, hist, "source"), "p50 {{source}}", "A")).
		WithTarget(PromQuery(Quantile(0.95, hist, "source"), "p95 {{source}}", "B")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// FallbacksByKind returns a timeseries of fallback responses split by the
// failure kind of the last attempt.
func FallbacksByKind() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Fallbacks by Failure Kind").
		Description("Fallback responses per second, by the last attempt's failure kind").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum(rate(crop_advisor_fallbacks_total{`+JobSelector+`}[5m])) by (kind)`,
			"{{kind}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenYellowRed(0.01, 0.1)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
