package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// SchedulerRuns returns a timeseries panel showing scheduled job runs by job
// and status.
func SchedulerRuns() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Scheduled Jobs").
		Description("Cache sweep and history prune runs per hour, by status").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(increase(crop_advisor_scheduler_runs_total{`+JobSelector+`}[1h])) by (job, status)`,
			"{{job}} {{status}}", "A",
		)).
		DrawStyle(common.GraphDrawStyleBars).
		FillOpacity(60).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}

// HistoryPruned returns a stat panel showing history rows removed by
// retention in the past 24 hours.
func HistoryPruned() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("History Pruned (24h)").
		Description("Recommendation history rows deleted by retention in the last 24 hours").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`increase(crop_advisor_history_pruned_total{`+JobSelector+`}[24h])`, "", "A")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeArea)
}
