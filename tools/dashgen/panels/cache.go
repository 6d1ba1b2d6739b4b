package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// CacheHitRatio returns a stat panel showing the result cache hit ratio.
func CacheHitRatio() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Cache Hit %").
		Description("Share of cache lookups that returned a live result").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`crop_advisor:cache_hits:rate5m / crop_advisor:cache_lookups:rate5m * 100`,
			"", "A",
		)).
		Unit("percent").
		Thresholds(ThresholdsRedGreen(20)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// CacheLookups returns a timeseries panel showing cache lookups by result.
func CacheLookups() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Cache Lookups").
		Description("Result cache lookups per second by result (hit, miss, error)").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum(rate(crop_advisor_cache_lookups_total{`+JobSelector+`}[5m])) by (result)`,
			"{{result}}", "A",
		)).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// CacheSize returns a timeseries panel showing in-memory cache entries and
// evictions.
func CacheSize() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Cache Size").
		Description("Entries held by the in-memory cache and evictions per minute").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`max(crop_advisor_cache_entries{`+JobSelector+`})`, "entries", "A")).
		WithTarget(PromQuery(
			`sum(rate(crop_advisor_cache_evictions_total{`+JobSelector+`}[5m])) * 60`,
			"evictions/min", "B",
		)).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
