// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/crop-advisor/tools/dashgen/panels"
)

// BuildOverview constructs the Crop Advisor Overview dashboard with all
// metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Crop Advisor Overview").
		Uid("crop-advisor-overview").
		Tags([]string{"crop-advisor"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.FallbackRatioStat()).
		WithPanel(panels.UptimeStat()))

	// Row 2: HTTP.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	// Row 3: Recommendations.
	b.WithRow(dashboard.NewRowBuilder("Recommendations").
		WithPanel(panels.RecommendationsBySource()).
		WithPanel(panels.RecommendationLatency()).
		WithPanel(panels.FallbacksByKind()))

	// Row 4: Completion backend.
	b.WithRow(dashboard.NewRowBuilder("Completion").
		WithPanel(panels.CompletionDuration()).
		WithPanel(panels.AttemptFailures()).
		WithPanel(panels.TokenRate()))

	// Row 5: Cache.
	b.WithRow(dashboard.NewRowBuilder("Cache").
		WithPanel(panels.CacheHitRatio()).
		WithPanel(panels.CacheLookups()).
		WithPanel(panels.CacheSize()))

	// Row 6: Maintenance jobs.
	b.WithRow(dashboard.NewRowBuilder("Maintenance").
		WithPanel(panels.SchedulerRuns()).
		WithPanel(panels.HistoryPruned()))

	// Row 7: Notifications.
	b.WithRow(dashboard.NewRowBuilder("Notifications").
		WithPanel(panels.NotificationLatency()).
		WithPanel(panels.NotificationFailures()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
