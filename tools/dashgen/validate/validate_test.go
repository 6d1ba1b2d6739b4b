package validate_test

import (
	"testing"

	"github.com/grafana/grafana-foundation-sdk/go/cog/variants"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/crop-advisor/tools/dashgen/rules"
	"github.com/donaldgifford/crop-advisor/tools/dashgen/validate"
)

var known = map[string]bool{
	"crop_advisor_http_requests_total":           true,
	"crop_advisor_http_request_duration_seconds": true,
	"crop_advisor:http_requests:rate5m":          true,
}

func TestExpr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		expr     string
		wantErr  bool
		wantWarn bool
	}{
		{
			name: "known counter",
			expr: `sum(rate(crop_advisor_http_requests_total[5m]))`,
		},
		{
			name: "histogram bucket resolves to histogram",
			expr: `histogram_quantile(0.95, sum(rate(crop_advisor_http_request_duration_seconds_bucket[5m])) by (le))`,
		},
		{
			name: "recording rule",
			expr: `crop_advisor:http_requests:rate5m * 60`,
		},
		{
			name:    "unknown metric",
			expr:    `rate(legacy_items_total[5m])`,
			wantErr: true,
		},
		{
			name:    "syntax error",
			expr:    `sum(rate(crop_advisor_http_requests_total[5m])`,
			wantErr: true,
		},
		{
			name:    "empty",
			expr:    "  ",
			wantErr: true,
		},
		{
			name:     "nameless selector",
			expr:     `{job="crop-advisor"}`,
			wantWarn: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := validate.Expr("test", tt.expr, known)
			assert.Equal(t, tt.wantErr, !res.Ok(), "errors: %v", res.Errors)
			assert.Equal(t, tt.wantWarn, len(res.Warnings) > 0, "warnings: %v", res.Warnings)
		})
	}
}

func TestDashboard(t *testing.T) {
	t.Parallel()

	good, err := prometheus.NewDataqueryBuilder().
		Expr(`crop_advisor:http_requests:rate5m`).RefId("A").Build()
	require.NoError(t, err)
	bad, err := prometheus.NewDataqueryBuilder().
		Expr(`rate(unknown_total[5m])`).RefId("B").Build()
	require.NoError(t, err)

	title := "Requests"
	dash := dashboard.Dashboard{
		Panels: []dashboard.PanelOrRowPanel{
			{Panel: &dashboard.Panel{Title: &title, Targets: []variants.Dataquery{good}}},
			{RowPanel: &dashboard.RowPanel{Panels: []dashboard.Panel{
				{Title: &title, Targets: []variants.Dataquery{bad}},
				{Title: &title},
			}}},
		},
	}

	res := validate.Dashboard(dash, known)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], `unknown metric "unknown_total"`)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "has no targets")
}

func TestRules(t *testing.T) {
	t.Parallel()

	cr := rules.PrometheusRule{
		Spec: rules.PrometheusRuleSpec{
			Groups: []rules.RuleGroup{{
				Name: "g",
				Rules: []rules.Rule{
					{Record: "crop_advisor:http_requests:rate5m", Expr: `sum(rate(crop_advisor_http_requests_total[5m]))`},
					{Record: "crop_advisor:unlisted:rate5m", Expr: `sum(rate(crop_advisor_http_requests_total[5m]))`},
					{Alert: "Broken", Expr: `rate(`},
				},
			}},
		},
	}

	res := validate.Rules(cr, known)
	require.Len(t, res.Errors, 2)
	assert.Contains(t, res.Errors[0], "g/crop_advisor:unlisted:rate5m")
	assert.Contains(t, res.Errors[1], "g/Broken")
}
