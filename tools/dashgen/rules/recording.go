package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "crop-advisor-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "crop-advisor-recording",
					Rules: []Rule{
						{
							Record: "crop_advisor:http_requests:rate5m",
							Expr:   `sum(rate(crop_advisor_http_requests_total[5m]))`,
						},
						{
							Record: "crop_advisor:http_errors:rate5m",
							Expr:   `sum(rate(crop_advisor_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "crop_advisor:recommendations:rate5m",
							Expr:   `sum(rate(crop_advisor_recommendations_total[5m]))`,
						},
						{
							Record: "crop_advisor:fallbacks:rate5m",
							Expr:   `sum(rate(crop_advisor_recommendations_total{source="fallback"}[5m]))`,
						},
						{
							Record: "crop_advisor:attempt_failures:rate5m",
							Expr:   `sum(rate(crop_advisor_attempt_failures_total[5m]))`,
						},
						{
							Record: "crop_advisor:cache_hits:rate5m",
							Expr:   `sum(rate(crop_advisor_cache_lookups_total{result="hit"}[5m]))`,
						},
						{
							Record: "crop_advisor:cache_lookups:rate5m",
							Expr:   `sum(rate(crop_advisor_cache_lookups_total[5m]))`,
						},
						{
							Record: "crop_advisor:notification_duration:p95_5m",
							Expr:   `histogram_quantile(0.95, sum(rate(crop_advisor_notification_duration_seconds_bucket[5m])) by (le))`,
						},
					},
				},
			},
		},
	}
}
