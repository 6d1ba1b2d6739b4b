package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// crop-advisor operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "crop-advisor-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "crop-advisor-alerts",
					Rules: []Rule{
						{
							Alert: "CropAdvisorDown",
							Expr:  `absent(up{job="crop-advisor"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Crop advisor is down",
								"description": "The crop-advisor job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "CropAdvisorReadinessDown",
							Expr:  `crop_advisor_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Crop advisor readiness check is failing",
								"description": "The readiness probe has reported a failing database or cache for more than 2 minutes.",
							},
						},
						{
							Alert: "CropAdvisorHighErrorRate",
							Expr:  `crop_advisor:http_errors:rate5m / crop_advisor:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on crop advisor",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "CropAdvisorFallbackRateHigh",
							Expr:  `crop_advisor:fallbacks:rate5m / crop_advisor:recommendations:rate5m > 0.25`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Many recommendations are served from the fallback set",
								"description": "More than 25% of recommendations over the last 10 minutes fell back to the static crop list.",
							},
						},
						{
							Alert: "CropAdvisorAttemptFailures",
							Expr:  `crop_advisor:attempt_failures:rate5m > 0.1`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Model attempt failure rate is elevated",
								"description": "Recommendation attempts are failing at more than 0.1/s for the last 5 minutes.",
							},
						},
						{
							Alert: "CropAdvisorSlowCompletions",
							Expr:  `histogram_quantile(0.95, sum(rate(crop_advisor_completion_duration_seconds_bucket[5m])) by (le)) > 20`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Model completions are slow",
								"description": "p95 completion latency has been above 20s for 10 minutes; attempts are close to the per-attempt timeout.",
							},
						},
						{
							Alert: "CropAdvisorNotificationFailures",
							Expr:  `increase(crop_advisor_notification_failures_total[5m]) > 0`,
							For:   "1m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Notification delivery failures detected",
								"description": "One or more fallback notifications (Discord webhooks) have failed to send.",
							},
						},
					},
				},
			},
		},
	}
}
