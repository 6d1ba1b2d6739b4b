// Package validate checks generated dashboards and rules for PromQL syntax
// errors and references to metrics the service does not export.
package validate

import (
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/crop-advisor/tools/dashgen/rules"
)

// Result collects validation findings. Errors fail generation; warnings are
// reported but do not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) merge(o Result) {
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

// Expr parses a single PromQL expression and checks every metric it selects
// against known. where identifies the expression in messages.
func Expr(where, expr string, known map[string]bool) Result {
	var res Result
	if strings.TrimSpace(expr) == "" {
		res.Errors = append(res.Errors, fmt.Sprintf("%s: empty expression", where))
		return res
	}

	node, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", where, err))
		return res
	}

	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok {
			return nil
		}
		name := metricName(vs)
		switch {
		case name == "":
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("%s: selector %s has no metric name", where, vs.String()))
		case !known[name]:
			res.Errors = append(res.Errors,
				fmt.Sprintf("%s: unknown metric %q", where, name))
		}
		return nil
	})
	return res
}

// metricName returns the selected metric, stripping histogram suffixes so
// that bucket, sum, and count series resolve to their histogram.
func metricName(vs *parser.VectorSelector) string {
	name := vs.Name
	for _, suffix := range []string{"_bucket", "_sum", "_count"} {
		if trimmed, ok := strings.CutSuffix(name, suffix); ok {
			return trimmed
		}
	}
	return name
}

// Dashboard validates every Prometheus target in the dashboard, including
// panels nested inside rows.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result
	for _, p := range dash.Panels {
		if p.Panel != nil {
			res.merge(panel(*p.Panel, known))
		}
		if p.RowPanel != nil {
			for _, inner := range p.RowPanel.Panels {
				res.merge(panel(inner, known))
			}
		}
	}
	return res
}

func panel(p dashboard.Panel, known map[string]bool) Result {
	var res Result
	title := "untitled"
	if p.Title != nil {
		title = *p.Title
	}
	if len(p.Targets) == 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("panel %q has no targets", title))
		return res
	}
	for _, target := range p.Targets {
		var expr string
		switch q := target.(type) {
		case *prometheus.Dataquery:
			expr = q.Expr
		default:
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("panel %q: non-prometheus target %T", title, target))
			continue
		}
		res.merge(Expr(fmt.Sprintf("panel %q", title), expr, known))
	}
	return res
}

// Rules validates every rule expression in a PrometheusRule. Recording rule
// names must themselves be known so that dashboards can rely on them.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var res Result
	for _, g := range cr.Spec.Groups {
		for _, r := range g.Rules {
			id := r.Record
			if id == "" {
				id = r.Alert
			}
			where := fmt.Sprintf("%s/%s", g.Name, id)
			if r.Record != "" && !known[r.Record] {
				res.Errors = append(res.Errors,
					fmt.Sprintf("%s: recording rule name not in known metrics", where))
			}
			res.merge(Expr(where, r.Expr, known))
		}
	}
	return res
}
