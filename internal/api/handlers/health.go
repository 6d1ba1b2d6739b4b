package handlers

import (
	"context"
	"net/http"
	"sort"

	"github.com/danielgtaylor/huma/v2"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides liveness and readiness endpoints.
type HealthHandler struct {
	checks map[string]Pinger
}

// NewHealthHandler creates a HealthHandler that checks each named
// dependency on readiness. Nil entries are skipped.
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	filtered := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			filtered[name] = p
		}
	}
	return &HealthHandler{checks: filtered}
}

// HealthOutput is the liveness response.
type HealthOutput struct {
	Body StatusResponse
}

// ReadyBody reports readiness per dependency.
type ReadyBody struct {
	Status string            `json:"status" example:"ready"`
	Checks map[string]string `json:"checks,omitempty"`
}

// ReadyOutput is the readiness response.
type ReadyOutput struct {
	Status int
	Body   ReadyBody
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	return &HealthOutput{Body: StatusResponse{Status: "ok"}}, nil
}

// Readyz returns 200 when every dependency answers, 503 otherwise.
func (h *HealthHandler) Readyz(ctx context.Context, _ *struct{}) (*ReadyOutput, error) {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	out := &ReadyOutput{
		Status: http.StatusOK,
		Body:   ReadyBody{Status: "ready", Checks: make(map[string]string, len(names))},
	}
	for _, name := range names {
		if err := h.checks[name].Ping(ctx); err != nil {
			out.Body.Checks[name] = "unavailable: " + err.Error()
			out.Body.Status = "unavailable"
			out.Status = http.StatusServiceUnavailable
			continue
		}
		out.Body.Checks[name] = "ok"
	}
	return out, nil
}

// RegisterHealthRoutes registers probe endpoints with the Huma API.
func RegisterHealthRoutes(api huma.API, h *HealthHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "healthz",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Liveness check",
		Tags:        []string{"health"},
	}, h.Healthz)

	huma.Register(api, huma.Operation{
		OperationID: "readyz",
		Method:      http.MethodGet,
		Path:        "/readyz",
		Summary:     "Readiness check",
		Description: "Pings the database and the result cache.",
		Tags:        []string{"health"},
		Errors:      []int{http.StatusServiceUnavailable},
	}, h.Readyz)
}
