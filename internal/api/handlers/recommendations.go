package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/crop-advisor/pkg/advisor"
	"github.com/donaldgifford/crop-advisor/pkg/logger"
	domain "github.com/donaldgifford/crop-advisor/pkg/types"
)

// StatusClientClosedRequest is returned when the caller went away before a
// recommendation finished.
const StatusClientClosedRequest = 499

// HistoryRecorder appends served recommendations to history.
type HistoryRecorder interface {
	InsertHistory(ctx context.Context, h *domain.HistoryEntry) error
}

// RecommendHandler runs the advisor for ad-hoc farm descriptions.
type RecommendHandler struct {
	advisor advisor.Recommender
	history HistoryRecorder
	log     *slog.Logger
}

// NewRecommendHandler creates a RecommendHandler. A nil history disables
// history recording.
func NewRecommendHandler(
	rec advisor.Recommender,
	history HistoryRecorder,
	log *slog.Logger,
) *RecommendHandler {
	return &RecommendHandler{advisor: rec, history: history, log: log}
}

// RecommendInput is the request for a recommendation.
type RecommendInput struct {
	Body FarmBody
}

// RecommendationBody describes a served recommendation.
type RecommendationBody struct {
	Result      domain.RecommendationResult `json:"result"`
	Source      domain.ResultSource         `json:"source"                enum:"fresh,cached,fallback" doc:"Where the result came from"`
	Fingerprint string                      `json:"fingerprint"                                        doc:"Cache key of the normalized request"`
	Attempts    int                         `json:"attempts"                                           doc:"Model calls made; 0 when served from cache"`
	FailureKind string                      `json:"failureKind,omitempty" enum:"transport,extraction,schema" doc:"Failure that forced the fallback"`
	HistoryID   string                      `json:"historyId,omitempty"                                doc:"History entry recorded for this response"`
}

// RecommendOutput is the response for a recommendation.
type RecommendOutput struct {
	Source string `header:"X-Recommendation-Source"`
	Body   RecommendationBody
}

// Recommend returns crop recommendations for the submitted farm.
func (h *RecommendHandler) Recommend(
	ctx context.Context,
	input *RecommendInput,
) (*RecommendOutput, error) {
	raw, err := input.Body.toRaw()
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("invalid farm request", err)
	}
	return h.run(ctx, raw, nil)
}

// run executes the advisor and records history. profileID is nil for
// ad-hoc requests.
func (h *RecommendHandler) run(
	ctx context.Context,
	raw *domain.FarmRequestRaw,
	profileID *string,
) (*RecommendOutput, error) {
	log := logger.FromContext(ctx, h.log)

	out, err := h.advisor.Recommend(ctx, raw)
	if err != nil {
		return nil, recommendError(err, log)
	}

	body := RecommendationBody{
		Result:      *out.Result,
		Source:      out.Source,
		Fingerprint: out.Fingerprint,
		Attempts:    out.Attempts,
	}
	if out.Failure != nil {
		body.FailureKind = string(out.Failure.Kind)
	}

	if h.history != nil {
		entry := &domain.HistoryEntry{
			ProfileID:   profileID,
			Fingerprint: out.Fingerprint,
			Source:      out.Source,
			FailureKind: body.FailureKind,
			Attempts:    out.Attempts,
			Result:      *out.Result,
		}
		if err := h.history.InsertHistory(ctx, entry); err != nil {
			log.Warn("recording recommendation history failed",
				"fingerprint", out.Fingerprint,
				"error", err,
			)
		} else {
			body.HistoryID = entry.ID
		}
	}

	return &RecommendOutput{Source: string(out.Source), Body: body}, nil
}

func recommendError(err error, log *slog.Logger) error {
	var verr *advisor.ValidationError
	switch {
	case errors.As(err, &verr):
		details := make([]error, 0, len(verr.Problems))
		for _, p := range verr.Problems {
			details = append(details, errors.New(p))
		}
		return huma.Error422UnprocessableEntity("invalid farm request", details...)
	case errors.Is(err, advisor.ErrValidation):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, advisor.ErrCancelled):
		return huma.NewError(StatusClientClosedRequest, "recommendation cancelled")
	default:
		if log != nil {
			log.Error("recommendation failed", "error", err)
		}
		return huma.Error500InternalServerError("recommendation failed: " + err.Error())
	}
}

// RegisterRecommendRoutes registers recommendation endpoints with the Huma API.
func RegisterRecommendRoutes(api huma.API, h *RecommendHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "recommend",
		Method:      http.MethodPost,
		Path:        "/api/v1/recommendations",
		Summary:     "Recommend crops for a farm",
		Description: "Validates the farm description, then serves a cached result, " +
			"a fresh model result, or the static fallback set when every attempt fails.",
		Tags:   []string{"recommendations"},
		Errors: []int{http.StatusUnprocessableEntity, http.StatusInternalServerError},
	}, h.Recommend)
}
