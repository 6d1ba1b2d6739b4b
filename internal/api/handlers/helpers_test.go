package handlers_test

import (
	"io"
	"log/slog"

	"github.com/donaldgifford/crop-advisor/pkg/advisor"
	domain "github.com/donaldgifford/crop-advisor/pkg/types"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validFarm() map[string]any {
	return map[string]any{
		"location":          map[string]any{"name": "Nairobi", "lat": -1.2921, "lng": 36.8219},
		"landSize":          10,
		"soilType":          "Loamy",
		"waterAvailability": 12,
		"budget":            1000,
		"farmingPriority":   "balanced",
	}
}

func sampleResult() *domain.RecommendationResult {
	return &domain.RecommendationResult{
		Categories: []domain.CropCategory{
			{Type: domain.CategoryGrains, Crops: []domain.CropRecommendation{
				{Name: "Maize", Score: 82, IsTopPick: true},
			}},
		},
		Reasoning: "Maize suits loamy soil.",
	}
}

func freshOutcome() *advisor.Outcome {
	return &advisor.Outcome{
		Result:      sampleResult(),
		Source:      domain.SourceFresh,
		Fingerprint: "farm:v1:abc",
		Attempts:    1,
	}
}

func fallbackOutcome() *advisor.Outcome {
	return &advisor.Outcome{
		Result:      advisor.FallbackResult(),
		Source:      domain.SourceFallback,
		Fingerprint: "farm:v1:abc",
		Attempts:    3,
		Failure: &advisor.Failure{
			Kind:    advisor.FailureExtraction,
			Attempt: 3,
			Err:     advisor.ErrExtraction,
		},
	}
}

func ptr[T any](v T) *T { return &v }
