package advisor

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	domain "github.com/donaldgifford/crop-advisor/pkg/types"
)

// NormalizeResult repairs a parsed model reply into a RecommendationResult.
// The only hard requirement is a "categories" array; after that the result is
// completed rather than rejected:
//
//   - a category without "crops" gets an empty list
//   - the first crop flagged isTopPick keeps the flag, later flags are cleared
//   - a non-empty category with no flag gets the highest-scoring crop, ties
//     going to the earliest
//   - every standard category missing from the reply is added empty
//
// Categories come back in standard order. Entries naming a category outside
// the standard list are dropped and repeated entries are merged.
func NormalizeResult(parsed map[string]any) (*domain.RecommendationResult, error) {
	rawCats, ok := parsed["categories"].([]any)
	if !ok {
		if _, present := parsed["categories"]; present {
			return nil, fmt.Errorf("%w: categories is %T, want array", ErrSchema, parsed["categories"])
		}
		return nil, fmt.Errorf("%w: categories: missing", ErrSchema)
	}

	byType := make(map[domain.CategoryType][]domain.CropRecommendation, len(rawCats))
	for _, rc := range rawCats {
		obj, ok := rc.(map[string]any)
		if !ok {
			continue
		}
		t, known := canonicalCategory(attrString(obj, "type"))
		if !known {
			continue
		}
		byType[t] = append(byType[t], parseCrops(obj["crops"])...)
	}

	result := &domain.RecommendationResult{
		Categories: make([]domain.CropCategory, 0, len(domain.StandardCategories)),
		Reasoning:  attrString(parsed, "reasoning"),
	}
	for _, std := range domain.StandardCategories {
		crops := byType[std]
		if crops == nil {
			crops = []domain.CropRecommendation{}
		}
		EnforceTopPick(crops)
		result.Categories = append(result.Categories, domain.CropCategory{Type: std, Crops: crops})
	}

	return result, nil
}

// EnforceTopPick leaves exactly one top pick in a non-empty crop list.
func EnforceTopPick(crops []domain.CropRecommendation) {
	if len(crops) == 0 {
		return
	}

	found := false
	for i := range crops {
		if crops[i].IsTopPick {
			if found {
				crops[i].IsTopPick = false
			}
			found = true
		}
	}
	if found {
		return
	}

	best := 0
	for i := 1; i < len(crops); i++ {
		if crops[i].Score > crops[best].Score {
			best = i
		}
	}
	crops[best].IsTopPick = true
}

// FillSoilCompatibility gives every crop without a soil compatibility list
// the farm's own soil type, the one soil the model was asked about.
func FillSoilCompatibility(result *domain.RecommendationResult, soil domain.SoilType) {
	if soil == "" {
		return
	}
	for i := range result.Categories {
		crops := result.Categories[i].Crops
		for j := range crops {
			if len(crops[j].SoilCompatibility) == 0 {
				crops[j].SoilCompatibility = []string{string(soil)}
			}
		}
	}
}

// canonicalCategory matches a model-supplied category name against the
// standard list, ignoring case and "and" spelled out for "&".
func canonicalCategory(s string) (domain.CategoryType, bool) {
	key := categoryKey(s)
	for _, std := range domain.StandardCategories {
		if categoryKey(string(std)) == key {
			return std, true
		}
	}
	return "", false
}

func categoryKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " and ", " & ")
	return strings.Join(strings.Fields(s), " ")
}

func parseCrops(v any) []domain.CropRecommendation {
	list, ok := v.([]any)
	if !ok {
		return []domain.CropRecommendation{}
	}

	crops := make([]domain.CropRecommendation, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		crops = append(crops, parseCrop(obj))
	}
	return crops
}

func parseCrop(obj map[string]any) domain.CropRecommendation {
	profit, _ := attrFloat(obj, "estimatedProfit")
	price, _ := attrFloat(obj, "marketPrice")
	score, _ := attrFloat(obj, "score")
	topPick, _ := obj["isTopPick"].(bool)

	return domain.CropRecommendation{
		Name:              attrString(obj, "name"),
		Description:       attrString(obj, "description"),
		EstimatedProfit:   math.Max(profit, 0),
		MarketPrice:       math.Max(price, 0),
		Score:             clampScore(score),
		GrowthPeriod:      attrString(obj, "growthPeriod"),
		WaterRequirements: attrString(obj, "waterRequirements"),
		SoilCompatibility: attrStrings(obj, "soilCompatibility"),
		MaturityPeriod:    attrString(obj, "maturityPeriod"),
		BestPlantingTime:  attrString(obj, "bestPlantingTime"),
		IsTopPick:         topPick,
	}
}

func clampScore(v float64) int {
	return int(math.Round(math.Min(math.Max(v, 0), 100)))
}

func attrString(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// attrFloat reads a number, accepting numeric strings such as "1,200" or
// "$45.50" that models sometimes emit.
func attrFloat(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case string:
		cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(v)
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func attrStrings(m map[string]any, key string) []string {
	switch v := m[key].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return []string{s}
		}
	}
	return []string{}
}
