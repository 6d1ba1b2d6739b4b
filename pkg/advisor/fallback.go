package advisor

import (
	domain "github.com/donaldgifford/crop-advisor/pkg/types"
)

const fallbackReasoning = "The recommendation service is temporarily unavailable. " +
	"These are general-purpose crops that grow across a wide range of soils and " +
	"water conditions; check them against local conditions before planting."

var allSoils = func() []string {
	out := make([]string, len(domain.SoilTypes))
	for i, s := range domain.SoilTypes {
		out[i] = string(s)
	}
	return out
}()

var fallbackCrops = map[domain.CategoryType][]domain.CropRecommendation{
	domain.CategoryGrains: {
		{
			Name:              "Maize",
			Description:       "Widely adapted staple grain with established markets.",
			EstimatedProfit:   300,
			MarketPrice:       0.2,
			Score:             70,
			GrowthPeriod:      "90-120 days",
			WaterRequirements: "Moderate, 20-30 inches per season",
			SoilCompatibility: []string{"Loamy", "Silty", "Clay"},
			MaturityPeriod:    "3-4 months",
			BestPlantingTime:  "Start of the rainy season",
		},
		{
			Name:              "Sorghum",
			Description:       "Drought-tolerant grain suited to marginal land.",
			EstimatedProfit:   220,
			MarketPrice:       0.18,
			Score:             65,
			GrowthPeriod:      "100-120 days",
			WaterRequirements: "Low, 12-20 inches per season",
			SoilCompatibility: allSoils,
			MaturityPeriod:    "3-4 months",
			BestPlantingTime:  "Early rainy season",
		},
	},
	domain.CategoryLegumes: {
		{
			Name:              "Beans",
			Description:       "Nitrogen-fixing legume that improves soil for the next crop.",
			EstimatedProfit:   350,
			MarketPrice:       1.0,
			Score:             68,
			GrowthPeriod:      "60-90 days",
			WaterRequirements: "Moderate, 12-20 inches per season",
			SoilCompatibility: []string{"Loamy", "Sandy", "Silty"},
			MaturityPeriod:    "2-3 months",
			BestPlantingTime:  "Start of the rainy season",
		},
	},
	domain.CategoryVegetables: {
		{
			Name:              "Kale",
			Description:       "Hardy leafy green with continuous harvest.",
			EstimatedProfit:   800,
			MarketPrice:       0.5,
			Score:             62,
			GrowthPeriod:      "55-75 days",
			WaterRequirements: "Moderate, regular watering",
			SoilCompatibility: []string{"Loamy", "Clay", "Silty"},
			MaturityPeriod:    "2 months to first harvest",
		},
	},
	domain.CategoryRoots: {
		{
			Name:              "Sweet Potato",
			Description:       "Low-input root crop tolerant of poor soils.",
			EstimatedProfit:   450,
			MarketPrice:       0.4,
			Score:             64,
			GrowthPeriod:      "90-150 days",
			WaterRequirements: "Low to moderate",
			SoilCompatibility: []string{"Sandy", "Loamy", "Red Laterite"},
			MaturityPeriod:    "3-5 months",
		},
	},
}

// FallbackResult returns the built-in recommendation set served when the
// model cannot produce a usable reply. Each call returns a fresh copy.
func FallbackResult() *domain.RecommendationResult {
	result := &domain.RecommendationResult{
		Categories: make([]domain.CropCategory, 0, len(domain.StandardCategories)),
		Reasoning:  fallbackReasoning,
		IsFallback: true,
	}
	for _, t := range domain.StandardCategories {
		src := fallbackCrops[t]
		crops := make([]domain.CropRecommendation, len(src))
		for i, c := range src {
			c.SoilCompatibility = append([]string(nil), c.SoilCompatibility...)
			crops[i] = c
		}
		EnforceTopPick(crops)
		result.Categories = append(result.Categories, domain.CropCategory{Type: t, Crops: crops})
	}
	return result
}
