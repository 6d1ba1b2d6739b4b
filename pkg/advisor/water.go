package advisor

import (
	"fmt"
	"strings"

	domain "github.com/donaldgifford/crop-advisor/pkg/types"
)

// Seasonal rainfall thresholds in inches. A value below a threshold falls in
// that bucket; anything at or above the last one is full irrigation.
const (
	limitedBelowInches = 10
	rainfedBelowInches = 15
	basicBelowInches   = 25
)

var waterDescriptions = map[domain.WaterCategory]string{
	domain.WaterLimited:         "less than 10 inches per season, water is scarce",
	domain.WaterRainfed:         "approximately 10-15 inches from rainfall per season",
	domain.WaterBasicIrrigation: "approximately 15-25 inches per season with basic irrigation",
	domain.WaterFullIrrigation:  "more than 25 inches per season with full irrigation",
}

var waterAliases = map[string]domain.WaterCategory{
	"limited":          domain.WaterLimited,
	"low":              domain.WaterLimited,
	"rainfed":          domain.WaterRainfed,
	"rain-fed":         domain.WaterRainfed,
	"basic-irrigation": domain.WaterBasicIrrigation,
	"basic_irrigation": domain.WaterBasicIrrigation,
	"basic irrigation": domain.WaterBasicIrrigation,
	"moderate":         domain.WaterBasicIrrigation,
	"full-irrigation":  domain.WaterFullIrrigation,
	"full_irrigation":  domain.WaterFullIrrigation,
	"full irrigation":  domain.WaterFullIrrigation,
	"abundant":         domain.WaterFullIrrigation,
}

// WaterCategoryForInches maps a seasonal water amount to its category.
func WaterCategoryForInches(inches float64) domain.WaterCategory {
	switch {
	case inches < limitedBelowInches:
		return domain.WaterLimited
	case inches < rainfedBelowInches:
		return domain.WaterRainfed
	case inches < basicBelowInches:
		return domain.WaterBasicIrrigation
	default:
		return domain.WaterFullIrrigation
	}
}

// ParseWaterCategory resolves a descriptive water value, accepting common
// spellings.
func ParseWaterCategory(s string) (domain.WaterCategory, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if c, ok := waterAliases[key]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown water availability %q", s)
}

// DescribeWater returns the human-readable description used in prompts.
// When the caller supplied a number it is appended to the description.
func DescribeWater(c domain.WaterCategory, inches *float64) string {
	desc, ok := waterDescriptions[c]
	if !ok {
		desc = string(c)
	}
	if inches != nil {
		return fmt.Sprintf("%s (reported: %g inches per season)", desc, *inches)
	}
	return desc
}
