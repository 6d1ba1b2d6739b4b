// Package domain defines the core business types for the crop advisor.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// SoilType is one of the supported soil categories.
type SoilType string

// Soil type constants.
const (
	SoilLoamy  SoilType = "Loamy"
	SoilClay   SoilType = "Clay"
	SoilSandy  SoilType = "Sandy"
	SoilSilty  SoilType = "Silty"
	SoilPeaty  SoilType = "Peaty"
	SoilChalky SoilType = "Chalky"
	SoilSaline SoilType = "Saline"
	SoilBlack  SoilType = "Black Cotton"
	SoilRed    SoilType = "Red Laterite"
)

// SoilTypes lists every accepted soil type in display order.
var SoilTypes = []SoilType{
	SoilLoamy, SoilClay, SoilSandy, SoilSilty, SoilPeaty,
	SoilChalky, SoilSaline, SoilBlack, SoilRed,
}

// Valid reports whether s is a known soil type.
func (s SoilType) Valid() bool {
	return slices.Contains(SoilTypes, s)
}

// WaterCategory is the descriptive water-availability bucket.
type WaterCategory string

// Water category constants.
const (
	WaterLimited         WaterCategory = "limited"
	WaterRainfed         WaterCategory = "rainfed"
	WaterBasicIrrigation WaterCategory = "basic-irrigation"
	WaterFullIrrigation  WaterCategory = "full-irrigation"
)

// WaterCategories lists the water categories from driest to wettest.
var WaterCategories = []WaterCategory{
	WaterLimited, WaterRainfed, WaterBasicIrrigation, WaterFullIrrigation,
}

// Valid reports whether w is a known water category.
func (w WaterCategory) Valid() bool {
	return slices.Contains(WaterCategories, w)
}

// FarmingPriority is the grower's optimization goal.
type FarmingPriority string

// Farming priority constants.
const (
	PriorityProfit         FarmingPriority = "profit"
	PriorityBalanced       FarmingPriority = "balanced"
	PrioritySustainability FarmingPriority = "sustainability"
)

// FarmingPriorities lists every accepted priority.
var FarmingPriorities = []FarmingPriority{
	PriorityProfit, PriorityBalanced, PrioritySustainability,
}

// Valid reports whether p is a known priority.
func (p FarmingPriority) Valid() bool {
	return slices.Contains(FarmingPriorities, p)
}

// Location identifies where the farm is.
type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// WaterAvailability is either a descriptive category or a number of inches
// per season. On the wire it is a JSON string or a JSON number.
type WaterAvailability struct {
	Category string
	Inches   *float64
}

// WaterInches returns a numeric water availability.
func WaterInches(in float64) *WaterAvailability {
	return &WaterAvailability{Inches: &in}
}

// WaterCategoryOf returns a descriptive water availability.
func WaterCategoryOf(c string) *WaterAvailability {
	return &WaterAvailability{Category: c}
}

// IsZero reports whether neither form is set.
func (w *WaterAvailability) IsZero() bool {
	return w == nil || (w.Inches == nil && strings.TrimSpace(w.Category) == "")
}

// UnmarshalJSON accepts a number, a numeric string, or a category string.
func (w *WaterAvailability) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*w = WaterAvailability{}
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*w = WaterAvailability{Inches: &n}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("water availability must be a number or a string: %w", err)
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("water availability must be a finite number, got %q", s)
		}
		*w = WaterAvailability{Inches: &f}
		return nil
	}
	*w = WaterAvailability{Category: s}
	return nil
}

// MarshalJSON writes the numeric form when present, else the category.
func (w WaterAvailability) MarshalJSON() ([]byte, error) {
	if w.Inches != nil {
		return json.Marshal(*w.Inches)
	}
	return json.Marshal(w.Category)
}

// FarmRequestRaw is the farm description as submitted by a caller.
type FarmRequestRaw struct {
	Location          *Location          `json:"location,omitempty"`
	LandSize          float64            `json:"landSize"`
	SoilType          string             `json:"soilType"`
	WaterAvailability *WaterAvailability `json:"waterAvailability,omitempty"`
	Budget            float64            `json:"budget"`
	FarmingPriority   string             `json:"farmingPriority"`
	Experience        *int               `json:"experience,omitempty"`
	PreviousCrop      string             `json:"previousCrop,omitempty"`
	Notes             string             `json:"notes,omitempty"`
}

// FarmRequest is the canonical, validated farm description. Field order is
// significant: the JSON encoding of this struct is the cache fingerprint
// input, so fields must not be reordered.
type FarmRequest struct {
	Location        Location        `json:"location"`
	LandSize        float64         `json:"landSize"`
	SoilType        SoilType        `json:"soilType"`
	Water           WaterCategory   `json:"water"`
	WaterInches     *float64        `json:"waterInches,omitempty"`
	Budget          float64         `json:"budget"`
	FarmingPriority FarmingPriority `json:"farmingPriority"`
	Experience      *int            `json:"experience,omitempty"`
	PreviousCrop    string          `json:"previousCrop,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// CropRecommendation is a single recommended crop.
type CropRecommendation struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	EstimatedProfit   float64  `json:"estimatedProfit"`
	MarketPrice       float64  `json:"marketPrice"`
	Score             int      `json:"score"`
	GrowthPeriod      string   `json:"growthPeriod"`
	WaterRequirements string   `json:"waterRequirements"`
	SoilCompatibility []string `json:"soilCompatibility"`
	MaturityPeriod    string   `json:"maturityPeriod"`
	BestPlantingTime  string   `json:"bestPlantingTime,omitempty"`
	IsTopPick         bool     `json:"isTopPick"`
}

// CategoryType names a crop category.
type CategoryType string

// Standard crop categories.
const (
	CategoryGrains     CategoryType = "Grains & Cereals"
	CategoryLegumes    CategoryType = "Legumes & Pulses"
	CategoryVegetables CategoryType = "Vegetables"
	CategoryRoots      CategoryType = "Root Crops & Tubers"
	CategoryFruits     CategoryType = "Fruits & Berries"
	CategoryOilFiber   CategoryType = "Oil & Fiber Crops"
	CategorySpecialty  CategoryType = "Specialty & High-Value Crops"
)

// StandardCategories is the fixed, ordered category list every result carries.
var StandardCategories = []CategoryType{
	CategoryGrains,
	CategoryLegumes,
	CategoryVegetables,
	CategoryRoots,
	CategoryFruits,
	CategoryOilFiber,
	CategorySpecialty,
}

// CropCategory groups recommendations under one category.
type CropCategory struct {
	Type  CategoryType         `json:"type"`
	Crops []CropRecommendation `json:"crops"`
}

// TopPick returns the category's top pick, if any.
func (c *CropCategory) TopPick() (CropRecommendation, bool) {
	for _, crop := range c.Crops {
		if crop.IsTopPick {
			return crop, true
		}
	}
	return CropRecommendation{}, false
}

// RecommendationResult is the normalized recommendation set.
type RecommendationResult struct {
	Categories []CropCategory `json:"categories"`
	Reasoning  string         `json:"reasoning"`
	IsFallback bool           `json:"isFallback,omitempty"`
}

// Category returns the category with the given type.
func (r *RecommendationResult) Category(t CategoryType) (*CropCategory, bool) {
	for i := range r.Categories {
		if r.Categories[i].Type == t {
			return &r.Categories[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy of r.
func (r *RecommendationResult) Clone() *RecommendationResult {
	out := *r
	out.Categories = slices.Clone(r.Categories)
	for i := range out.Categories {
		crops := slices.Clone(out.Categories[i].Crops)
		for j := range crops {
			crops[j].SoilCompatibility = slices.Clone(crops[j].SoilCompatibility)
		}
		out.Categories[i].Crops = crops
	}
	return &out
}

// CropCount returns the total number of crops across categories.
func (r *RecommendationResult) CropCount() int {
	n := 0
	for _, c := range r.Categories {
		n += len(c.Crops)
	}
	return n
}

// CacheEntry is a stored result with its creation time.
type CacheEntry struct {
	Result    RecommendationResult `json:"result"`
	CreatedAt time.Time            `json:"createdAt"`
}

// Expired reports whether the entry is older than ttl at now.
func (e *CacheEntry) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.CreatedAt) > ttl
}

// ResultSource describes where a returned result came from.
type ResultSource string

// Result source constants.
const (
	SourceFresh    ResultSource = "fresh"
	SourceCached   ResultSource = "cached"
	SourceFallback ResultSource = "fallback"
)

// FarmProfile is a saved farm description.
type FarmProfile struct {
	ID        string         `json:"id"         db:"id"`
	Name      string         `json:"name"       db:"name"`
	Farm      FarmRequestRaw `json:"farm"       db:"farm"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// HistoryEntry records one served recommendation.
type HistoryEntry struct {
	ID          string               `json:"id"                     db:"id"`
	ProfileID   *string              `json:"profile_id,omitempty"   db:"profile_id"`
	Fingerprint string               `json:"fingerprint"            db:"fingerprint"`
	Source      ResultSource         `json:"source"                 db:"source"`
	FailureKind string               `json:"failure_kind,omitempty" db:"failure_kind"`
	Attempts    int                  `json:"attempts"               db:"attempts"`
	Result      RecommendationResult `json:"result"                 db:"result"`
	CreatedAt   time.Time            `json:"created_at"             db:"created_at"`
}
