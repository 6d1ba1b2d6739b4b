package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/crop-advisor/pkg/types"
)

// farmFlags collects a farm description from flags or a JSON file.
type farmFlags struct {
	file         string
	location     string
	lat          float64
	lng          float64
	landSize     float64
	soil         string
	water        string
	budget       float64
	priority     string
	experience   int
	previousCrop string
	notes        string
}

func (f *farmFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.file, "file", "f", "", "read the farm description from a JSON file")
	fs.StringVar(&f.location, "location", "", "location name")
	fs.Float64Var(&f.lat, "lat", 0, "latitude")
	fs.Float64Var(&f.lng, "lng", 0, "longitude")
	fs.Float64Var(&f.landSize, "land-size", 0, "farm size in acres")
	fs.StringVar(&f.soil, "soil", "", "soil type (e.g. Loamy, Clay, \"Black Cotton\")")
	fs.StringVar(&f.water, "water", "",
		"inches per season, or limited, rainfed, basic-irrigation, full-irrigation")
	fs.Float64Var(&f.budget, "budget", 0, "budget in USD")
	fs.StringVar(&f.priority, "priority", "balanced", "profit, balanced, or sustainability")
	fs.IntVar(&f.experience, "experience", -1, "years of farming experience")
	fs.StringVar(&f.previousCrop, "previous-crop", "", "crop grown last season")
	fs.StringVar(&f.notes, "notes", "", "free-form notes for the model")
}

// farm builds the request. Validation is left to the server so that every
// problem is reported at once.
func (f *farmFlags) farm() (*domain.FarmRequestRaw, error) {
	if f.file != "" {
		return readFarmFile(f.file)
	}

	raw := &domain.FarmRequestRaw{
		LandSize:        f.landSize,
		SoilType:        f.soil,
		Budget:          f.budget,
		FarmingPriority: f.priority,
		PreviousCrop:    f.previousCrop,
		Notes:           f.notes,
	}
	if f.location != "" || f.lat != 0 || f.lng != 0 {
		raw.Location = &domain.Location{Name: f.location, Latitude: f.lat, Longitude: f.lng}
	}
	if f.water != "" {
		raw.WaterAvailability = parseWater(f.water)
	}
	if f.experience >= 0 {
		exp := f.experience
		raw.Experience = &exp
	}

	if raw.SoilType == "" && raw.WaterAvailability == nil {
		return nil, errors.New("describe the farm with --soil and --water, or pass --file")
	}
	return raw, nil
}

func parseWater(s string) *domain.WaterAvailability {
	s = strings.TrimSpace(s)
	if in, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(in) && !math.IsInf(in, 0) {
		return domain.WaterInches(in)
	}
	return domain.WaterCategoryOf(s)
}

func readFarmFile(path string) (*domain.FarmRequestRaw, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading farm file: %w", err)
	}
	var raw domain.FarmRequestRaw
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing farm file: %w", err)
	}
	return &raw, nil
}
