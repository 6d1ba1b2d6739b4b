package advisor

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	domain "github.com/donaldgifford/crop-advisor/pkg/types"
)

// farmInput mirrors FarmRequestRaw with validation rules attached.
type farmInput struct {
	Location        *locationInput `validate:"required"`
	LandSize        float64        `validate:"gt=0"`
	SoilType        string         `validate:"required,soiltype"`
	WaterPresent    bool           `validate:"eq=true"`
	Budget          float64        `validate:"gt=0"`
	FarmingPriority string         `validate:"priority"`
	Experience      *int           `validate:"omitempty,gte=0,lte=100"`
}

type locationInput struct {
	Name      string  `validate:"required_without_all=Latitude Longitude"`
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
}

var fieldNames = map[string]string{
	"Location":        "location",
	"Name":            "location.name",
	"Latitude":        "location.lat",
	"Longitude":       "location.lng",
	"LandSize":        "landSize",
	"SoilType":        "soilType",
	"WaterPresent":    "waterAvailability",
	"Budget":          "budget",
	"FarmingPriority": "farmingPriority",
	"Experience":      "experience",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("soiltype", func(fl validator.FieldLevel) bool {
		_, ok := lookupSoil(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || domain.FarmingPriority(strings.ToLower(s)).Valid()
	})
	return v
}

func lookupSoil(s string) (domain.SoilType, bool) {
	for _, st := range domain.SoilTypes {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, true
		}
	}
	return "", false
}

// NormalizeRequest validates a raw farm description and converts it to its
// canonical form. Water availability always resolves to exactly one category;
// a numeric value is kept alongside it for the prompt.
func NormalizeRequest(raw *domain.FarmRequestRaw) (domain.FarmRequest, error) {
	if raw == nil {
		return domain.FarmRequest{}, &ValidationError{Problems: []string{"request: required"}}
	}

	in := farmInput{
		LandSize:        raw.LandSize,
		SoilType:        raw.SoilType,
		WaterPresent:    !raw.WaterAvailability.IsZero(),
		Budget:          raw.Budget,
		FarmingPriority: raw.FarmingPriority,
		Experience:      raw.Experience,
	}
	if raw.Location != nil {
		in.Location = &locationInput{
			Name:      strings.TrimSpace(raw.Location.Name),
			Latitude:  raw.Location.Latitude,
			Longitude: raw.Location.Longitude,
		}
	}

	var problems []string
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return domain.FarmRequest{}, fmt.Errorf("validating farm request: %w", err)
		}
		for _, fe := range verrs {
			problems = append(problems, describeFieldError(fe))
		}
	}

	var (
		water  domain.WaterCategory
		inches *float64
	)
	if w := raw.WaterAvailability; !w.IsZero() {
		if w.Inches != nil {
			switch v := *w.Inches; {
			case math.IsNaN(v) || math.IsInf(v, 0):
				problems = append(problems, "waterAvailability: must be a finite number")
			case v < 0:
				problems = append(problems, "waterAvailability: must not be negative")
			default:
				inches = &v
				water = WaterCategoryForInches(v)
			}
		} else {
			c, err := ParseWaterCategory(w.Category)
			if err != nil {
				problems = append(problems, "waterAvailability: "+err.Error())
			}
			water = c
		}
	}

	if len(problems) > 0 {
		return domain.FarmRequest{}, &ValidationError{Problems: problems}
	}

	soil, _ := lookupSoil(raw.SoilType)
	priority := domain.FarmingPriority(strings.ToLower(raw.FarmingPriority))
	if priority == "" {
		priority = domain.PriorityBalanced
	}

	return domain.FarmRequest{
		Location: domain.Location{
			Name:      in.Location.Name,
			Latitude:  raw.Location.Latitude,
			Longitude: raw.Location.Longitude,
		},
		LandSize:        raw.LandSize,
		SoilType:        soil,
		Water:           water,
		WaterInches:     inches,
		Budget:          raw.Budget,
		FarmingPriority: priority,
		Experience:      raw.Experience,
		PreviousCrop:    strings.TrimSpace(raw.PreviousCrop),
		Notes:           strings.TrimSpace(raw.Notes),
	}, nil
}

func describeFieldError(fe validator.FieldError) string {
	name, ok := fieldNames[fe.Field()]
	if !ok {
		name = fe.Field()
	}
	switch fe.Tag() {
	case "required", "eq", "required_without_all":
		return name + ": required"
	case "gt":
		return name + ": must be positive"
	case "soiltype":
		return fmt.Sprintf("%s: unknown soil type %q", name, fe.Value())
	case "priority":
		return fmt.Sprintf("%s: must be one of profit, balanced, sustainability (got %q)", name, fe.Value())
	default:
		return fmt.Sprintf("%s: failed %s=%s", name, fe.Tag(), fe.Param())
	}
}
