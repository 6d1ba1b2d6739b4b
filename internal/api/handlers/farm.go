package handlers

import (
	"encoding/json"
	"fmt"

	domain "github.com/donaldgifford/crop-advisor/pkg/types"
)

// FarmBody is the wire form of a farm description. Presence and range
// checks happen in the advisor so every problem is reported together.
type FarmBody struct {
	Location          *LocationBody    `json:"location,omitempty"          doc:"Farm location; a name, coordinates, or both"`
	LandSize          float64          `json:"landSize,omitempty"          doc:"Farm size in acres"                                                      example:"10"`
	SoilType          string           `json:"soilType,omitempty"          doc:"Soil type"                                                               example:"Loamy"`
	WaterAvailability any              `json:"waterAvailability,omitempty" doc:"Inches per season, or one of limited, rainfed, basic-irrigation, full-irrigation"`
	Budget            float64          `json:"budget,omitempty"            doc:"Budget in USD"                                                           example:"1000"`
	FarmingPriority   string           `json:"farmingPriority,omitempty"   doc:"profit, balanced, or sustainability"                                     example:"balanced"`
	Experience        *int             `json:"experience,omitempty"        doc:"Years of farming experience"`
	PreviousCrop      string           `json:"previousCrop,omitempty"      doc:"Crop grown last season"`
	Notes             string           `json:"notes,omitempty"             doc:"Free-form notes passed to the model"`
}

// LocationBody is the wire form of a farm location.
type LocationBody struct {
	Name      string  `json:"name,omitempty" doc:"Place name"       example:"Nairobi"`
	Latitude  float64 `json:"lat,omitempty"  doc:"Latitude degrees"  example:"-1.2921"`
	Longitude float64 `json:"lng,omitempty"  doc:"Longitude degrees" example:"36.8219"`
}

// toRaw converts the body to the advisor's input type.
func (b *FarmBody) toRaw() (*domain.FarmRequestRaw, error) {
	raw := &domain.FarmRequestRaw{
		LandSize:        b.LandSize,
		SoilType:        b.SoilType,
		Budget:          b.Budget,
		FarmingPriority: b.FarmingPriority,
		Experience:      b.Experience,
		PreviousCrop:    b.PreviousCrop,
		Notes:           b.Notes,
	}

	if b.Location != nil {
		raw.Location = &domain.Location{
			Name:      b.Location.Name,
			Latitude:  b.Location.Latitude,
			Longitude: b.Location.Longitude,
		}
	}

	if b.WaterAvailability != nil {
		data, err := json.Marshal(b.WaterAvailability)
		if err != nil {
			return nil, fmt.Errorf("encoding waterAvailability: %w", err)
		}
		var water domain.WaterAvailability
		if err := json.Unmarshal(data, &water); err != nil {
			return nil, fmt.Errorf("waterAvailability: %w", err)
		}
		raw.WaterAvailability = &water
	}

	return raw, nil
}

// farmBodyFrom converts a stored farm to its wire form.
func farmBodyFrom(raw *domain.FarmRequestRaw) FarmBody {
	b := FarmBody{
		LandSize:        raw.LandSize,
		SoilType:        raw.SoilType,
		Budget:          raw.Budget,
		FarmingPriority: raw.FarmingPriority,
		Experience:      raw.Experience,
		PreviousCrop:    raw.PreviousCrop,
		Notes:           raw.Notes,
	}
	if raw.Location != nil {
		b.Location = &LocationBody{
			Name:      raw.Location.Name,
			Latitude:  raw.Location.Latitude,
			Longitude: raw.Location.Longitude,
		}
	}
	if w := raw.WaterAvailability; !w.IsZero() {
		if w.Inches != nil {
			b.WaterAvailability = *w.Inches
		} else {
			b.WaterAvailability = w.Category
		}
	}
	return b
}
