package advisor

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	domain "github.com/donaldgifford/crop-advisor/pkg/types"
)

// recommendTmpl is the crop recommendation prompt template.
const recommendTmpl = `You are an agricultural advisor. Recommend crops for the farm described below.

Farm details:
- Location: {{.Location}}
- Land size: {{.LandSize}} acres
- Soil type: {{.SoilType}}
- Water availability: {{.Water}} ({{.WaterDescription}})
- Budget: ${{.Budget}} per acre
- Farming priority: {{.Priority}}
{{- if .Experience}}
- Farming experience: {{.Experience}} years
{{- end}}
{{- if .PreviousCrop}}
- Previous crop: {{.PreviousCrop}}
{{- end}}
{{- if .Notes}}
- Additional notes: {{.Notes}}
{{- end}}

Consider local climate at the location, soil compatibility, water needs,
input costs within the budget, and the stated priority ({{.PriorityGuidance}}).

Respond ONLY with a JSON object matching the schema below. No prose, no markdown.

Schema:
{
  "categories": [
    {
      "type": one of {{.CategoryList}},
      "crops": [
        {
          "name": string,
          "description": string,
          "estimatedProfit": number (USD per acre, >= 0),
          "marketPrice": number (USD per unit, >= 0),
          "score": integer 0-100 (suitability for this farm),
          "growthPeriod": string (e.g. "90-120 days"),
          "waterRequirements": string,
          "soilCompatibility": [string] (at least one soil type),
          "maturityPeriod": string,
          "bestPlantingTime": string,
          "isTopPick": boolean
        }
      ]
    }
  ],
  "reasoning": string (why these crops fit this farm)
}

Rules:
- Include every category listed above exactly once, in that order. Use an empty "crops" list when no crop in a category suits this farm.
- Recommend at most {{.MaxPerCategory}} crops per category, ordered from most to least suitable.
- In each category with at least one crop, mark exactly one crop with "isTopPick": true and all others false.`

var recommendTemplate = template.Must(template.New("recommend").Parse(recommendTmpl))

var priorityGuidance = map[domain.FarmingPriority]string{
	domain.PriorityProfit:         "maximize net profit per acre",
	domain.PriorityBalanced:       "balance profit against soil health and risk",
	domain.PrioritySustainability: "favor soil health, water conservation, and low inputs over profit",
}

const maxCropsPerCategory = 4

// PromptData holds the template variables for the recommendation prompt.
type PromptData struct {
	Location         string
	LandSize         string
	SoilType         string
	Water            string
	WaterDescription string
	Budget           string
	Priority         string
	PriorityGuidance string
	Experience       string
	PreviousCrop     string
	Notes            string
	CategoryList     string
	MaxPerCategory   int
}

// BuildPrompt renders the recommendation prompt for a canonical request.
// Output depends only on req.
func BuildPrompt(req *domain.FarmRequest) (string, error) {
	data := PromptData{
		Location:         describeLocation(req.Location),
		LandSize:         formatNumber(req.LandSize),
		SoilType:         string(req.SoilType),
		Water:            string(req.Water),
		WaterDescription: DescribeWater(req.Water, req.WaterInches),
		Budget:           formatNumber(req.Budget),
		Priority:         string(req.FarmingPriority),
		PriorityGuidance: priorityGuidance[req.FarmingPriority],
		PreviousCrop:     req.PreviousCrop,
		Notes:            req.Notes,
		CategoryList:     categoryList(),
		MaxPerCategory:   maxCropsPerCategory,
	}
	if req.Experience != nil {
		data.Experience = strconv.Itoa(*req.Experience)
	}

	var buf bytes.Buffer
	if err := recommendTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing recommend template: %w", err)
	}
	return buf.String(), nil
}

func describeLocation(l domain.Location) string {
	coords := fmt.Sprintf("lat %s, lng %s",
		strconv.FormatFloat(l.Latitude, 'f', 4, 64),
		strconv.FormatFloat(l.Longitude, 'f', 4, 64),
	)
	if l.Name == "" {
		return coords
	}
	return fmt.Sprintf("%s (%s)", l.Name, coords)
}

func categoryList() string {
	quoted := make([]string, len(domain.StandardCategories))
	for i, c := range domain.StandardCategories {
		quoted[i] = strconv.Quote(string(c))
	}
	return strings.Join(quoted, " | ")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
