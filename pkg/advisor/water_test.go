package advisor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/crop-advisor/pkg/advisor"
	domain "github.com/donaldgifford/crop-advisor/pkg/types"
)

func TestWaterCategoryForInches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		inches float64
		want   domain.WaterCategory
	}{
		{0, domain.WaterLimited},
		{9.99, domain.WaterLimited},
		{10, domain.WaterRainfed},
		{12, domain.WaterRainfed},
		{14.9, domain.WaterRainfed},
		{15, domain.WaterBasicIrrigation},
		{24.5, domain.WaterBasicIrrigation},
		{25, domain.WaterFullIrrigation},
		{80, domain.WaterFullIrrigation},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, advisor.WaterCategoryForInches(tt.inches), "inches=%v", tt.inches)
	}
}

func TestParseWaterCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    domain.WaterCategory
		wantErr bool
	}{
		{in: "rainfed", want: domain.WaterRainfed},
		{in: "  Rain-Fed ", want: domain.WaterRainfed},
		{in: "basic_irrigation", want: domain.WaterBasicIrrigation},
		{in: "Full Irrigation", want: domain.WaterFullIrrigation},
		{in: "low", want: domain.WaterLimited},
		{in: "monsoon", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := advisor.ParseWaterCategory(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescribeWater(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"approximately 10-15 inches from rainfall per season",
		advisor.DescribeWater(domain.WaterRainfed, nil),
	)

	inches := 12.5
	assert.Equal(t,
		"approximately 10-15 inches from rainfall per season (reported: 12.5 inches per season)",
		advisor.DescribeWater(domain.WaterRainfed, &inches),
	)

	assert.Equal(t, "swamp", advisor.DescribeWater("swamp", nil))
}
