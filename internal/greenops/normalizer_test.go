package greenops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeToKg(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		unit    string
		want    float64
		wantErr error
	}{
		{name: "kilograms", value: 2.3, unit: "kg", want: 2.3},
		{name: "empty unit is kg", value: 2.3, unit: "", want: 2.3},
		{name: "grams", value: 500, unit: "g", want: 0.5},
		{name: "tons", value: 1.5, unit: "t", want: 1500},
		{name: "pounds", value: 10, unit: "lb", want: 4.53592},
		{name: "case insensitive CO2e suffix", value: 3, unit: "KgCO2e", want: 3},
		{name: "negative offsets keep sign", value: -500, unit: "g", want: -0.5},
		{name: "unknown unit", value: 1, unit: "oz", wantErr: ErrInvalidUnit},
		{name: "NaN", value: math.NaN(), unit: "kg", wantErr: ErrCalculationOverflow},
		{name: "overflow after conversion", value: math.MaxFloat64, unit: "t", wantErr: ErrCalculationOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeToKg(tt.value, tt.unit)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestIsRecognizedUnit(t *testing.T) {
	assert.True(t, IsRecognizedUnit("gCO2e"))
	assert.True(t, IsRecognizedUnit("LB"))
	assert.False(t, IsRecognizedUnit("kWh"))
}
