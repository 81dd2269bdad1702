package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSI_KnownSequence(t *testing.T) {
	// period = 2, alpha = 0.5; diffs +1, -1, +1
	// up:   1, 0.5, 0.75
	// down: 0, 0.5, 0.25
	// rsi:  100 (no losses), 50, 100-100/(1+3) = 75
	got := RSI([]float64{1, 2, 1, 2}, 2)

	require.Len(t, got, 4)
	assert.True(t, math.IsNaN(got[0]))
	assert.Equal(t, 100.0, got[1])
	assert.InDelta(t, 50.0, got[2], 1e-12)
	assert.InDelta(t, 75.0, got[3], 1e-12)
}

func TestRSI_AllGainsIsHundred(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = float64(100 + i)
	}
	got := RSI(closes, DefaultRSIPeriod)
	assert.Equal(t, 100.0, got[len(got)-1])
}

func TestRSI_AllLossesIsZero(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = float64(100 - i)
	}
	got := RSI(closes, DefaultRSIPeriod)
	assert.InDelta(t, 0.0, got[len(got)-1], 1e-12)
}

func TestRSI_FlatIsFifty(t *testing.T) {
	got := RSI([]float64{5, 5, 5, 5}, DefaultRSIPeriod)
	assert.Equal(t, 50.0, got[3])
}

func TestRSI_Bounded(t *testing.T) {
	closes := []float64{44.34, 44.09, 44.15, 43.61, 44.33, 44.83, 45.10, 45.42,
		45.84, 46.08, 45.89, 46.03, 45.61, 46.28, 46.28, 46.00, 46.03, 46.41,
		46.22, 45.64, 46.21, 46.25, 45.71, 46.45, 45.78, 45.35, 44.03, 44.18}
	for i, v := range RSI(closes, DefaultRSIPeriod) {
		if i == 0 {
			continue
		}
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
}

func TestRSI_EdgeInputs(t *testing.T) {
	assert.Empty(t, RSI(nil, 14))
	assert.Nil(t, RSI([]float64{1, 2}, 0))

	one := RSI([]float64{1}, 14)
	require.Len(t, one, 1)
	assert.True(t, math.IsNaN(one[0]))
}

func TestRSIBand(t *testing.T) {
	const eps = 1e-9
	tests := []struct {
		rsi  float64
		want string
	}{
		{70.0, BandOverbought},
		{70.0 - eps, BandNeutral},
		{30.0, BandOversold},
		{30.0 + eps, BandNeutral},
		{100, BandOverbought},
		{0, BandOversold},
		{50, BandNeutral},
		{math.NaN(), BandNeutral},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RSIBand(tt.rsi), "rsi=%v", tt.rsi)
	}
}
