package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealizedVol(t *testing.T) {
	returns := []float64{math.NaN(), 0.01, -0.01}

	v := RealizedVol(returns, 2)
	require.NotNil(t, v)
	// sample std of {0.01, -0.01} is sqrt(0.0002)
	assert.InDelta(t, math.Sqrt(0.0002)*math.Sqrt(252), *v, 1e-12)
}

func TestRealizedVol_UsesTrailingWindow(t *testing.T) {
	returns := []float64{math.NaN(), 0.5, -0.5, 0.02, 0.02, 0.02}

	v := RealizedVol(returns, 3)
	require.NotNil(t, v)
	assert.InDelta(t, 0.0, *v, 1e-12)
}

func TestRealizedVol_Insufficient(t *testing.T) {
	returns := []float64{math.NaN(), 0.01, math.NaN(), -0.01}

	assert.Nil(t, RealizedVol(returns, 3))
	assert.NotNil(t, RealizedVol(returns, 2))
	assert.Nil(t, RealizedVol(returns, 1))
	assert.Nil(t, RealizedVol(nil, 21))
}

func TestMaxDrawdown(t *testing.T) {
	closes := []float64{100, 120, 90, 110}

	d := MaxDrawdown(closes, 0)
	require.NotNil(t, d)
	assert.InDelta(t, -0.25, *d, 1e-12)

	// trailing window drops the peak
	d = MaxDrawdown(closes, 2)
	require.NotNil(t, d)
	assert.Equal(t, 0.0, *d)

	assert.Nil(t, MaxDrawdown(nil, TradingDays))
	assert.Nil(t, MaxDrawdown([]float64{math.NaN()}, TradingDays))
}

func TestMaxDrawdown_MonotonicIsZero(t *testing.T) {
	closes := make([]float64, 300)
	for i := range closes {
		closes[i] = 10 + 0.37*float64(i)
	}
	d := MaxDrawdown(closes, TradingDays)
	require.NotNil(t, d)
	assert.Equal(t, 0.0, *d)
}

func TestMaxDrawdown_Bounded(t *testing.T) {
	closes := []float64{5, 1, 8, 0.01, 3, 9, 2, 2, 15, 0.5}
	d := MaxDrawdown(closes, TradingDays)
	require.NotNil(t, d)
	assert.GreaterOrEqual(t, *d, -1.0)
	assert.LessOrEqual(t, *d, 0.0)
	assert.InDelta(t, 0.01/8-1, *d, 1e-12)
}

func TestHighLow(t *testing.T) {
	closes := []float64{5, 9, 1, 4, 6}

	h, l := HighLow(closes, 3)
	require.NotNil(t, h)
	require.NotNil(t, l)
	assert.Equal(t, 6.0, *h)
	assert.Equal(t, 1.0, *l)

	// short history uses everything available
	h, l = HighLow(closes, TradingDays)
	assert.Equal(t, 9.0, *h)
	assert.Equal(t, 1.0, *l)

	h, l = HighLow(nil, TradingDays)
	assert.Nil(t, h)
	assert.Nil(t, l)
}
