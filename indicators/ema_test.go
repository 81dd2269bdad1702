package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEMA_Streaming(t *testing.T) {
	ema := NewEMA(3)
	require.True(t, math.IsNaN(ema.Value()))

	ema.Update(1.0)
	require.Equal(t, 1.0, ema.Value())

	ema.Update(math.NaN())
	require.Equal(t, 1.0, ema.Value())

	ema.Update(3.0)
	require.InDelta(t, 2.0, ema.Value(), 1e-12)
}

func TestEMA_KnownSequence(t *testing.T) {
	// span = 3, alpha = 2/(3+1) = 0.5
	//
	// sequence: 10, 11, 12, 13
	//
	// 1) seed = 10
	// 2) 0.5*11 + 0.5*10 = 10.5
	// 3) 0.5*12 + 0.5*10.5 = 11.25
	// 4) 0.5*13 + 0.5*11.25 = 12.125
	got := EMA([]float64{10, 11, 12, 13}, 3)

	want := []float64{10, 10.5, 11.25, 12.125}
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-12, "index %d", i)
	}
}

func TestEMA_SpanOneIsIdentity(t *testing.T) {
	xs := []float64{3, 1.5, 9, -2, 7.25, 100}
	assert.Equal(t, xs, EMA(xs, 1))
}

func TestEMA_InvalidSpan(t *testing.T) {
	assert.Nil(t, EMA([]float64{1, 2}, 0))
	assert.Panics(t, func() { NewEMA(0) })
}

func TestEMA_Empty(t *testing.T) {
	assert.Empty(t, EMA(nil, 5))
}

func TestEMA_LeadingNaNSeedsOnFirstValue(t *testing.T) {
	got := EMA([]float64{math.NaN(), 4, 8}, 3)

	assert.True(t, math.IsNaN(got[0]))
	assert.Equal(t, 4.0, got[1])
	assert.InDelta(t, 6.0, got[2], 1e-12)
}

func TestEMA_Reset(t *testing.T) {
	ema := NewEMA(3)

	ema.Update(10)
	ema.Update(11)

	ema.Reset()

	require.True(t, math.IsNaN(ema.Value()))

	ema.Update(20)
	require.Equal(t, 20.0, ema.Value())
}

func TestWilder_UsesOneOverPeriod(t *testing.T) {
	// period = 4, alpha = 0.25
	// 1) seed = 8
	// 2) 0.25*0 + 0.75*8 = 6
	// 3) 0.25*4 + 0.75*6 = 5.5
	got := Wilder([]float64{8, 0, 4}, 4)
	assert.InDeltaSlice(t, []float64{8, 6, 5.5}, got, 1e-12)

	// The span form with the same number differs: alpha = 2/5.
	ema := EMA([]float64{8, 0, 4}, 4)
	assert.NotEqual(t, got[2], ema[2])
}

func TestWilder_Streaming(t *testing.T) {
	w := NewWilder(2)

	w.Update(2)
	assert.Equal(t, 2.0, w.Value())
	w.Update(4)
	assert.InDelta(t, 3.0, w.Value(), 1e-12)

	assert.Nil(t, Wilder([]float64{1}, 0))
	assert.Panics(t, func() { NewWilder(0) })
}

func TestSmoothersSatisfyInterface(t *testing.T) {
	var _ Smoother = NewEMA(1)
	var _ Smoother = NewWilder(1)
}
