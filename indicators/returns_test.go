package indicators

import (
	"math"
	"testing"
	"time"

	"github.com/rustyeddy/stockbrief/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPctChangeOver(t *testing.T) {
	closes := []float64{100, 102, 99, 105, 101, 110}

	r := PctChangeOver(closes, 5)
	require.NotNil(t, r)
	assert.InDelta(t, 0.10, *r, 1e-12)

	r = PctChangeOver(closes, 1)
	require.NotNil(t, r)
	assert.InDelta(t, 110.0/101-1, *r, 1e-12)

	// length must exceed the horizon
	assert.Nil(t, PctChangeOver(closes, 6))
	assert.Nil(t, PctChangeOver(nil, 5))
}

func TestPctChangeOver_Degenerate(t *testing.T) {
	assert.Nil(t, PctChangeOver([]float64{0, 1, 2}, 2))
	assert.Nil(t, PctChangeOver([]float64{math.NaN(), 1, 2}, 2))
	assert.Nil(t, PctChangeOver([]float64{1, 1, math.NaN()}, 2))
	assert.Nil(t, PctChangeOver([]float64{1, 1, math.Inf(1)}, 2))
	assert.Nil(t, PctChangeOver([]float64{math.Inf(-1), 1, 2}, 2))
}

func TestPctChange(t *testing.T) {
	got := PctChange([]float64{100, 110, 0, 5})

	require.Len(t, got, 4)
	assert.True(t, math.IsNaN(got[0]))
	assert.InDelta(t, 0.10, got[1], 1e-12)
	assert.InDelta(t, -1.0, got[2], 1e-12)
	// zero base
	assert.True(t, math.IsNaN(got[3]))
}

func TestYTDReturn(t *testing.T) {
	start := time.Date(2023, 12, 29, 0, 0, 0, 0, time.UTC)
	s := market.FromCloses("X", start, []float64{10, 11, 12, 20, 25})

	r := YTDReturn(s)
	require.NotNil(t, r)
	assert.InDelta(t, 0.25, *r, 1e-12)
}

func TestYTDReturn_SingleBarInYear(t *testing.T) {
	start := time.Date(2023, 12, 29, 0, 0, 0, 0, time.UTC)
	s := market.FromCloses("X", start, []float64{10, 11, 12, 20})

	assert.Nil(t, YTDReturn(s))
}

func TestYTDReturn_SkipsMissingCloses(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := market.FromCloses("X", start, []float64{math.NaN(), 10, 15, math.NaN()})

	r := YTDReturn(s)
	require.NotNil(t, r)
	assert.InDelta(t, 0.5, *r, 1e-12)
}

func TestYTDReturn_UsesLastBarLocation(t *testing.T) {
	ny := time.FixedZone("EST", -5*3600)
	bars := []market.Bar{
		// 2024-01-01 03:00 UTC is still 2023 in New York
		{Date: time.Date(2023, 12, 31, 22, 0, 0, 0, ny), Close: 50},
		{Date: time.Date(2024, 1, 2, 16, 0, 0, 0, ny), Close: 100},
		{Date: time.Date(2024, 1, 3, 16, 0, 0, 0, ny), Close: 110},
	}
	r := YTDReturn(market.NewSeries("X", bars))
	require.NotNil(t, r)
	assert.InDelta(t, 0.10, *r, 1e-12)
}

func TestYTDReturn_NoCalendar(t *testing.T) {
	bars := []market.Bar{{Close: 1}, {Close: 2}, {Close: 3}}
	assert.Nil(t, YTDReturn(market.NewSeries("X", bars)))
	assert.Nil(t, YTDReturn(market.Series{}))
}

func TestYTDReturn_ZeroStart(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	s := market.FromCloses("X", start, []float64{0, 1})
	assert.Nil(t, YTDReturn(s))
}
