package market

import (
	"fmt"
	"math"
	"slices"
	"time"
)

// Series is a chronologically ordered run of bars for one symbol.
//
// Fields records which columns the series was built with. A series read from
// a CSV without a close column has no FieldClose entry even though every Bar
// has a (NaN) Close.
type Series struct {
	Symbol string
	Bars   []Bar
	Fields []string
}

// NewSeries builds a series carrying the full OHLCV column set.
func NewSeries(symbol string, bars []Bar) Series {
	return Series{
		Symbol: symbol,
		Bars:   bars,
		Fields: slices.Clone(AllFields),
	}
}

// FromCloses builds a close-only series, one bar per day starting at start.
// Handy for tests and for callers that only have a close column.
func FromCloses(symbol string, start time.Time, closes []float64) Series {
	bars := make([]Bar, len(closes))
	for i, c := range closes {
		b := NaNBar(start.AddDate(0, 0, i))
		b.Close = c
		bars[i] = b
	}
	return Series{Symbol: symbol, Bars: bars, Fields: []string{FieldClose}}
}

func (s Series) Len() int {
	return len(s.Bars)
}

// HasField reports whether the named column is present.
func (s Series) HasField(name string) bool {
	return slices.Contains(s.Fields, name)
}

// Closes returns the close column, NaNs included.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Close
	}
	return out
}

// Last returns the final bar. ok is false for an empty series.
func (s Series) Last() (b Bar, ok bool) {
	if len(s.Bars) == 0 {
		return Bar{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// DropMissingCloses returns a copy without the bars whose close is NaN.
func (s Series) DropMissingCloses() Series {
	out := Series{Symbol: s.Symbol, Fields: s.Fields}
	out.Bars = make([]Bar, 0, len(s.Bars))
	for _, b := range s.Bars {
		if b.HasClose() {
			out.Bars = append(out.Bars, b)
		}
	}
	return out
}

// Tail returns the last n bars (all of them when n >= Len).
func (s Series) Tail(n int) Series {
	if n < 0 {
		n = 0
	}
	if n > len(s.Bars) {
		n = len(s.Bars)
	}
	return Series{Symbol: s.Symbol, Bars: s.Bars[len(s.Bars)-n:], Fields: s.Fields}
}

// Validate checks the ordering and close-price invariants: dates strictly
// increasing and every close positive and finite.
func (s Series) Validate() error {
	for i, b := range s.Bars {
		if math.IsNaN(b.Close) || math.IsInf(b.Close, 0) || b.Close <= 0 {
			return fmt.Errorf("bar %d (%s): close must be positive, got %v", i, b.Date.Format(time.DateOnly), b.Close)
		}
		if i == 0 {
			continue
		}
		prev := s.Bars[i-1].Date
		if !b.Date.After(prev) {
			return fmt.Errorf("bar %d: date %s not after %s", i, b.Date.Format(time.DateOnly), prev.Format(time.DateOnly))
		}
	}
	return nil
}
