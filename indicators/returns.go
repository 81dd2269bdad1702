package indicators

import (
	"math"
	"time"

	"github.com/rustyeddy/stockbrief/market"
)

// Return horizons in trading days.
const (
	Horizon1W = 5
	Horizon1M = 21
	Horizon3M = 63
	Horizon1Y = 252
)

// PctChangeOver returns closes[-1]/closes[-(n+1)] - 1, or nil when the series
// is not longer than n or either endpoint is zero/NaN.
func PctChangeOver(closes []float64, n int) *float64 {
	if n < 0 || len(closes) <= n {
		return nil
	}
	return ratio(closes[len(closes)-1-n], closes[len(closes)-1])
}

// PctChange returns the period-over-period simple returns of closes, aligned
// with the input. Element 0 and any return with a zero or NaN base are NaN.
func PctChange(closes []float64) []float64 {
	out := make([]float64, len(closes))
	for i := range closes {
		if i == 0 {
			out[i] = math.NaN()
			continue
		}
		r := ratio(closes[i-1], closes[i])
		if r == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *r
	}
	return out
}

// YTDReturn compares the first and last closes dated on or after January 1
// of the final bar's year, in the final bar's location. Bars with a missing
// close are ignored. It is nil when fewer than two bars fall in the window
// or when the series has no calendar dates (any zero Date).
func YTDReturn(s market.Series) *float64 {
	s = s.DropMissingCloses()
	last, ok := s.Last()
	if !ok {
		return nil
	}
	for _, b := range s.Bars {
		if b.Date.IsZero() {
			return nil
		}
	}

	start := time.Date(last.Date.Year(), time.January, 1, 0, 0, 0, 0, last.Date.Location())
	var first, end float64
	count := 0
	for _, b := range s.Bars {
		if b.Date.Before(start) {
			continue
		}
		if count == 0 {
			first = b.Close
		}
		end = b.Close
		count++
	}
	if count < 2 {
		return nil
	}
	return ratio(first, end)
}

// ratio returns end/start - 1, nil when start is zero or the result is not
// finite.
func ratio(start, end float64) *float64 {
	if start == 0 {
		return nil
	}
	return num(end/start - 1)
}
