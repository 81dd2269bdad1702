package indicators

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TradingDays is the annualization convention.
const TradingDays = 252

// Volatility windows in trading days.
const (
	VolWindow1M = 21
	VolWindow3M = 63
)

// RealizedVol returns the sample standard deviation of the last window
// non-NaN returns, annualized by sqrt(252). It is nil when fewer than window
// returns are available or window < 2.
func RealizedVol(returns []float64, window int) *float64 {
	if window < 2 {
		return nil
	}
	rs := dropNaN(returns)
	if len(rs) < window {
		return nil
	}
	v := stat.StdDev(rs[len(rs)-window:], nil) * math.Sqrt(TradingDays)
	return &v
}

// MaxDrawdown returns the most negative close/running-max - 1 over the last
// window closes (the whole series when window <= 0). NaN closes are ignored.
// The result lies in [-1, 0]; it is nil for an empty series.
func MaxDrawdown(closes []float64, window int) *float64 {
	cs := dropNaN(closes)
	if window > 0 && len(cs) > window {
		cs = cs[len(cs)-window:]
	}
	if len(cs) == 0 {
		return nil
	}

	peak := cs[0]
	mdd := 0.0
	for _, c := range cs {
		if c > peak {
			peak = c
		}
		if dd := c/peak - 1; dd < mdd {
			mdd = dd
		}
	}
	return &mdd
}

// HighLow returns the max and min of the last min(window, len) closes.
// Both are nil for an empty series or a non-positive window.
func HighLow(closes []float64, window int) (high, low *float64) {
	cs := dropNaN(closes)
	w := min(window, len(cs))
	if w <= 0 {
		return nil, nil
	}
	tail := cs[len(cs)-w:]
	h, l := floats.Max(tail), floats.Min(tail)
	return &h, &l
}

func dropNaN(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}
