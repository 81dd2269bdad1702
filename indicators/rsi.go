package indicators

import "math"

// DefaultRSIPeriod is the lookback used by the summary.
const DefaultRSIPeriod = 14

// RSI bands, inclusive at the thresholds.
const (
	RSIOverbought = 70.0
	RSIOversold   = 30.0
)

// RSI returns the relative strength index of closes, aligned with the input.
//
// Gains and losses of consecutive closes are smoothed with Wilder's constant
// (alpha = 1/period) starting from the first difference, so element 0 is
// always NaN. When the average loss is zero the index is 100, or 50 if the
// average gain is zero as well (a flat series).
func RSI(closes []float64, period int) []float64 {
	if period < 1 {
		return nil
	}
	out := make([]float64, len(closes))
	if len(closes) == 0 {
		return out
	}

	up := NewWilder(period)
	down := NewWilder(period)

	out[0] = math.NaN()
	for i := 1; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		switch {
		case math.IsNaN(d):
			up.Update(math.NaN())
			down.Update(math.NaN())
		case d > 0:
			up.Update(d)
			down.Update(0)
		default:
			up.Update(0)
			down.Update(-d)
		}
		out[i] = rsiFrom(up.Value(), down.Value())
	}
	return out
}

func rsiFrom(avgUp, avgDown float64) float64 {
	if math.IsNaN(avgUp) || math.IsNaN(avgDown) {
		return math.NaN()
	}
	if avgDown == 0 {
		if avgUp == 0 {
			return 50
		}
		return 100
	}
	return 100 - 100/(1+avgUp/avgDown)
}

// RSIBand classifies an RSI reading as "overbought" (>= 70), "oversold"
// (<= 30) or "neutral". NaN is neutral.
func RSIBand(rsi float64) string {
	switch {
	case rsi >= RSIOverbought:
		return BandOverbought
	case rsi <= RSIOversold:
		return BandOversold
	default:
		return BandNeutral
	}
}
