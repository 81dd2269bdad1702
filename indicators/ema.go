package indicators

import (
	"fmt"
	"math"
)

// ExponentialMA is the recursive span-form EMA: alpha = 2/(span+1), seeded
// with the first observation and no warm-up bias correction.
type ExponentialMA struct {
	alpha float64

	seen  int
	value float64
}

// NewEMA returns a streaming EMA. It panics if span < 1.
func NewEMA(span int) *ExponentialMA {
	if span < 1 {
		panic(fmt.Sprintf("EMA span must be >= 1, got %d", span))
	}
	return &ExponentialMA{
		alpha: 2.0 / float64(span+1),
		value: math.NaN(),
	}
}

func (e *ExponentialMA) Value() float64 { return e.value }

func (e *ExponentialMA) Reset() {
	e.seen = 0
	e.value = math.NaN()
}

func (e *ExponentialMA) Update(x float64) {
	e.value, e.seen = recurse(e.alpha, e.value, e.seen, x)
}

// WilderMA is Wilder's smoothing: alpha = 1/period (center of mass
// period-1), seeded with the first observation. It is a separate type from
// ExponentialMA on purpose; RSI depends on this exact constant.
type WilderMA struct {
	alpha float64

	seen  int
	value float64
}

// NewWilder returns a streaming Wilder smoother. It panics if period < 1.
func NewWilder(period int) *WilderMA {
	if period < 1 {
		panic(fmt.Sprintf("Wilder period must be >= 1, got %d", period))
	}
	return &WilderMA{
		alpha: 1.0 / float64(period),
		value: math.NaN(),
	}
}

func (w *WilderMA) Value() float64 { return w.value }

func (w *WilderMA) Reset() {
	w.seen = 0
	w.value = math.NaN()
}

func (w *WilderMA) Update(x float64) {
	w.value, w.seen = recurse(w.alpha, w.value, w.seen, x)
}

// recurse is one step of prev + alpha*(x-prev). A NaN x leaves the state as
// it is; the first real x becomes the seed.
func recurse(alpha, prev float64, seen int, x float64) (float64, int) {
	if math.IsNaN(x) {
		return prev, seen
	}
	if seen == 0 {
		return x, 1
	}
	return alpha*x + (1.0-alpha)*prev, seen + 1
}

// EMA returns the span-form exponential moving average of xs, aligned with
// the input. It works on any series, prices or derived ones like the MACD
// line. It returns nil when span < 1.
func EMA(xs []float64, span int) []float64 {
	if span < 1 {
		return nil
	}
	return smooth(NewEMA(span), xs)
}

// Wilder returns Wilder's smoothing of xs (alpha = 1/period), aligned with
// the input. It returns nil when period < 1.
func Wilder(xs []float64, period int) []float64 {
	if period < 1 {
		return nil
	}
	return smooth(NewWilder(period), xs)
}
