// Package indicators computes technical indicators over daily closes and
// assembles them into a Summary.
//
// Every function here is pure: it reads its input slices, allocates its own
// output and keeps no state between calls, so callers may run it for many
// symbols at once.
package indicators

// Smoother is a streaming one-value-at-a-time filter.
// It is deterministic: the same inputs in the same order give the same value.
type Smoother interface {
	// Reset clears all internal state.
	Reset()

	// Update consumes the next observation. NaN observations before the
	// first real value are skipped; the first real value seeds the filter.
	Update(x float64)

	// Value returns the current smoothed value, NaN before the first
	// observation.
	Value() float64
}

// smooth runs s over xs from a fresh state and returns the aligned output.
func smooth(s Smoother, xs []float64) []float64 {
	s.Reset()
	out := make([]float64, len(xs))
	for i, x := range xs {
		s.Update(x)
		out[i] = s.Value()
	}
	return out
}
