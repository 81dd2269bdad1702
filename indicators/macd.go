package indicators

// Default MACD spans.
const (
	MACDFast   = 12
	MACDSlow   = 26
	MACDSignal = 9
)

// MACDResult holds the three MACD series, each aligned with the input.
type MACDResult struct {
	Line   []float64
	Signal []float64
	Hist   []float64
}

// MACD computes EMA(fast) - EMA(slow) of closes, its EMA(signal) and the
// difference of the two. Spans below 1 yield an empty result.
func MACD(closes []float64, fast, slow, signal int) MACDResult {
	if fast < 1 || slow < 1 || signal < 1 {
		return MACDResult{}
	}
	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)

	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = emaFast[i] - emaSlow[i]
	}
	sig := EMA(line, signal)

	hist := make([]float64, len(closes))
	for i := range line {
		hist[i] = line[i] - sig[i]
	}
	return MACDResult{Line: line, Signal: sig, Hist: hist}
}

// Last returns the final line, signal and histogram values; ok is false when
// the series are empty.
func (m MACDResult) Last() (line, signal, hist float64, ok bool) {
	n := len(m.Line)
	if n == 0 {
		return 0, 0, 0, false
	}
	return m.Line[n-1], m.Signal[n-1], m.Hist[n-1], true
}
