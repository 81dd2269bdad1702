package indicators

import (
	"math"

	"github.com/rustyeddy/stockbrief/market"
)

// Trend and RSI band labels.
const (
	TrendBullish = "bullish"
	TrendBearish = "bearish"

	BandOverbought = "overbought"
	BandOversold   = "oversold"
	BandNeutral    = "neutral"
)

// Nominal EMA spans of the two trend slots.
const (
	EMAShortSpan = 50
	EMALongSpan  = 200
)

// SummaryKeys lists every summary field name in output order. Downstream
// report and prompt code depends on these names.
var SummaryKeys = []string{
	"close", "ema50", "ema200", "rsi", "trend", "rsi_band",
	"dist_to_ema50", "dist_to_ema200",
	"return_5d", "return_21d", "return_63d", "return_252d", "return_ytd",
	"vol_21d", "vol_63d", "max_drawdown_252d",
	"52w_high", "52w_low",
	"macd", "macd_signal", "macd_hist",
}

// Summary is the flat indicator snapshot of one series. Nil pointers are
// fields without enough history or with a degenerate denominator. Ratios and
// returns are decimal fractions (0.05 is +5%).
type Summary struct {
	Close          *float64 `json:"close" yaml:"close"`
	EMA50          *float64 `json:"ema50" yaml:"ema50"`
	EMA200         *float64 `json:"ema200" yaml:"ema200"`
	RSI            *float64 `json:"rsi" yaml:"rsi"`
	Trend          string   `json:"trend" yaml:"trend"`
	RSIBand        string   `json:"rsi_band" yaml:"rsi_band"`
	DistToEMA50    *float64 `json:"dist_to_ema50" yaml:"dist_to_ema50"`
	DistToEMA200   *float64 `json:"dist_to_ema200" yaml:"dist_to_ema200"`
	Return5D       *float64 `json:"return_5d" yaml:"return_5d"`
	Return21D      *float64 `json:"return_21d" yaml:"return_21d"`
	Return63D      *float64 `json:"return_63d" yaml:"return_63d"`
	Return252D     *float64 `json:"return_252d" yaml:"return_252d"`
	ReturnYTD      *float64 `json:"return_ytd" yaml:"return_ytd"`
	Vol21D         *float64 `json:"vol_21d" yaml:"vol_21d"`
	Vol63D         *float64 `json:"vol_63d" yaml:"vol_63d"`
	MaxDrawdown252 *float64 `json:"max_drawdown_252d" yaml:"max_drawdown_252d"`
	High52W        *float64 `json:"52w_high" yaml:"52w_high"`
	Low52W         *float64 `json:"52w_low" yaml:"52w_low"`
	MACD           *float64 `json:"macd" yaml:"macd"`
	MACDSignal     *float64 `json:"macd_signal" yaml:"macd_signal"`
	MACDHist       *float64 `json:"macd_hist" yaml:"macd_hist"`
}

// Summarize computes the indicator snapshot of s. ok is false, and the
// Summary zero, when s is empty, has no close column or no usable close.
func Summarize(s market.Series) (sum Summary, ok bool) {
	if s.Len() == 0 || !s.HasField(market.FieldClose) {
		return Summary{}, false
	}
	s = s.DropMissingCloses()
	closes := s.Closes()
	n := len(closes)
	if n == 0 {
		return Summary{}, false
	}

	last := closes[n-1]
	ema50 := lastOf(EMA(closes, shortSpan(n)))
	ema200 := lastOf(EMA(closes, longSpan(n)))
	rsi := lastOf(RSI(closes, DefaultRSIPeriod))
	macd := MACD(closes, MACDFast, MACDSlow, MACDSignal)
	returns := PctChange(closes)

	sum.Close = num(last)
	sum.EMA50 = num(ema50)
	sum.EMA200 = num(ema200)
	sum.RSI = num(rsi)

	sum.Trend = TrendBearish
	if ema50 > ema200 {
		sum.Trend = TrendBullish
	}
	sum.RSIBand = RSIBand(rsi)

	sum.DistToEMA50 = distance(last, ema50)
	sum.DistToEMA200 = distance(last, ema200)

	sum.Return5D = PctChangeOver(closes, Horizon1W)
	sum.Return21D = PctChangeOver(closes, Horizon1M)
	sum.Return63D = PctChangeOver(closes, Horizon3M)
	sum.Return252D = PctChangeOver(closes, Horizon1Y)
	sum.ReturnYTD = YTDReturn(s)

	sum.Vol21D = RealizedVol(returns, VolWindow1M)
	sum.Vol63D = RealizedVol(returns, VolWindow3M)
	sum.MaxDrawdown252 = MaxDrawdown(closes, TradingDays)
	sum.High52W, sum.Low52W = HighLow(closes, TradingDays)

	if line, sig, hist, has := macd.Last(); has {
		sum.MACD = num(line)
		sum.MACDSignal = num(sig)
		sum.MACDHist = num(hist)
	}
	return sum, true
}

// TechnicalSummary is Summarize as a flat map keyed by SummaryKeys. It
// returns an empty, non-nil map when Summarize reports no summary.
func TechnicalSummary(s market.Series) map[string]any {
	sum, ok := Summarize(s)
	if !ok {
		return map[string]any{}
	}
	return sum.Map()
}

// Map returns the summary keyed by SummaryKeys. Null fields map to an
// untyped nil; numbers are float64 and labels are strings.
func (s Summary) Map() map[string]any {
	m := make(map[string]any, len(SummaryKeys))
	for _, f := range s.fields() {
		if f.num != nil {
			m[f.key] = *f.num
		} else if f.str != "" {
			m[f.key] = f.str
		} else {
			m[f.key] = nil
		}
	}
	return m
}

type field struct {
	key string
	num *float64
	str string
}

// fields pairs every key with its value, in SummaryKeys order.
func (s Summary) fields() []field {
	return []field{
		{key: "close", num: s.Close},
		{key: "ema50", num: s.EMA50},
		{key: "ema200", num: s.EMA200},
		{key: "rsi", num: s.RSI},
		{key: "trend", str: s.Trend},
		{key: "rsi_band", str: s.RSIBand},
		{key: "dist_to_ema50", num: s.DistToEMA50},
		{key: "dist_to_ema200", num: s.DistToEMA200},
		{key: "return_5d", num: s.Return5D},
		{key: "return_21d", num: s.Return21D},
		{key: "return_63d", num: s.Return63D},
		{key: "return_252d", num: s.Return252D},
		{key: "return_ytd", num: s.ReturnYTD},
		{key: "vol_21d", num: s.Vol21D},
		{key: "vol_63d", num: s.Vol63D},
		{key: "max_drawdown_252d", num: s.MaxDrawdown252},
		{key: "52w_high", num: s.High52W},
		{key: "52w_low", num: s.Low52W},
		{key: "macd", num: s.MACD},
		{key: "macd_signal", num: s.MACDSignal},
		{key: "macd_hist", num: s.MACDHist},
	}
}

// shortSpan is 50, or half the history when there are fewer than 50 bars.
func shortSpan(n int) int {
	if n >= EMAShortSpan {
		return EMAShortSpan
	}
	return max(n/2, 1)
}

// longSpan is 200, or 80% of the history when there are fewer than 200 bars.
func longSpan(n int) int {
	if n >= EMALongSpan {
		return EMALongSpan
	}
	return max(int(float64(n)*0.8), 1)
}

func distance(price, ema float64) *float64 {
	if ema == 0 || math.IsNaN(ema) {
		return nil
	}
	return num(price/ema - 1)
}

func lastOf(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return xs[len(xs)-1]
}

// num boxes x, mapping NaN and ±Inf to nil.
func num(x float64) *float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	return &x
}
