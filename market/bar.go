// Package market holds daily price bars and the series built from them.
package market

import (
	"math"
	"time"
)

// Field names a column a Series may carry.
const (
	FieldOpen   = "open"
	FieldHigh   = "high"
	FieldLow    = "low"
	FieldClose  = "close"
	FieldVolume = "volume"
)

// AllFields is the full OHLCV column set in canonical order.
var AllFields = []string{FieldOpen, FieldHigh, FieldLow, FieldClose, FieldVolume}

// Bar is one daily OHLCV observation. A missing value is NaN.
type Bar struct {
	Date   time.Time `json:"date" yaml:"date"`
	Open   float64   `json:"open" yaml:"open"`
	High   float64   `json:"high" yaml:"high"`
	Low    float64   `json:"low" yaml:"low"`
	Close  float64   `json:"close" yaml:"close"`
	Volume float64   `json:"volume" yaml:"volume"`
}

// HasClose reports whether the bar carries a usable close.
func (b Bar) HasClose() bool {
	return !math.IsNaN(b.Close)
}

// NaNBar returns a bar dated d with every value missing.
func NaNBar(d time.Time) Bar {
	nan := math.NaN()
	return Bar{Date: d, Open: nan, High: nan, Low: nan, Close: nan, Volume: nan}
}
