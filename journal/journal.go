// Package journal persists fetched price history and computed summaries.
package journal

import (
	"context"
	"errors"
	"time"

	"github.com/rustyeddy/stockbrief/indicators"
	"github.com/rustyeddy/stockbrief/market"
)

// ErrNotFound is returned when a record is absent, or cached prices are
// older than the allowed age.
var ErrNotFound = errors.New("not found")

// SummaryRecord is one computed summary as it was stored.
type SummaryRecord struct {
	ID        string
	Symbol    string
	AsOf      time.Time // date of the last bar summarized
	CreatedAt time.Time
	Source    string // provider name or "csv"
	Bars      int
	Summary   indicators.Summary
}

// Journal records summaries.
type Journal interface {
	RecordSummary(ctx context.Context, rec SummaryRecord) error
	Close() error
}

// PriceCache stores the latest fetched history per symbol.
type PriceCache interface {
	SavePrices(ctx context.Context, s market.Series) error
	LoadPrices(ctx context.Context, symbol string, maxAge time.Duration) (market.Series, error)
}
