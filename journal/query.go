package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rustyeddy/stockbrief/market"
)

// LoadPrices returns the cached history for symbol. It returns ErrNotFound
// when nothing is cached or the cache is older than maxAge; maxAge <= 0
// accepts any age.
func (j *SQLite) LoadPrices(ctx context.Context, symbol string, maxAge time.Duration) (market.Series, error) {
	sym := key(symbol)

	var (
		fields    string
		fetchedAt int64
	)
	err := j.db.QueryRowContext(ctx, `
		SELECT fields, fetched_at FROM price_fetches WHERE symbol = ?`, sym,
	).Scan(&fields, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return market.Series{}, fmt.Errorf("prices for %q: %w", sym, ErrNotFound)
	}
	if err != nil {
		return market.Series{}, err
	}
	if maxAge > 0 && j.now().Sub(time.Unix(fetchedAt, 0)) > maxAge {
		return market.Series{}, fmt.Errorf("prices for %q are stale: %w", sym, ErrNotFound)
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT date, open, high, low, close, volume
		FROM prices
		WHERE symbol = ?
		ORDER BY date ASC`, sym)
	if err != nil {
		return market.Series{}, err
	}
	defer rows.Close()

	s := market.Series{Symbol: symbol}
	if fields != "" {
		s.Fields = strings.Split(fields, ",")
	}
	for rows.Next() {
		var (
			date          string
			o, h, l, c, v sql.NullFloat64
		)
		if err := rows.Scan(&date, &o, &h, &l, &c, &v); err != nil {
			return market.Series{}, err
		}
		d, err := time.Parse(time.RFC3339, date)
		if err != nil {
			return market.Series{}, fmt.Errorf("bad cached date %q: %w", date, err)
		}
		s.Bars = append(s.Bars, market.Bar{
			Date:   d,
			Open:   fromNull(o),
			High:   fromNull(h),
			Low:    fromNull(l),
			Close:  fromNull(c),
			Volume: fromNull(v),
		})
	}
	if err := rows.Err(); err != nil {
		return market.Series{}, err
	}
	// dates are stored as text; order by instant, not by string
	sort.SliceStable(s.Bars, func(a, b int) bool {
		return s.Bars[a].Date.Before(s.Bars[b].Date)
	})
	return s, nil
}

// GetSummary returns a single summary record by ID.
func (j *SQLite) GetSummary(ctx context.Context, summaryID string) (SummaryRecord, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT id, symbol, as_of, created_at, source, bars, payload
		FROM summaries
		WHERE id = ?`, summaryID)

	rec, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SummaryRecord{}, fmt.Errorf("summary %q: %w", summaryID, ErrNotFound)
	}
	return rec, err
}

// ListSummaries returns up to limit summaries for symbol, newest first.
// An empty symbol lists every symbol; limit <= 0 means no limit.
func (j *SQLite) ListSummaries(ctx context.Context, symbol string, limit int) ([]SummaryRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, symbol, as_of, created_at, source, bars, payload
		FROM summaries
		WHERE ? = '' OR symbol = ?
		ORDER BY id DESC
		LIMIT ?`, key(symbol), key(symbol), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SummaryRecord
	for rows.Next() {
		rec, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(sc scanner) (SummaryRecord, error) {
	var (
		rec       SummaryRecord
		asOf      string
		createdAt int64
		payload   string
	)
	if err := sc.Scan(&rec.ID, &rec.Symbol, &asOf, &createdAt, &rec.Source, &rec.Bars, &payload); err != nil {
		return SummaryRecord{}, err
	}
	t, err := time.Parse(time.RFC3339, asOf)
	if err != nil {
		return SummaryRecord{}, fmt.Errorf("bad as_of %q: %w", asOf, err)
	}
	rec.AsOf = t
	rec.CreatedAt = time.UnixMilli(createdAt).UTC()
	if err := json.Unmarshal([]byte(payload), &rec.Summary); err != nil {
		return SummaryRecord{}, fmt.Errorf("decode summary %s: %w", rec.ID, err)
	}
	return rec, nil
}
