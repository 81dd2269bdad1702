package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/stockbrief/market"
	"github.com/rustyeddy/stockbrief/pkg/id"
)

// SQLite is the on-disk price cache and summary journal.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

var (
	_ Journal    = (*SQLite)(nil)
	_ PriceCache = (*SQLite)(nil)
)

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db, now: time.Now}, nil
}

// RecordSummary stores rec. An empty ID is filled with a new ULID and a zero
// CreatedAt with the current time.
func (j *SQLite) RecordSummary(ctx context.Context, rec SummaryRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = j.now()
	}
	if rec.ID == "" {
		rec.ID = id.NewAt(rec.CreatedAt)
	}
	payload, err := json.Marshal(rec.Summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	_, err = j.db.ExecContext(ctx, `
		INSERT INTO summaries
		(id, symbol, as_of, created_at, source, bars, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, key(rec.Symbol), rec.AsOf.Format(time.RFC3339),
		rec.CreatedAt.UnixMilli(), rec.Source, rec.Bars, string(payload),
	)
	return err
}

// SavePrices replaces the cached history of s.Symbol and stamps the fetch
// time.
func (j *SQLite) SavePrices(ctx context.Context, s market.Series) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	sym := key(s.Symbol)
	if _, err := tx.ExecContext(ctx, `DELETE FROM prices WHERE symbol = ?`, sym); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO prices
		(symbol, date, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, b := range s.Bars {
		if _, err := stmt.ExecContext(ctx,
			sym, b.Date.Format(time.RFC3339),
			nullable(b.Open), nullable(b.High), nullable(b.Low), nullable(b.Close), nullable(b.Volume),
		); err != nil {
			return fmt.Errorf("insert %s %s: %w", sym, b.Date.Format(time.DateOnly), err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO price_fetches (symbol, fields, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET fields = excluded.fields, fetched_at = excluded.fetched_at`,
		sym, strings.Join(s.Fields, ","), j.now().Unix(),
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

// key normalizes a ticker for storage.
func key(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// nullable maps NaN to SQL NULL.
func nullable(x float64) any {
	if math.IsNaN(x) {
		return nil
	}
	return x
}

func fromNull(n sql.NullFloat64) float64 {
	if !n.Valid {
		return math.NaN()
	}
	return n.Float64
}
