package journal

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/rustyeddy/stockbrief/indicators"
	"github.com/rustyeddy/stockbrief/pkg/id"
)

// CSVJournal writes one row per summary: id, symbol, as_of, source, bars,
// then every summary key. Null fields are empty cells.
type CSVJournal struct {
	w *csv.Writer
}

var _ Journal = (*CSVJournal)(nil)

// NewCSVWriter writes the header row to w. Close flushes but leaves w open.
func NewCSVWriter(w io.Writer) (*CSVJournal, error) {
	cw := csv.NewWriter(w)
	header := append([]string{"id", "symbol", "as_of", "source", "bars"}, indicators.SummaryKeys...)
	if err := cw.Write(header); err != nil {
		return nil, err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	return &CSVJournal{w: cw}, nil
}

func (j *CSVJournal) RecordSummary(_ context.Context, rec SummaryRecord) error {
	if rec.ID == "" {
		rec.ID = id.New()
	}
	row := []string{
		rec.ID,
		rec.Symbol,
		rec.AsOf.Format(time.DateOnly),
		rec.Source,
		strconv.Itoa(rec.Bars),
	}
	m := rec.Summary.Map()
	for _, k := range indicators.SummaryKeys {
		row = append(row, cellOf(m[k]))
	}
	if err := j.w.Write(row); err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

func (j *CSVJournal) Close() error {
	j.w.Flush()
	return j.w.Error()
}

func cellOf(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', 6, 64)
	case string:
		return x
	default:
		return ""
	}
}
