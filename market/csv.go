package market

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrNoDateColumn means a CSV header did not name a date column.
var ErrNoDateColumn = errors.New("csv header has no date column")

// ReadCSV parses daily bars with a header row naming the columns:
//
//	date,open,high,low,close,volume
//
// Column names are matched case-insensitively and may come in any order;
// unknown columns are ignored and missing ones are left out of Fields.
// A date column is required. Rows whose date does not parse are skipped,
// numeric cells that do not parse or are not finite become NaN. The result is sorted by date.
func ReadCSV(r io.Reader, symbol string) (Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return Series{Symbol: symbol}, nil
	}
	if err != nil {
		return Series{}, fmt.Errorf("read header: %w", err)
	}

	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	dateIdx, ok := cols["date"]
	if !ok {
		return Series{}, fmt.Errorf("%w: %v", ErrNoDateColumn, header)
	}

	s := Series{Symbol: symbol}
	for _, f := range AllFields {
		if _, ok := cols[f]; ok {
			s.Fields = append(s.Fields, f)
		}
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Series{}, fmt.Errorf("read row: %w", err)
		}
		if dateIdx >= len(row) {
			continue
		}
		d, err := ParseDate(row[dateIdx])
		if err != nil {
			continue
		}
		b := NaNBar(d)
		b.Open = cell(row, cols, FieldOpen)
		b.High = cell(row, cols, FieldHigh)
		b.Low = cell(row, cols, FieldLow)
		b.Close = cell(row, cols, FieldClose)
		b.Volume = cell(row, cols, FieldVolume)
		s.Bars = append(s.Bars, b)
	}

	sort.SliceStable(s.Bars, func(i, j int) bool {
		return s.Bars[i].Date.Before(s.Bars[j].Date)
	})
	return s, nil
}

// LoadCSV opens path and reads it with ReadCSV.
func LoadCSV(path, symbol string) (Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return Series{}, err
	}
	defer f.Close()

	s, err := ReadCSV(f, symbol)
	if err != nil {
		return Series{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// WriteCSV writes the series in the canonical column order ReadCSV accepts.
func WriteCSV(w io.Writer, s Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"date"}, AllFields...)); err != nil {
		return err
	}
	for _, b := range s.Bars {
		if err := cw.Write([]string{
			b.Date.Format(time.DateOnly),
			ff(b.Open),
			ff(b.High),
			ff(b.Low),
			ff(b.Close),
			ff(b.Volume),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseDate accepts a plain calendar date or an RFC3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func cell(row []string, cols map[string]int, name string) float64 {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

func ff(x float64) string {
	if math.IsNaN(x) {
		return ""
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}
