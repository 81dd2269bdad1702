package journal

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/rustyeddy/stockbrief/indicators"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVJournalHeader(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	j, err := NewCSVWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	header, err := csv.NewReader(&buf).Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "symbol", "as_of", "source", "bars"}, header[:5])
	assert.Equal(t, indicators.SummaryKeys, header[5:])
}

func TestCSVJournalRecordSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	j, err := NewCSVWriter(&buf)
	require.NoError(t, err)

	err = j.RecordSummary(context.Background(), SummaryRecord{
		ID:      "R1",
		Symbol:  "AAPL",
		AsOf:    time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
		Source:  "csv",
		Bars:    6,
		Summary: testSummary(t),
	})
	require.NoError(t, err)
	require.NoError(t, j.Close())

	r := csv.NewReader(&buf)
	header, err := r.Read()
	require.NoError(t, err)
	row, err := r.Read()
	require.NoError(t, err)

	cells := map[string]string{}
	for i, h := range header {
		cells[h] = row[i]
	}
	assert.Equal(t, "R1", cells["id"])
	assert.Equal(t, "2024-01-07", cells["as_of"])
	assert.Equal(t, "6", cells["bars"])
	assert.Equal(t, "110.000000", cells["close"])
	assert.Equal(t, "0.100000", cells["return_5d"])
	assert.Equal(t, "", cells["return_252d"])
	assert.Contains(t, []string{"bullish", "bearish"}, cells["trend"])
}
