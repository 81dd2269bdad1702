package prices

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/rustyeddy/stockbrief/market"
)

// Stooq serves free end-of-day US equity history as CSV.
type Stooq struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func (s *Stooq) Name() string { return "stooq" }

// History downloads the daily CSV for symbol. A blank body or an HTML error
// page is ErrNoData.
func (s *Stooq) History(ctx context.Context, symbol string) (market.Series, error) {
	sym, err := StooqSymbol(symbol)
	if err != nil {
		return market.Series{}, err
	}

	params := url.Values{}
	params.Set("s", sym)
	params.Set("i", "d")
	apiURL := fmt.Sprintf("%s/q/d/l/?%s", strings.TrimRight(s.baseURL, "/"), params.Encode())

	s.logger.Info("fetching stooq history", "symbol", symbol)
	body, err := get(ctx, s.httpClient, apiURL)
	if err != nil {
		return market.Series{}, fmt.Errorf("stooq %s: %w", symbol, err)
	}

	text := bytes.TrimSpace(body)
	if len(text) == 0 || looksLikeHTML(text) {
		return market.Series{}, fmt.Errorf("stooq %s: %w", symbol, ErrNoData)
	}

	series, err := market.ReadCSV(bytes.NewReader(text), symbol)
	if errors.Is(err, market.ErrNoDateColumn) {
		// unknown symbols come back as a bare "No data" line
		return market.Series{}, fmt.Errorf("stooq %s: %w", symbol, ErrNoData)
	}
	if err != nil {
		return market.Series{}, fmt.Errorf("stooq %s: %w", symbol, err)
	}
	if series.Len() == 0 {
		return market.Series{}, fmt.Errorf("stooq %s: %w", symbol, ErrNoData)
	}
	return series, nil
}

// StooqSymbol lower-cases symbol and adds the ".us" market suffix.
func StooqSymbol(symbol string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(symbol))
	if s == "" {
		return "", fmt.Errorf("symbol is required")
	}
	if strings.HasSuffix(s, ".us") {
		return s, nil
	}
	return s + ".us", nil
}

func looksLikeHTML(b []byte) bool {
	head := strings.ToLower(string(b[:min(len(b), 20)]))
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}
