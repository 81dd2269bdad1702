package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/rustyeddy/stockbrief/market"
)

// AlphaVantage reads the TIME_SERIES_DAILY endpoint.
type AlphaVantage struct {
	baseURL    string
	apiKey     string
	outputSize string
	httpClient *http.Client
	logger     *slog.Logger
}

// dailyResponse is the subset of the TIME_SERIES_DAILY payload we use.
// Bar keys look like "1. open", "4. close".
type dailyResponse struct {
	Series      map[string]map[string]string `json:"Time Series (Daily)"`
	Note        string                       `json:"Note"`
	Information string                       `json:"Information"`
	Error       string                       `json:"Error Message"`
}

func (a *AlphaVantage) Name() string { return "alphavantage" }

func (a *AlphaVantage) History(ctx context.Context, symbol string) (market.Series, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return market.Series{}, fmt.Errorf("symbol is required")
	}

	params := url.Values{}
	params.Set("function", "TIME_SERIES_DAILY")
	params.Set("symbol", symbol)
	params.Set("outputsize", a.outputSize)
	params.Set("apikey", a.apiKey)
	apiURL := fmt.Sprintf("%s/query?%s", strings.TrimRight(a.baseURL, "/"), params.Encode())

	a.logger.Info("fetching alphavantage history", "symbol", symbol)
	body, err := get(ctx, a.httpClient, apiURL)
	if err != nil {
		return market.Series{}, fmt.Errorf("alphavantage %s: %w", symbol, err)
	}

	var resp dailyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return market.Series{}, fmt.Errorf("alphavantage %s: decode response: %w", symbol, err)
	}
	if len(resp.Series) == 0 {
		a.logger.Warn("no time series in response", "symbol", symbol,
			"note", firstNonEmpty(resp.Note, resp.Information, resp.Error))
		return market.Series{}, fmt.Errorf("alphavantage %s: %w", symbol, ErrNoData)
	}

	fields := map[string]bool{}
	bars := make([]market.Bar, 0, len(resp.Series))
	for day, raw := range resp.Series {
		d, err := market.ParseDate(day)
		if err != nil {
			return market.Series{}, fmt.Errorf("alphavantage %s: parse date %q: %w", symbol, day, err)
		}
		b := market.NaNBar(d)
		for k, v := range raw {
			name := normalizeKey(k)
			x := parseNum(v)
			switch name {
			case market.FieldOpen:
				b.Open = x
			case market.FieldHigh:
				b.High = x
			case market.FieldLow:
				b.Low = x
			case market.FieldClose:
				b.Close = x
			case market.FieldVolume:
				b.Volume = x
			default:
				continue
			}
			fields[name] = true
		}
		bars = append(bars, b)
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	series := market.Series{Symbol: symbol, Bars: bars}
	for _, f := range market.AllFields {
		if fields[f] {
			series.Fields = append(series.Fields, f)
		}
	}
	return series, nil
}

// normalizeKey turns "4. close" into "close".
func normalizeKey(k string) string {
	if _, after, ok := strings.Cut(k, ". "); ok {
		k = after
	}
	return strings.ToLower(strings.TrimSpace(k))
}

func parseNum(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}
