// Package prices fetches daily price history from third-party providers.
//
// Each provider is constructed from an explicit config.PricesConfig; there is
// no package-level client or key.
package prices

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rustyeddy/stockbrief/config"
	"github.com/rustyeddy/stockbrief/market"
)

var (
	// ErrNoData means the provider answered but had no bars for the symbol.
	ErrNoData = errors.New("no price data")

	// ErrUnknownProvider means the configured provider name is not supported.
	ErrUnknownProvider = errors.New("unknown price provider")

	// ErrMissingAPIKey means the provider needs a key and none was configured.
	ErrMissingAPIKey = errors.New("missing API key")
)

// Provider returns the full daily history it has for a symbol, oldest first.
type Provider interface {
	Name() string
	History(ctx context.Context, symbol string) (market.Series, error)
}

// New builds the provider named by cfg.Provider.
func New(cfg config.PricesConfig, logger *slog.Logger) (Provider, error) {
	if logger == nil {
		logger = slog.Default()
	}
	client := &http.Client{Timeout: cfg.Timeout.Duration}

	switch name := cfg.NormalizedProvider(); name {
	case config.ProviderStooq:
		return &Stooq{baseURL: cfg.StooqURL, httpClient: client, logger: logger}, nil
	case config.ProviderAlphaVantage:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%s: %w", name, ErrMissingAPIKey)
		}
		return &AlphaVantage{
			baseURL:    cfg.AlphaURL,
			apiKey:     cfg.APIKey,
			outputSize: cfg.OutputSize,
			httpClient: client,
			logger:     logger,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

// get performs a GET and returns the body of a 2xx response.
func get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
