// Package service ties providers, the SQLite cache and the indicator core
// together for the CLI and the scheduled watcher.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rustyeddy/stockbrief/indicators"
	"github.com/rustyeddy/stockbrief/journal"
	"github.com/rustyeddy/stockbrief/logging"
	"github.com/rustyeddy/stockbrief/market"
	"github.com/rustyeddy/stockbrief/prices"
)

// ErrNoSummary means the history had no usable close prices.
var ErrNoSummary = errors.New("no usable close prices")

// SourceCache and SourceCSV name where a summarized series came from when it
// was not a live provider fetch.
const (
	SourceCache = "cache"
	SourceCSV   = "csv"
)

// Store is the price cache plus summary journal. journal.SQLite satisfies it.
type Store interface {
	journal.Journal
	journal.PriceCache
}

// Service computes technical summaries for symbols. Store may be nil, in
// which case every call fetches and nothing is recorded.
type Service struct {
	Provider     prices.Provider
	Store        Store
	Logger       *slog.Logger
	CacheTTL     time.Duration
	HistoryLimit int

	now func() time.Time
}

// New returns a Service with the clock set.
func New(p prices.Provider, store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		Provider: p,
		Store:    store,
		Logger:   logger,
		now:      time.Now,
	}
}

// Result is one symbol's computed summary.
type Result struct {
	Symbol  string
	AsOf    time.Time
	Source  string
	Bars    int
	Summary indicators.Summary
	Err     error
}

// Technicals loads history for symbol (cache first) and summarizes it. The
// summary is recorded in the journal when a store is configured.
func (s *Service) Technicals(ctx context.Context, symbol string) (Result, error) {
	series, source, err := s.History(ctx, symbol)
	if err != nil {
		return Result{Symbol: symbol, Err: err}, err
	}
	return s.Summarize(ctx, series, source)
}

// Summarize computes and records the summary of an already loaded series.
func (s *Service) Summarize(ctx context.Context, series market.Series, source string) (Result, error) {
	res := Result{Symbol: series.Symbol, Source: source}

	sum, ok := indicators.Summarize(series)
	if !ok {
		res.Err = fmt.Errorf("%s: %w", series.Symbol, ErrNoSummary)
		return res, res.Err
	}
	clean := series.DropMissingCloses()
	last, _ := clean.Last()
	res.AsOf = last.Date
	res.Bars = clean.Len()
	res.Summary = sum

	if s.Store != nil {
		rec := journal.SummaryRecord{
			Symbol:    series.Symbol,
			AsOf:      res.AsOf,
			CreatedAt: s.clock(),
			Source:    source,
			Bars:      res.Bars,
			Summary:   sum,
		}
		if err := s.Store.RecordSummary(ctx, rec); err != nil {
			s.log(ctx).Warn("record summary failed", "symbol", series.Symbol, "error", err)
		}
	}
	return res, nil
}

// History returns the daily history for symbol and where it came from:
// SourceCache on a fresh cache hit, otherwise the provider name.
func (s *Service) History(ctx context.Context, symbol string) (market.Series, string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return market.Series{}, "", errors.New("empty symbol")
	}
	logger := s.log(ctx).With("symbol", symbol)

	if s.Store != nil {
		cached, err := s.Store.LoadPrices(ctx, symbol, s.CacheTTL)
		switch {
		case err == nil:
			logger.Debug("price cache hit", "bars", cached.Len())
			return cached, SourceCache, nil
		case errors.Is(err, journal.ErrNotFound):
			logger.Debug("price cache miss")
		default:
			logger.Warn("price cache read failed", "error", err)
		}
	}

	if s.Provider == nil {
		return market.Series{}, "", fmt.Errorf("%s: no price provider configured", symbol)
	}

	start := s.clock()
	logger.Info("fetching prices", "provider", s.Provider.Name())
	series, err := s.Provider.History(ctx, symbol)
	if err != nil {
		return market.Series{}, "", fmt.Errorf("fetch %s from %s: %w", symbol, s.Provider.Name(), err)
	}
	series.Symbol = symbol
	if err := series.DropMissingCloses().Validate(); err != nil {
		logger.Warn("fetched prices look malformed", "error", err)
	}
	logger.Info("fetched prices", "provider", s.Provider.Name(), "bars", series.Len(), "elapsed", s.clock().Sub(start))

	if s.Store != nil {
		if err := s.Store.SavePrices(ctx, series); err != nil {
			logger.Warn("price cache write failed", "error", err)
		}
	}
	return series, s.Provider.Name(), nil
}

// PriceTail returns the most recent n bars of symbol's history. n <= 0 uses
// HistoryLimit, and no limit when that is unset too.
func (s *Service) PriceTail(ctx context.Context, symbol string, n int) (market.Series, error) {
	series, _, err := s.History(ctx, symbol)
	if err != nil {
		return market.Series{}, err
	}
	if n <= 0 {
		n = s.HistoryLimit
	}
	if n <= 0 {
		return series, nil
	}
	return series.Tail(n), nil
}

// Batch summarizes symbols with at most workers in flight. Results are in
// input order; a failed symbol carries its error in Result.Err and does not
// stop the others.
func (s *Service) Batch(ctx context.Context, symbols []string, workers int) []Result {
	results := make([]Result, len(symbols))
	if len(symbols) == 0 {
		return results
	}
	workers = max(1, min(workers, len(symbols)))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					results[i] = Result{Symbol: symbols[i], Err: err}
					continue
				}
				res, err := s.Technicals(ctx, symbols[i])
				if err != nil {
					s.log(ctx).Error("technicals failed", "symbol", symbols[i], "error", err)
				}
				results[i] = res
			}
		}()
	}
	for i := range symbols {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

func (s *Service) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

func (s *Service) log(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, s.Logger)
}
