package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/stockbrief/config"
	"github.com/rustyeddy/stockbrief/journal"
	"github.com/rustyeddy/stockbrief/logging"
	"github.com/rustyeddy/stockbrief/prices"
	"github.com/rustyeddy/stockbrief/service"
)

var rootCmd = &cobra.Command{
	Use:   "stockbrief",
	Short: "Technical indicator summaries for daily stock prices",
	Long: `Stockbrief fetches daily price history and condenses it into a flat
technical summary: EMAs, RSI, trend, trailing returns, volatility, drawdown,
52-week range and MACD.

It provides tools for:
  - Summarizing a symbol from a price provider or a local CSV
  - Showing the recent price history behind a summary
  - Keeping a SQLite price cache and a journal of past summaries
  - Running a watchlist on a schedule and writing reports`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	cfgFile  string
	dbPath   string
	logLevel string

	cfg    *config.Config
	logger *slog.Logger
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON); defaults are used when empty")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite cache and journal path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
}

// setup loads the configuration and logger for every subcommand.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFromFile(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	} else {
		cfg = config.Default()
	}
	cfg.ApplyEnv(os.Getenv)
	if dbPath != "" {
		cfg.Store.DBPath = dbPath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger = logging.Init(cmd.ErrOrStderr(), "stockbrief", level, cfg.Log.Format)
	return nil
}

// openService builds a Service from cfg. withProvider false skips provider
// construction, for commands that only read local data. The returned func
// closes the store.
func openService(withProvider bool) (*service.Service, func(), error) {
	validate := cfg.ValidateLocal
	if withProvider {
		validate = cfg.Validate
	}
	if err := validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	var p prices.Provider
	if withProvider {
		var err error
		p, err = prices.New(cfg.Prices, logger)
		if err != nil {
			return nil, nil, err
		}
	}

	store, err := journal.NewSQLite(cfg.Store.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}

	svc := service.New(p, store, logger)
	svc.CacheTTL = cfg.Store.CacheTTL.Duration
	svc.HistoryLimit = cfg.Prices.HistoryLimit

	return svc, func() {
		if err := store.Close(); err != nil {
			logger.Warn("close db", "error", err)
		}
	}, nil
}
