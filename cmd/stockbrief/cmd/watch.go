package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/stockbrief/service"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Summarize a watchlist on a schedule",
	Long: `Summarize the configured watchlist on the watch.schedule cron spec
(seconds field first) and write one report per symbol into watch.output_dir.

Runs until interrupted. With --once the watchlist is run a single time.

Examples:
  stockbrief watch --config stockbrief.yaml
  stockbrief watch --symbols AAPL,MSFT --once`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

var (
	watchSymbols string
	watchOnce    bool
	watchOut     string
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchSymbols, "symbols", "s", "", "comma separated symbols (overrides watch.symbols)")
	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "run the watchlist once and exit")
	watchCmd.Flags().StringVarP(&watchOut, "output", "o", "", "report directory (overrides watch.output_dir)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	wc := cfg.Watch
	if watchSymbols != "" {
		wc.Symbols = splitSymbols(watchSymbols)
	}
	if watchOut != "" {
		wc.OutputDir = watchOut
	}
	if len(wc.Symbols) == 0 {
		return errors.New("no symbols to watch (set watch.symbols or --symbols)")
	}

	svc, done, err := openService(true)
	if err != nil {
		return err
	}
	defer done()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := service.NewWatcher(ctx, svc, wc)
	if watchOnce {
		return runWatchOnce(ctx, cmd, w)
	}

	if err := w.Register(); err != nil {
		return err
	}
	w.Start()
	<-ctx.Done()
	w.Stop()
	return nil
}

func runWatchOnce(ctx context.Context, cmd *cobra.Command, w *service.Watcher) error {
	files, err := w.RunOnce(ctx)
	for _, f := range files {
		fmt.Fprintln(cmd.OutOrStdout(), f)
	}
	return err
}

func splitSymbols(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.ToUpper(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
