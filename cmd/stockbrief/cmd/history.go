package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/stockbrief/journal"
	"github.com/rustyeddy/stockbrief/report"
)

var historyCmd = &cobra.Command{
	Use:   "history [symbol]",
	Short: "List recorded summaries from the journal",
	Long: `List summaries recorded in the SQLite journal, newest first.

Without a symbol every symbol is listed. Output is Org mode, or CSV with
--csv. A single record is shown with --id.

Examples:
  stockbrief history AAPL --limit 5
  stockbrief history --csv > summaries.csv
  stockbrief history --id 01HQ3Z5V9N6K8Q2W4E7R1T0Y3U`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

var (
	historyLimit int
	historyCSV   bool
	historyID    string
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum records (0 = all)")
	historyCmd.Flags().BoolVar(&historyCSV, "csv", false, "write CSV instead of Org mode")
	historyCmd.Flags().StringVar(&historyID, "id", "", "show a single record by ID")
}

func runHistory(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(cfg.Store.DBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	var recs []journal.SummaryRecord
	if historyID != "" {
		rec, err := j.GetSummary(cmd.Context(), historyID)
		if err != nil {
			return fmt.Errorf("get summary: %w", err)
		}
		recs = append(recs, rec)
	} else {
		symbol := ""
		if len(args) == 1 {
			symbol = args[0]
		}
		recs, err = j.ListSummaries(cmd.Context(), symbol, historyLimit)
		if err != nil {
			return fmt.Errorf("query summaries: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if historyCSV {
		w, err := journal.NewCSVWriter(out)
		if err != nil {
			return err
		}
		for _, rec := range recs {
			if err := w.RecordSummary(cmd.Context(), rec); err != nil {
				return err
			}
		}
		return w.Close()
	}

	items := make([]report.Item, len(recs))
	for i, rec := range recs {
		items[i] = report.Item{Symbol: rec.Symbol, AsOf: rec.AsOf, Summary: rec.Summary}
	}
	fmt.Fprintln(out, report.FormatOrgAll(items))
	return nil
}
