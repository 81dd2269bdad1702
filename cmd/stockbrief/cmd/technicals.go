package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/stockbrief/market"
	"github.com/rustyeddy/stockbrief/report"
	"github.com/rustyeddy/stockbrief/service"
)

var technicalsCmd = &cobra.Command{
	Use:     "technicals <symbol>",
	Aliases: []string{"tech"},
	Short:   "Print the technical summary of a symbol",
	Long: `Compute the technical summary of a symbol from its daily close history.

History comes from the price cache when it is fresh, otherwise from the
configured provider. With --csv a local file is summarized instead and no
request is made; the file must not repeat a date or carry a non-positive
close. Every summary is recorded in the journal.

Fields without enough history are null (n/a in md and org output).

Examples:
  stockbrief technicals AAPL
  stockbrief technicals MSFT --format md
  stockbrief technicals XYZ --csv ./xyz.csv --format org`,
	Args: cobra.ExactArgs(1),
	RunE: runTechnicals,
}

var (
	techCSV    string
	techFormat string
)

func init() {
	rootCmd.AddCommand(technicalsCmd)

	technicalsCmd.Flags().StringVar(&techCSV, "csv", "", "summarize this CSV file (date plus open/high/low/close/volume columns)")
	technicalsCmd.Flags().StringVarP(&techFormat, "format", "f", report.FormatNameJSON, "output format: "+strings.Join(report.Formats, ", "))
}

func runTechnicals(cmd *cobra.Command, args []string) error {
	symbol := strings.ToUpper(args[0])

	svc, done, err := openService(techCSV == "")
	if err != nil {
		return err
	}
	defer done()

	var res service.Result
	if techCSV != "" {
		s, err := market.LoadCSV(techCSV, symbol)
		if err != nil {
			return fmt.Errorf("load csv: %w", err)
		}
		// missing closes are allowed; duplicate dates and bad prices are not
		if err := s.DropMissingCloses().Validate(); err != nil {
			return fmt.Errorf("%s: %w", techCSV, err)
		}
		res, err = svc.Summarize(cmd.Context(), s, service.SourceCSV)
		if err != nil {
			return err
		}
	} else {
		res, err = svc.Technicals(cmd.Context(), symbol)
		if err != nil {
			return err
		}
	}

	out, err := report.Format(techFormat, res.Symbol, res.AsOf, res.Summary)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
