package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/stockbrief/market"
)

var pricesCmd = &cobra.Command{
	Use:   "prices <symbol>",
	Short: "Print recent daily prices as CSV",
	Long: `Print the most recent daily bars of a symbol as CSV.

With --tail 0 the configured prices.history_limit is used.

Example:
  stockbrief prices AAPL --tail 20`,
	Args: cobra.ExactArgs(1),
	RunE: runPrices,
}

var pricesTail int

func init() {
	rootCmd.AddCommand(pricesCmd)

	pricesCmd.Flags().IntVarP(&pricesTail, "tail", "n", 0, "number of most recent bars (0 = history_limit)")
}

func runPrices(cmd *cobra.Command, args []string) error {
	svc, done, err := openService(true)
	if err != nil {
		return err
	}
	defer done()

	s, err := svc.PriceTail(cmd.Context(), strings.ToUpper(args[0]), pricesTail)
	if err != nil {
		return err
	}
	return market.WriteCSV(cmd.OutOrStdout(), s)
}
