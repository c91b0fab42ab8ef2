package main

import (
	"fmt"

	"TickerScope/internal/report"

	"github.com/spf13/cobra"
)

var (
	analyzeDays   int
	analyzeSeries bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze TICKER",
	Short: "Analyze a ticker's volume, trend, volatility and headline sentiment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if analyzeDays < 0 || analyzeDays == 1 {
			return fmt.Errorf("--days must be at least 2")
		}
		orch := newOrchestrator(cfg)
		r, err := orch.RunAnalysis(cmd.Context(), args[0], analyzeDays)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprint(out, report.Assemble(r))
		if analyzeSeries {
			fmt.Fprintln(out)
			fmt.Fprint(out, report.FormatSeriesTable(r.Series))
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().IntVarP(&analyzeDays, "days", "d", 0, "lookback window in days (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeSeries, "series", false, "also print the daily mean price per trading day")
}
