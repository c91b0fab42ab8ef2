package main

import (
	"fmt"
	"os"

	"TickerScope/internal/report"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, report.FormatError(err))
		os.Exit(1)
	}
}
