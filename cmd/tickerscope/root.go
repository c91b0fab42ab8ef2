package main

import (
	"os"

	"TickerScope/internal/config"
	"TickerScope/internal/logging"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "tickerscope",
	Short: "Stock ticker volume, volatility and headline sentiment analysis",
	Long: `TickerScope analyzes one stock ticker over a lookback window: whether
today's trading volume is anomalous, whether the price is trending up, how
volatile it has been, and the sentiment of recent finviz headlines.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded
		logging.Setup(cfg.Logging)
		log.Debug().Str("config", cfgPath).Msg("config loaded")
		return nil
	},
}

func init() {
	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", defaultPath, "config file path")

	rootCmd.AddCommand(analyzeCmd, searchCmd, watchCmd, botCmd)
}
