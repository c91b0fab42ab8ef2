package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"TickerScope/internal/notifier"
	"TickerScope/internal/scheduler"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"
)

var (
	watchCron string
	watchNow  bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [TICKER...]",
	Short: "Send scheduled analysis digests for a list of tickers",
	RunE: func(cmd *cobra.Command, args []string) error {
		tickers := cfg.Schedule.Tickers
		if len(args) > 0 {
			tickers = args
		}
		spec := cfg.Schedule.Cron
		if watchCron != "" {
			spec = watchCron
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sched := scheduler.NewScheduler(ctx, newOrchestrator(cfg), nil, newSender(), tickers)
		if err := sched.Register(spec); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		if watchNow {
			go sched.RunDigestNow()
		}

		log.Info().Str("cron", spec).Msg("TickerScope watch is running. Press Ctrl+C to stop.")
		<-ctx.Done()
		log.Info().Msg("shutdown signal received, stopping...")
		return nil
	},
}

// newSender delivers via Telegram when configured and to the log otherwise.
func newSender() scheduler.Sender {
	if cfg.TelegramEnabled() {
		return notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	}
	log.Warn().Msg("telegram not configured, digests will be logged")
	return notifier.LogNotifier{}
}

func init() {
	watchCmd.Flags().StringVar(&watchCron, "cron", "", "cron spec with seconds field (default from config)")
	watchCmd.Flags().BoolVar(&watchNow, "now", false, "also run a digest immediately")
}
