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

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Answer /analyze and /search commands over Telegram",
	Long: `Run the Telegram bot. When schedule.tickers is configured, digests are
also sent on schedule.cron.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateTelegram(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		sched := scheduler.NewScheduler(ctx, newOrchestrator(cfg), nil, tn, cfg.Schedule.Tickers)
		if idx := newSearchIndex(cfg); idx != nil {
			sched.Searcher = idx
		}

		if len(cfg.Schedule.Tickers) > 0 {
			if err := sched.Register(cfg.Schedule.Cron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()
		}

		go tn.StartPolling(ctx, sched.HandleCommand)

		log.Info().Msg("TickerScope bot is running. Press Ctrl+C to stop.")
		<-ctx.Done()
		log.Info().Msg("shutdown signal received, stopping...")
		return nil
	},
}
