package notifier

import (
	"context"

	"github.com/phuslu/log"
)

// LogNotifier writes messages to the log instead of a chat. It is used
// when no Telegram bot is configured.
type LogNotifier struct{}

func (LogNotifier) SendWithRetry(_ context.Context, text string, _ int) error {
	log.Info().Str("channel", "log").Msg(text)
	return nil
}
