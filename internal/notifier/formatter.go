package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"TickerScope/internal/model"
	"TickerScope/internal/report"
)

// DigestEntry is the outcome of one scheduled analysis.
type DigestEntry struct {
	Ticker string
	Report *model.AnalysisReport
	Err    error
}

// FormatDigest formats the scheduled runs into one Telegram message.
func FormatDigest(at time.Time, entries []DigestEntry) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("<b>TickerScope digest</b> | %s\n", at.Format("2006-01-02 15:04")))
	failed := 0
	for _, e := range entries {
		if e.Err != nil {
			failed++
		}
	}
	b.WriteString(fmt.Sprintf("%d tickers, %d failed\n", len(entries), failed))

	for _, e := range entries {
		b.WriteString("\n")
		if e.Err != nil {
			b.WriteString(fmt.Sprintf("<b>%s</b>: %s\n", html.EscapeString(e.Ticker), html.EscapeString(report.FormatError(e.Err))))
			continue
		}
		b.WriteString(report.AssembleHTML(e.Report))
	}
	return b.String()
}

// FormatHelp lists the chat commands.
func FormatHelp(defaultDays int) string {
	var b strings.Builder
	b.WriteString("<b>Available commands:</b>\n")
	b.WriteString(fmt.Sprintf("• /analyze TICKER [DAYS] (default %d days)\n", defaultDays))
	b.WriteString("• /search QUERY\n")
	b.WriteString("• /help")
	return b.String()
}
