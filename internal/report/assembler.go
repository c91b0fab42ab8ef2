package report

import (
	"fmt"
	"html"
	"strings"

	"TickerScope/internal/model"
)

const divider = "--------------------------------------------------------------\n"

type style struct {
	bold   func(string) string
	escape func(string) string
}

var (
	plain = style{
		bold:   func(s string) string { return s },
		escape: func(s string) string { return s },
	}
	telegramHTML = style{
		bold:   func(s string) string { return "<b>" + s + "</b>" },
		escape: html.EscapeString,
	}
)

// Assemble renders the report as plain text.
func Assemble(r *model.AnalysisReport) string {
	return assemble(r, plain)
}

// AssembleHTML renders the report for Telegram's HTML parse mode.
func AssembleHTML(r *model.AnalysisReport) string {
	return assemble(r, telegramHTML)
}

func assemble(r *model.AnalysisReport, st style) string {
	var b strings.Builder
	ticker := st.escape(r.Ticker)

	b.WriteString(st.bold(fmt.Sprintf("TickerScope report: %s", ticker)))
	b.WriteString(fmt.Sprintf(" | %s to %s\n\n", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02")))

	b.WriteString(fmt.Sprintf("The current price the stock is trading at is: %.2f\n", r.CurrentPrice))
	b.WriteString(divider)

	if r.Volume.Significant {
		b.WriteString(fmt.Sprintf("The volume of trades today is significantly different from the mean volume of trades from the past %d days.\n", r.WindowDays))
	} else {
		b.WriteString(fmt.Sprintf("The volume of trades today is not significantly different from the mean volume of trades from the past %d days.\n", r.WindowDays))
	}
	b.WriteString(fmt.Sprintf("  t = %.4f, p = %.4f (alpha %.2f, n = %d)\n", r.Volume.TStatistic, r.Volume.PValue, r.Volume.Alpha, r.Volume.SampleSize))
	b.WriteString(divider)

	b.WriteString(fmt.Sprintf("Currently the stock is %s in value in the past %d days.\n", r.Trend, r.WindowDays))
	b.WriteString(fmt.Sprintf("The volatility of %s over the past %d days is: %.4f\n", ticker, r.WindowDays, r.Volatility.Volatility))
	b.WriteString(divider)

	b.WriteString(fmt.Sprintf("The average compound sentiment score for the most recent headlines found on finviz is: %.4f which is fairly %s.\n",
		r.Sentiment.Average, r.Sentiment.Classification.Label()))
	b.WriteString(divider)

	b.WriteString("Here's some of the most recent headlines:\n")
	for i, h := range r.RecentHeadlines {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, st.escape(h)))
	}

	return b.String()
}

// FormatSeriesTable lists the daily mean price per trading day.
func FormatSeriesTable(points []model.SeriesPoint) string {
	var b strings.Builder
	b.WriteString("Mean value of the stock per day (excluding weekends)\n")
	for _, p := range points {
		b.WriteString(fmt.Sprintf("  %s  %12.4f\n", p.Date.Format("2006-01-02"), p.DailyMean))
	}
	return b.String()
}

// FormatSuggestions renders suggestions one "SYMBOL - Name" label per line.
func FormatSuggestions(suggestions []model.TickerSuggestion) string {
	if len(suggestions) == 0 {
		return "No matching tickers.\n"
	}
	var b strings.Builder
	for _, s := range suggestions {
		b.WriteString(s.Label())
		if s.Region != "" {
			b.WriteString(fmt.Sprintf(" (%s)", s.Region))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatError renders a failed run in place of a report.
func FormatError(err error) string {
	return fmt.Sprintf("Error: %v", err)
}
