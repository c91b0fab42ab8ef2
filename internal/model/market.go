package model

import (
	"fmt"
	"time"

	"TickerScope/internal/apperr"
)

// Bar is a single trading day within the lookback window.
type Bar struct {
	Date     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	AdjClose float64
	Volume   float64
}

// MarketSeries holds the daily bars of one ticker, oldest first.
type MarketSeries struct {
	Symbol    string
	Bars      []Bar
	FetchedAt time.Time
}

// MaxBarGapDays is the longest calendar gap allowed between consecutive bars.
// Weekends and holidays give at most 4; multi-day exchange closures stay within 7.
const MaxBarGapDays = 7

// Validate checks the series is long enough, strictly ordered by date and
// free of gaps longer than MaxBarGapDays.
func (s *MarketSeries) Validate() error {
	if len(s.Bars) < 2 {
		return apperr.InsufficientData(fmt.Sprintf("need at least 2 trading days for %s, got %d", s.Symbol, len(s.Bars)))
	}
	for i := 1; i < len(s.Bars); i++ {
		if !s.Bars[i].Date.After(s.Bars[i-1].Date) {
			return apperr.New(apperr.KindInternal,
				fmt.Sprintf("bars for %s not strictly increasing at %s", s.Symbol, s.Bars[i].Date.Format("2006-01-02")), nil)
		}
		if gap := calendarDays(s.Bars[i-1].Date, s.Bars[i].Date); gap > MaxBarGapDays {
			return apperr.InsufficientData(fmt.Sprintf("bars for %s have a %d-day gap before %s",
				s.Symbol, gap, s.Bars[i].Date.Format("2006-01-02")))
		}
	}
	return nil
}

// calendarDays counts the calendar days from a to b by their dates alone.
func calendarDays(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// Volumes returns the traded volume of each day in order.
func (s *MarketSeries) Volumes() []float64 {
	v := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		v[i] = b.Volume
	}
	return v
}

// Last returns the most recent bar. The series must not be empty.
func (s *MarketSeries) Last() Bar {
	return s.Bars[len(s.Bars)-1]
}

// CurrentPrice is the adjusted close of the most recent day.
func (s *MarketSeries) CurrentPrice() float64 {
	return s.Last().AdjClose
}
