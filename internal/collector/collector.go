package collector

import (
	"context"
	"time"

	"TickerScope/internal/apperr"
	"TickerScope/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Bars  []model.Bar
	Err   error
	Calls int
}

func (m *MockFetcher) Name() string { return "mock" }

// FetchSeries returns Bars when set, otherwise one generated bar per business day in [start, end].
func (m *MockFetcher) FetchSeries(_ context.Context, ticker string, start, end time.Time) (*model.MarketSeries, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	bars := m.Bars
	if bars == nil {
		bars = generateMockBars(m.Price, start, end)
	}
	if len(bars) == 0 {
		return nil, apperr.UnknownTicker(ticker)
	}
	return &model.MarketSeries{
		Symbol:    ticker,
		Bars:      append([]model.Bar(nil), bars...),
		FetchedAt: time.Now(),
	}, nil
}

func generateMockBars(basePrice float64, start, end time.Time) []model.Bar {
	days := BusinessDays(start, end)
	count := len(days)
	bars := make([]model.Bar, count)
	for i, d := range days {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Date:     d,
			Open:     p * 0.999,
			High:     p * 1.005,
			Low:      p * 0.995,
			Close:    p,
			AdjClose: p,
			Volume:   1000000 + float64(i%3)*50000,
		}
	}
	return bars
}

// BusinessDays lists the weekdays between start and end inclusive, at midnight UTC.
func BusinessDays(start, end time.Time) []time.Time {
	var days []time.Time
	d := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	for ; !d.After(last); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days = append(days, d)
		}
	}
	return days
}
