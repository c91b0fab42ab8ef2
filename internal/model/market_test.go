package model

import (
	"testing"
	"time"

	"TickerScope/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestMarketSeries_Validate(t *testing.T) {
	tests := []struct {
		name string
		bars []Bar
		kind apperr.Kind
	}{
		{"empty", nil, apperr.KindInsufficientData},
		{"single", []Bar{{Date: day(4)}}, apperr.KindInsufficientData},
		{"duplicate date", []Bar{{Date: day(4)}, {Date: day(4)}}, apperr.KindInternal},
		{"descending", []Bar{{Date: day(5)}, {Date: day(4)}}, apperr.KindInternal},
		{"eight day gap", []Bar{{Date: day(4)}, {Date: day(12)}}, apperr.KindInsufficientData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &MarketSeries{Symbol: "AAPL", Bars: tt.bars}
			err := s.Validate()
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperr.KindOf(err))
		})
	}

	ok := &MarketSeries{Symbol: "AAPL", Bars: []Bar{{Date: day(4)}, {Date: day(5)}, {Date: day(8)}}}
	assert.NoError(t, ok.Validate())

	// Fri 2024-03-01 to Mon 2024-03-11: a full closed week.
	closure := &MarketSeries{Symbol: "AAPL", Bars: []Bar{{Date: day(1)}, {Date: day(8)}, {Date: day(11)}}}
	assert.NoError(t, closure.Validate())
}

func TestMarketSeries_Accessors(t *testing.T) {
	s := &MarketSeries{Bars: []Bar{
		{Date: day(4), AdjClose: 10, Volume: 100},
		{Date: day(5), AdjClose: 12, Volume: 300},
	}}
	assert.Equal(t, []float64{100, 300}, s.Volumes())
	assert.Equal(t, 12.0, s.CurrentPrice())
}

func TestSuggestionLabelRoundTrip(t *testing.T) {
	s := TickerSuggestion{Symbol: "TSCO.LON", Name: "Tesco PLC"}
	assert.Equal(t, "TSCO.LON - Tesco PLC", s.Label())
	assert.Equal(t, "TSCO.LON", ParseSuggestionLabel(s.Label()))
	assert.Equal(t, "AAPL", ParseSuggestionLabel(" AAPL "))
}

func TestSentimentLabel(t *testing.T) {
	assert.Equal(t, "negative", SentimentNegative.Label())
	assert.Equal(t, "neutral", SentimentNeutral.Label())
	assert.Equal(t, "positive", SentimentPositive.Label())
}
