package calculator

import (
	"math"
	"testing"
	"time"

	"TickerScope/internal/apperr"
	"TickerScope/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatBar(d int, price float64) model.Bar {
	return model.Bar{
		Date:     time.Date(2024, 4, d, 0, 0, 0, 0, time.UTC),
		Open:     price,
		High:     price,
		Low:      price,
		Close:    price,
		AdjClose: price,
	}
}

func TestEstimateVolatility_ConstantSeries(t *testing.T) {
	bars := make([]model.Bar, 10)
	for i := range bars {
		bars[i] = model.Bar{Open: 101, High: 104, Low: 99, AdjClose: 102}
	}
	res, err := EstimateVolatility(bars)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Volatility)
	assert.Len(t, res.DailyMeans, 10)
	assert.Equal(t, 101.5, res.DailyMeans[0])
}

func TestEstimateVolatility_PopulationRMS(t *testing.T) {
	bars := []model.Bar{flatBar(1, 10), flatBar(2, 20), flatBar(3, 30)}
	res, err := EstimateVolatility(bars)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30}, res.DailyMeans)
	// sqrt((100 + 0 + 100) / 3), not the n-1 sample deviation.
	assert.InDelta(t, math.Sqrt(200.0/3.0), res.Volatility, 1e-12)
}

func TestDailyMeans_UsesAdjustedClose(t *testing.T) {
	bars := []model.Bar{{Open: 1, High: 2, Low: 3, Close: 100, AdjClose: 6}}
	assert.Equal(t, []float64{3}, DailyMeans(bars))
}

func TestEstimateVolatility_Empty(t *testing.T) {
	_, err := EstimateVolatility(nil)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInsufficientData, apperr.KindOf(err))
}

func TestTrend(t *testing.T) {
	tests := []struct {
		means []float64
		want  model.Trend
	}{
		{[]float64{1, 5, 2}, model.TrendGrowing},
		{[]float64{2, 9, 2}, model.TrendNotGrowing},
		{[]float64{3, 0, 1}, model.TrendNotGrowing},
		{[]float64{3}, model.TrendNotGrowing},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Trend(tt.means), "means %v", tt.means)
	}
}
