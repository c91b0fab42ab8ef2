package calculator

import (
	"math"

	"TickerScope/internal/apperr"
	"TickerScope/internal/model"

	"gonum.org/v1/gonum/stat"
)

// DailyMeans averages open, high, low and adjusted close for each bar.
func DailyMeans(bars []model.Bar) []float64 {
	means := make([]float64, len(bars))
	for i, b := range bars {
		means[i] = (b.Open + b.High + b.Low + b.AdjClose) / 4
	}
	return means
}

// EstimateVolatility returns the population root-mean-square deviation of the
// daily means from their whole-window average. This is a volatility proxy, not
// an annualized return volatility.
func EstimateVolatility(bars []model.Bar) (*model.VolatilityResult, error) {
	if len(bars) == 0 {
		return nil, apperr.InsufficientData("volatility needs at least 1 trading day")
	}
	means := DailyMeans(bars)
	ref := stat.Mean(means, nil)

	var sumSq float64
	for _, m := range means {
		d := m - ref
		sumSq += d * d
	}
	return &model.VolatilityResult{
		DailyMeans: means,
		Volatility: math.Sqrt(sumSq / float64(len(means))),
	}, nil
}

// Trend compares only the endpoints of the daily mean series.
func Trend(dailyMeans []float64) model.Trend {
	if len(dailyMeans) >= 2 && dailyMeans[0] < dailyMeans[len(dailyMeans)-1] {
		return model.TrendGrowing
	}
	return model.TrendNotGrowing
}
