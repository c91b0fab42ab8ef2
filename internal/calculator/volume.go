package calculator

import (
	"fmt"
	"math"

	"TickerScope/internal/apperr"
	"TickerScope/internal/model"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultAlpha is the significance level for the volume t-test.
const DefaultAlpha = 0.05

// DetectVolumeAnomaly runs a two-sided one-sample t-test of today's volume against
// the reference volumes. The statistic is (mean - today) / (s / sqrt(n)) with the
// sample standard deviation s, evaluated on Student's t with n-1 degrees of freedom.
func DetectVolumeAnomaly(reference []float64, today, alpha float64) (*model.VolumeAnomalyResult, error) {
	n := len(reference)
	if n < 2 {
		return nil, apperr.InsufficientData(fmt.Sprintf("volume t-test needs at least 2 observations, got %d", n))
	}
	if alpha <= 0 || alpha >= 1 {
		return nil, apperr.New(apperr.KindInternal, fmt.Sprintf("alpha must be in (0,1), got %v", alpha), nil)
	}

	mean := stat.Mean(reference, nil)
	sd := stat.StdDev(reference, nil)
	diff := mean - today

	var t, p float64
	switch {
	case diff == 0:
		t, p = 0, 1
	case sd == 0:
		// Constant reference that today deviates from.
		t, p = math.Copysign(math.Inf(1), diff), 0
	default:
		t = diff / (sd / math.Sqrt(float64(n)))
		dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
		p = 2 * dist.CDF(-math.Abs(t))
	}
	p = clampPValue(p)

	return &model.VolumeAnomalyResult{
		TStatistic:  t,
		PValue:      p,
		Alpha:       alpha,
		SampleSize:  n,
		Significant: p < alpha,
	}, nil
}

// clampPValue keeps p inside (0, 1] despite rounding in the tails.
func clampPValue(p float64) float64 {
	if p > 1 {
		return 1
	}
	if p <= 0 || math.IsNaN(p) {
		return math.SmallestNonzeroFloat64
	}
	return p
}
