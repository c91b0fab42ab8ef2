package calculator

import (
	"math"
	"testing"

	"TickerScope/internal/apperr"

	"gonum.org/v1/gonum/stat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectVolumeAnomaly_TodayAtMean(t *testing.T) {
	series := [][]float64{
		{100, 200},
		{1.2e6, 3.4e6, 2.2e6, 5.9e6, 1.1e6},
		{0.1, 0.2, 0.3, 0.7, 0.9, 1.3, 2.8},
	}
	for _, s := range series {
		res, err := DetectVolumeAnomaly(s, stat.Mean(s, nil), DefaultAlpha)
		require.NoError(t, err)
		assert.Equal(t, 0.0, res.TStatistic)
		assert.Equal(t, 1.0, res.PValue)
		assert.False(t, res.Significant)
		assert.Equal(t, len(s), res.SampleSize)
	}
}

func TestDetectVolumeAnomaly_KnownValues(t *testing.T) {
	// n=5, mean 3, s=sqrt(2.5): t = 2/(sqrt(2.5)/sqrt(5)) = 2*sqrt(2), df=4.
	res, err := DetectVolumeAnomaly([]float64{1, 2, 3, 4, 5}, 1, DefaultAlpha)
	require.NoError(t, err)
	assert.InDelta(t, 2*math.Sqrt2, res.TStatistic, 1e-12)
	assert.InDelta(t, 0.047421, res.PValue, 1e-5)
	assert.True(t, res.Significant)

	res, err = DetectVolumeAnomaly([]float64{1, 2, 3, 4, 5}, 1, 0.01)
	require.NoError(t, err)
	assert.False(t, res.Significant)

	// df=1 is the Cauchy distribution: P(|T| > 1) = 0.5.
	res, err = DetectVolumeAnomaly([]float64{10, 20}, 10, DefaultAlpha)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.TStatistic, 1e-12)
	assert.InDelta(t, 0.5, res.PValue, 1e-9)
}

func TestDetectVolumeAnomaly_SignFollowsMeanMinusToday(t *testing.T) {
	res, err := DetectVolumeAnomaly([]float64{1, 2, 3, 4, 5}, 9, DefaultAlpha)
	require.NoError(t, err)
	assert.Less(t, res.TStatistic, 0.0)
}

func TestDetectVolumeAnomaly_ConstantReference(t *testing.T) {
	res, err := DetectVolumeAnomaly([]float64{500, 500, 500}, 900, DefaultAlpha)
	require.NoError(t, err)
	assert.True(t, math.IsInf(res.TStatistic, -1))
	assert.Greater(t, res.PValue, 0.0)
	assert.True(t, res.Significant)
}

func TestDetectVolumeAnomaly_InsufficientData(t *testing.T) {
	for _, s := range [][]float64{nil, {42}} {
		_, err := DetectVolumeAnomaly(s, 42, DefaultAlpha)
		require.Error(t, err)
		assert.Equal(t, apperr.KindInsufficientData, apperr.KindOf(err))
	}
}

func TestDetectVolumeAnomaly_BadAlpha(t *testing.T) {
	_, err := DetectVolumeAnomaly([]float64{1, 2}, 1, 0)
	assert.Error(t, err)
	_, err = DetectVolumeAnomaly([]float64{1, 2}, 1, 1)
	assert.Error(t, err)
}
