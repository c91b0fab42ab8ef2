package sentiment

import (
	"fmt"
	"math"

	"TickerScope/internal/apperr"
	"TickerScope/internal/model"
)

// Scorer maps a text to a compound polarity score in [-1, 1].
type Scorer interface {
	Score(text string) float64
}

// ScorerFunc adapts a plain function to Scorer.
type ScorerFunc func(text string) float64

func (f ScorerFunc) Score(text string) float64 { return f(text) }

// Thresholds are the inclusive band edges used to classify an average score.
type Thresholds struct {
	Negative float64
	Positive float64
}

// DefaultThresholds classifies <= -0.5 as negative and >= 0.5 as positive.
var DefaultThresholds = Thresholds{Negative: -0.5, Positive: 0.5}

// Validate checks the bands do not overlap.
func (t Thresholds) Validate() error {
	if t.Negative >= t.Positive {
		return apperr.Config(fmt.Sprintf("negative threshold %.3f must be below positive threshold %.3f", t.Negative, t.Positive), nil)
	}
	return nil
}

// Classify maps an average score to exactly one band. The checks are ordered
// and the first match wins.
func (t Thresholds) Classify(avg float64) model.Sentiment {
	bands := []struct {
		match func(float64) bool
		label model.Sentiment
	}{
		{func(v float64) bool { return v <= t.Negative }, model.SentimentNegative},
		{func(v float64) bool { return v >= t.Positive }, model.SentimentPositive},
	}
	for _, b := range bands {
		if b.match(avg) {
			return b.label
		}
	}
	return model.SentimentNeutral
}

// Aggregate scores each headline in order and averages the results.
// An empty headline list is rejected rather than averaged.
func Aggregate(headlines []string, scorer Scorer, thresholds Thresholds) (*model.SentimentResult, error) {
	if len(headlines) == 0 {
		return nil, apperr.EmptyInput("no headlines to score")
	}

	scores := make([]float64, len(headlines))
	var sum float64
	for i, h := range headlines {
		scores[i] = clampScore(scorer.Score(h))
		sum += scores[i]
	}
	avg := sum / float64(len(scores))

	return &model.SentimentResult{
		Scores:         scores,
		Average:        avg,
		Classification: thresholds.Classify(avg),
	}, nil
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}
