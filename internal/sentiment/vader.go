package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"
)

// quoteFolder maps typographic quotes to ASCII so contractions such as
// "isn’t" match VADER's negation list.
var quoteFolder = strings.NewReplacer("’", "'", "‘", "'", "“", `"`, "”", `"`)

// VaderScorer scores text with the VADER compound score in [-1, 1].
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer builds the VADER lexicon; build it once and reuse it.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (s *VaderScorer) Score(text string) float64 {
	return s.analyzer.PolarityScores(quoteFolder.Replace(text)).Compound
}
