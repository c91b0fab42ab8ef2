package model

import (
	"fmt"
	"strings"
	"time"
)

// VolumeAnomalyResult is the outcome of the one-sample t-test on trade volume.
type VolumeAnomalyResult struct {
	TStatistic  float64
	PValue      float64
	Alpha       float64
	SampleSize  int
	Significant bool
}

// VolatilityResult holds the per-day mean prices and their RMS deviation.
type VolatilityResult struct {
	DailyMeans []float64
	Volatility float64
}

// Sentiment is the classification band of an average compound score.
type Sentiment string

const (
	SentimentNegative Sentiment = "NEGATIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
	SentimentPositive Sentiment = "POSITIVE"
)

// Label returns the lower-case word used in reports.
func (s Sentiment) Label() string { return strings.ToLower(string(s)) }

// SentimentResult aggregates per-headline compound scores.
type SentimentResult struct {
	Scores         []float64
	Average        float64
	Classification Sentiment
}

// Trend compares the first and last daily mean of the window.
type Trend string

const (
	TrendGrowing    Trend = "growing"
	TrendNotGrowing Trend = "not growing"
)

// TickerSuggestion is one match returned by the symbol-search provider.
type TickerSuggestion struct {
	Symbol string
	Name   string
	Region string
}

// Label renders the suggestion as "SYMBOL - Name".
func (s TickerSuggestion) Label() string {
	return fmt.Sprintf("%s - %s", s.Symbol, s.Name)
}

// ParseSuggestionLabel extracts the symbol from a label produced by Label.
func ParseSuggestionLabel(label string) string {
	symbol, _, _ := strings.Cut(label, " - ")
	return strings.TrimSpace(symbol)
}

// SeriesPoint is a plottable daily mean.
type SeriesPoint struct {
	Date      time.Time
	DailyMean float64
}

// AnalysisReport is the full, read-only result of one analysis run.
type AnalysisReport struct {
	RunID           string
	Ticker          string
	WindowDays      int
	Start           time.Time
	End             time.Time
	CurrentPrice    float64
	Volume          VolumeAnomalyResult
	Volatility      VolatilityResult
	Trend           Trend
	Series          []SeriesPoint
	Sentiment       SentimentResult
	RecentHeadlines []string
	GeneratedAt     time.Time
}
