package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"TickerScope/internal/apperr"
	"TickerScope/internal/calculator"
	"TickerScope/internal/collector"
	"TickerScope/internal/config"
	"TickerScope/internal/model"
	"TickerScope/internal/sentiment"

	"github.com/google/uuid"
	"github.com/phuslu/log"
	"golang.org/x/sync/errgroup"
)

// Config holds the tunables of an analysis run.
type Config struct {
	WindowDays              int
	Alpha                   float64
	Thresholds              sentiment.Thresholds
	IncludeTodayInReference bool
	RecentHeadlines         int
	FetchTimeout            time.Duration
}

// DefaultConfig returns the stock parameters: 30 days, alpha 0.05, ±0.5 thresholds.
func DefaultConfig() Config {
	return Config{
		WindowDays:      30,
		Alpha:           calculator.DefaultAlpha,
		Thresholds:      sentiment.DefaultThresholds,
		RecentHeadlines: 3,
		FetchTimeout:    30 * time.Second,
	}
}

// ConfigFrom maps the file/env configuration onto run parameters.
func ConfigFrom(c config.AnalysisConfig) Config {
	return Config{
		WindowDays: c.WindowDays,
		Alpha:      c.Alpha,
		Thresholds: sentiment.Thresholds{
			Negative: c.NegativeThreshold,
			Positive: c.PositiveThreshold,
		},
		IncludeTodayInReference: c.IncludeTodayInReference,
		RecentHeadlines:         c.RecentHeadlines,
		FetchTimeout:            c.RunTimeout,
	}
}

// Orchestrator runs the analysis pipeline for one ticker at a time.
type Orchestrator struct {
	cfg       Config
	series    collector.SeriesFetcher
	headlines collector.HeadlineFetcher
	scorer    sentiment.Scorer
	now       func() time.Time

	mu sync.Mutex
}

// New creates an orchestrator over the given collaborators.
func New(cfg Config, series collector.SeriesFetcher, headlines collector.HeadlineFetcher, scorer sentiment.Scorer) *Orchestrator {
	def := DefaultConfig()
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = def.WindowDays
	}
	if cfg.Alpha == 0 {
		cfg.Alpha = def.Alpha
	}
	if cfg.Thresholds == (sentiment.Thresholds{}) {
		cfg.Thresholds = def.Thresholds
	}
	if cfg.RecentHeadlines <= 0 {
		cfg.RecentHeadlines = def.RecentHeadlines
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = def.FetchTimeout
	}
	return &Orchestrator{
		cfg:       cfg,
		series:    series,
		headlines: headlines,
		scorer:    scorer,
		now:       time.Now,
	}
}

// WindowDays is the lookback used when RunAnalysis is given zero days.
func (o *Orchestrator) WindowDays() int { return o.cfg.WindowDays }

// RunAnalysis fetches data for ticker over the last windowDays and builds a report.
// A windowDays of zero or less uses the configured default. Any failure aborts the
// run with a *RunError; no partial report is returned.
func (o *Orchestrator) RunAnalysis(ctx context.Context, ticker string, windowDays int) (*model.AnalysisReport, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	ticker = NormalizeTicker(ticker)
	if ticker == "" {
		return nil, &RunError{Stage: StageInput, Err: apperr.EmptyInput("ticker symbol cannot be empty")}
	}
	if windowDays <= 0 {
		windowDays = o.cfg.WindowDays
	}

	runID := uuid.NewString()
	end := o.now()
	start := end.AddDate(0, 0, -windowDays)
	fail := func(stage Stage, err error) error {
		err = contextError(err)
		log.Debug().Str("run_id", runID).Str("ticker", ticker).Str("stage", string(stage)).Err(err).Msg("analysis aborted")
		return &RunError{Ticker: ticker, Stage: stage, Err: err}
	}

	log.Info().Str("run_id", runID).Str("ticker", ticker).Int("window_days", windowDays).Str("source", o.series.Name()).Msg("analysis started")

	fetchCtx, cancel := context.WithTimeout(ctx, o.cfg.FetchTimeout)
	series, err := o.series.FetchSeries(fetchCtx, ticker, start, end)
	cancel()
	if err != nil {
		return nil, fail(StageMarketData, err)
	}
	if err := series.Validate(); err != nil {
		return nil, fail(StageMarketData, err)
	}

	reference, today := o.volumeSample(series.Volumes())

	var (
		volume     *model.VolumeAnomalyResult
		volatility *model.VolatilityResult
	)
	var g errgroup.Group
	g.Go(func() error {
		r, err := calculator.DetectVolumeAnomaly(reference, today, o.cfg.Alpha)
		if err != nil {
			return fail(StageVolume, err)
		}
		volume = r
		return nil
	})
	g.Go(func() error {
		r, err := calculator.EstimateVolatility(series.Bars)
		if err != nil {
			return fail(StageVolatility, err)
		}
		volatility = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	fetchCtx, cancel = context.WithTimeout(ctx, o.cfg.FetchTimeout)
	headlines, err := o.headlines.FetchHeadlines(fetchCtx, ticker)
	cancel()
	if err != nil {
		return nil, fail(StageHeadlines, err)
	}

	sent, err := sentiment.Aggregate(headlines, o.scorer, o.cfg.Thresholds)
	if err != nil {
		return nil, fail(StageSentiment, err)
	}

	points := make([]model.SeriesPoint, len(series.Bars))
	for i, b := range series.Bars {
		points[i] = model.SeriesPoint{Date: b.Date, DailyMean: volatility.DailyMeans[i]}
	}

	recent := headlines
	if len(recent) > o.cfg.RecentHeadlines {
		recent = recent[:o.cfg.RecentHeadlines]
	}

	report := &model.AnalysisReport{
		RunID:           runID,
		Ticker:          ticker,
		WindowDays:      windowDays,
		Start:           start,
		End:             end,
		CurrentPrice:    series.CurrentPrice(),
		Volume:          *volume,
		Volatility:      *volatility,
		Trend:           calculator.Trend(volatility.DailyMeans),
		Series:          points,
		Sentiment:       *sent,
		RecentHeadlines: append([]string(nil), recent...),
		GeneratedAt:     o.now(),
	}

	log.Info().Str("run_id", runID).Str("ticker", ticker).
		Bool("volume_significant", volume.Significant).
		Float64("volatility", volatility.Volatility).
		Str("sentiment", sent.Classification.Label()).
		Msg("analysis complete")
	return report, nil
}

// volumeSample splits volumes into the reference population and today's value.
// Today's sample is excluded from the reference unless configured otherwise.
func (o *Orchestrator) volumeSample(volumes []float64) ([]float64, float64) {
	today := volumes[len(volumes)-1]
	if o.cfg.IncludeTodayInReference {
		return volumes, today
	}
	return volumes[:len(volumes)-1], today
}

// NormalizeTicker trims and upper-cases a ticker symbol.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// contextError maps bare context expiry to a network error and cancellation
// to a canceled error.
func contextError(err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return apperr.Network("request timed out", err)
	case errors.Is(err, context.Canceled):
		return apperr.Canceled("analysis run was cancelled", err)
	}
	return err
}

// Stage names the pipeline step a run failed in.
type Stage string

const (
	StageInput      Stage = "input"
	StageMarketData Stage = "market data"
	StageVolume     Stage = "volume test"
	StageVolatility Stage = "volatility"
	StageHeadlines  Stage = "headlines"
	StageSentiment  Stage = "sentiment"
)

// RunError is the single error surfaced by a failed run.
type RunError struct {
	Ticker string
	Stage  Stage
	Err    error
}

func (e *RunError) Error() string {
	if e.Ticker == "" {
		return fmt.Sprintf("analysis failed (%s): %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("analysis of %s failed (%s): %v", e.Ticker, e.Stage, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

// Kind returns the categorized kind of the underlying failure.
func (e *RunError) Kind() apperr.Kind { return apperr.KindOf(e.Err) }
