package scheduler

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"TickerScope/internal/model"
	"TickerScope/internal/notifier"
	"TickerScope/internal/report"

	"github.com/phuslu/log"
	"github.com/robfig/cron/v3"
)

// Analyzer runs one ticker analysis.
type Analyzer interface {
	RunAnalysis(ctx context.Context, ticker string, windowDays int) (*model.AnalysisReport, error)
	WindowDays() int
}

// Searcher looks up ticker suggestions.
type Searcher interface {
	Search(ctx context.Context, query string) []model.TickerSuggestion
}

// Sender delivers a message.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

const maxDays = 3650

// Scheduler runs digests on a cron schedule and answers chat commands.
type Scheduler struct {
	Cron     *cron.Cron
	Analyzer Analyzer
	Searcher Searcher
	Notifier Sender
	Tickers  []string
	Ctx      context.Context

	now func() time.Time
}

// NewScheduler creates a new Scheduler. searcher may be nil when symbol search is not configured.
func NewScheduler(ctx context.Context, analyzer Analyzer, searcher Searcher, sender Sender, tickers []string) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Analyzer: analyzer,
		Searcher: searcher,
		Notifier: sender,
		Tickers:  tickers,
		Ctx:      ctx,
		now:      time.Now,
	}
}

// Register adds the digest task on the given cron spec (with seconds field).
func (s *Scheduler) Register(digestCron string) error {
	if len(s.Tickers) == 0 {
		return fmt.Errorf("register digest task: no tickers configured")
	}
	if _, err := s.Cron.AddFunc(digestCron, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Strs("tickers", s.Tickers).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running digest to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunDigestNow executes the digest task immediately.
func (s *Scheduler) RunDigestNow() {
	s.digestTask()
}

func (s *Scheduler) digestTask() {
	log.Info().Int("tickers", len(s.Tickers)).Msg("running digest task")
	entries := make([]notifier.DigestEntry, 0, len(s.Tickers))
	for _, ticker := range s.Tickers {
		if s.Ctx.Err() != nil {
			return
		}
		r, err := s.Analyzer.RunAnalysis(s.Ctx, ticker, 0)
		if err != nil {
			log.Warn().Str("ticker", ticker).Err(err).Msg("scheduled analysis failed")
		}
		entries = append(entries, notifier.DigestEntry{Ticker: ticker, Report: r, Err: err})
	}
	s.trySend(notifier.FormatDigest(s.now(), entries))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp(s.Analyzer.WindowDays())
	}
	name := strings.ToLower(fields[0])
	// Group chats address commands as /cmd@BotName.
	if i := strings.IndexByte(name, '@'); i > 0 {
		name = name[:i]
	}
	args := fields[1:]

	switch name {
	case "/analyze":
		return s.handleAnalyze(ctx, args)
	case "/search":
		return s.handleSearch(ctx, args)
	default:
		return notifier.FormatHelp(s.Analyzer.WindowDays())
	}
}

func (s *Scheduler) handleAnalyze(ctx context.Context, args []string) string {
	if len(args) == 0 || len(args) > 2 {
		return "Usage: /analyze TICKER [DAYS]"
	}
	days := 0
	if len(args) == 2 {
		d, err := strconv.Atoi(args[1])
		if err != nil || d < 2 || d > maxDays {
			return fmt.Sprintf("DAYS must be a number between 2 and %d", maxDays)
		}
		days = d
	}
	r, err := s.Analyzer.RunAnalysis(ctx, args[0], days)
	if err != nil {
		return html.EscapeString(report.FormatError(err))
	}
	return report.AssembleHTML(r)
}

func (s *Scheduler) handleSearch(ctx context.Context, args []string) string {
	if s.Searcher == nil {
		return "Symbol search is not configured."
	}
	if len(args) == 0 {
		return "Usage: /search QUERY"
	}
	suggestions := s.Searcher.Search(ctx, strings.Join(args, " "))
	return html.EscapeString(report.FormatSuggestions(suggestions))
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
