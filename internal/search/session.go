package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"TickerScope/internal/model"
)

// DefaultDebounce is the quiet period after a keystroke before a lookup starts.
const DefaultDebounce = 250 * time.Millisecond

// Result is the suggestion list produced for one keystroke.
type Result struct {
	Seq         uint64
	Query       string
	Suggestions []model.TickerSuggestion
}

// Session drives incremental search for an interactive surface. Keystroke
// returns immediately; lookups run in the background and only the newest
// keystroke's result is ever published. Superseded lookups are cancelled.
type Session struct {
	index    *Index
	debounce time.Duration
	root     context.Context
	results  chan Result

	mu       sync.Mutex
	seq      uint64
	cancel   context.CancelFunc
	latest   Result
	selected string
	closed   bool
	wg       sync.WaitGroup
}

// NewSession creates a session bound to ctx.
func NewSession(ctx context.Context, index *Index, debounce time.Duration) *Session {
	if debounce < 0 {
		debounce = 0
	}
	return &Session{
		index:    index,
		debounce: debounce,
		root:     ctx,
		results:  make(chan Result, 1),
	}
}

// Results delivers published results. Only the newest undelivered result is buffered.
func (s *Session) Results() <-chan Result { return s.results }

// Latest returns the most recently published result.
func (s *Session) Latest() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Keystroke records the current contents of the input field and schedules a
// lookup. It returns the sequence number identifying this query.
func (s *Session) Keystroke(query string) uint64 {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	seq := s.seq
	query = strings.TrimSpace(query)

	if query == "" {
		s.cancel = nil
		s.publishLocked(Result{Seq: seq, Suggestions: []model.TickerSuggestion{}})
		s.mu.Unlock()
		return seq
	}

	ctx, cancel := context.WithCancel(s.root)
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go s.lookup(ctx, seq, query)
	return seq
}

func (s *Session) lookup(ctx context.Context, seq uint64, query string) {
	defer s.wg.Done()
	if s.debounce > 0 {
		t := time.NewTimer(s.debounce)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}

	suggestions := s.index.Search(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return
	}
	s.publishLocked(Result{Seq: seq, Query: query, Suggestions: suggestions})
}

// publishLocked replaces any unread result with r. Caller holds s.mu.
func (s *Session) publishLocked(r Result) {
	if s.closed {
		return
	}
	s.latest = r
	select {
	case <-s.results:
	default:
	}
	s.results <- r
}

// Select records the chosen suggestion and returns its symbol.
func (s *Session) Select(suggestion model.TickerSuggestion) string {
	return s.SelectLabel(suggestion.Label())
}

// SelectLabel records a choice made from a rendered "SYMBOL - Name" label.
func (s *Session) SelectLabel(label string) string {
	symbol := model.ParseSuggestionLabel(label)
	s.mu.Lock()
	s.selected = symbol
	s.mu.Unlock()
	return symbol
}

// Selected returns the last selected symbol.
func (s *Session) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Close cancels any in-flight lookup and closes the results channel.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.closed = true
	s.mu.Unlock()

	s.wg.Wait()
	close(s.results)
}
