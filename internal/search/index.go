package search

import (
	"context"
	"strings"
	"time"

	"TickerScope/internal/apperr"
	"TickerScope/internal/collector"
	"TickerScope/internal/model"

	"github.com/phuslu/log"
)

// DefaultTimeout bounds a single provider lookup.
const DefaultTimeout = 10 * time.Second

// Index resolves partial queries to ticker suggestions. It never returns an
// error: provider failures degrade to an empty list.
type Index struct {
	searcher collector.SymbolSearcher
	timeout  time.Duration
}

// NewIndex wraps a symbol searcher.
func NewIndex(searcher collector.SymbolSearcher, timeout time.Duration) *Index {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Index{searcher: searcher, timeout: timeout}
}

// Search returns provider-ranked suggestions for query. A blank query returns
// an empty list without contacting the provider.
func (ix *Index) Search(ctx context.Context, query string) []model.TickerSuggestion {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.TickerSuggestion{}
	}

	ctx, cancel := context.WithTimeout(ctx, ix.timeout)
	defer cancel()

	suggestions, err := ix.searcher.SearchSymbols(ctx, query)
	if err != nil {
		switch {
		case ctx.Err() == context.Canceled:
			log.Debug().Str("query", query).Msg("symbol search superseded")
		case apperr.Is(err, apperr.KindRateLimited):
			log.Warn().Str("query", query).Err(err).Msg("symbol search rate limited, try again later")
		default:
			log.Warn().Str("query", query).Err(err).Msg("symbol search failed")
		}
		return []model.TickerSuggestion{}
	}
	if suggestions == nil {
		return []model.TickerSuggestion{}
	}
	return suggestions
}
