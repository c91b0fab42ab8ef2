package collector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"TickerScope/internal/apperr"
	"TickerScope/internal/model"
)

// DefaultTimeout bounds every outbound request.
const DefaultTimeout = 30 * time.Second

// SeriesFetcher retrieves daily bars for a ticker between two dates.
type SeriesFetcher interface {
	FetchSeries(ctx context.Context, ticker string, start, end time.Time) (*model.MarketSeries, error)
	Name() string
}

// HeadlineFetcher retrieves the most recent news headlines for a ticker.
type HeadlineFetcher interface {
	FetchHeadlines(ctx context.Context, ticker string) ([]string, error)
}

// SymbolSearcher looks up ticker symbols matching a partial query.
type SymbolSearcher interface {
	SearchSymbols(ctx context.Context, query string) ([]model.TickerSuggestion, error)
}

// newHTTPClient builds a client with optional proxy support.
func newHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// transportError maps a failed round trip to a NETWORK error, or CANCELED
// when the caller gave up.
func transportError(source string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.Network(source+": timed out", err)
	}
	if errors.Is(err, context.Canceled) {
		return apperr.Canceled(source+": cancelled", err)
	}
	return apperr.Network(source+": request failed", err)
}

// statusError maps a non-200 response to an error kind.
func statusError(source string, status int, body []byte) error {
	msg := fmt.Sprintf("%s: status %d, body: %s", source, status, truncate(string(body), 200))
	if status == http.StatusTooManyRequests {
		return apperr.RateLimited(msg)
	}
	return apperr.Network(msg, nil)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// normalizeBars sorts bars chronologically and keeps one bar per calendar day,
// preferring the later entry.
func normalizeBars(bars []model.Bar) []model.Bar {
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	out := bars[:0]
	for _, b := range bars {
		if n := len(out); n > 0 && sameDay(out[n-1].Date, b.Date) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
