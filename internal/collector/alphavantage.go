package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"TickerScope/internal/apperr"
	"TickerScope/internal/model"

	"golang.org/x/time/rate"
)

const (
	// DefaultAlphaVantageBaseURL is the Alpha Vantage query endpoint host.
	DefaultAlphaVantageBaseURL = "https://www.alphavantage.co"

	// DefaultSymbolSearchPerMinute matches the free-tier request allowance.
	DefaultSymbolSearchPerMinute = 5
)

// AlphaVantageSearcher implements SymbolSearcher with the SYMBOL_SEARCH function.
// Requests beyond the local allowance fail fast with a RATE_LIMITED error instead
// of waiting, so keystroke lookups never queue up.
type AlphaVantageSearcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	limiter *rate.Limiter
}

// NewAlphaVantageSearcher creates a searcher allowing perMinute requests per minute.
func NewAlphaVantageSearcher(apiKey, proxyURL string, perMinute int, timeout time.Duration) *AlphaVantageSearcher {
	if perMinute <= 0 {
		perMinute = DefaultSymbolSearchPerMinute
	}
	return &AlphaVantageSearcher{
		BaseURL: DefaultAlphaVantageBaseURL,
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL, timeout),
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
	}
}

type symbolSearchResponse struct {
	BestMatches []struct {
		Symbol string `json:"1. symbol"`
		Name   string `json:"2. name"`
		Region string `json:"4. region"`
	} `json:"bestMatches"`
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

// SearchSymbols forwards query verbatim and returns matches in provider order.
func (s *AlphaVantageSearcher) SearchSymbols(ctx context.Context, query string) ([]model.TickerSuggestion, error) {
	if !s.limiter.Allow() {
		return nil, apperr.RateLimited("symbol search: local request allowance exhausted")
	}

	q := url.Values{}
	q.Set("function", "SYMBOL_SEARCH")
	q.Set("keywords", query)
	q.Set("apikey", s.APIKey)
	u := fmt.Sprintf("%s/query?%s", strings.TrimRight(s.BaseURL, "/"), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, transportError("symbol search", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError("symbol search read body", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError("symbol search", resp.StatusCode, body)
	}

	var out symbolSearchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("symbol search decode: %w", err)
	}
	switch {
	case out.Note != "":
		return nil, apperr.RateLimited("symbol search: " + out.Note)
	case out.Information != "":
		return nil, apperr.RateLimited("symbol search: " + out.Information)
	case out.ErrorMessage != "":
		return nil, fmt.Errorf("symbol search: %s", out.ErrorMessage)
	}

	suggestions := make([]model.TickerSuggestion, 0, len(out.BestMatches))
	for _, m := range out.BestMatches {
		suggestions = append(suggestions, model.TickerSuggestion{
			Symbol: m.Symbol,
			Name:   m.Name,
			Region: m.Region,
		})
	}
	return suggestions, nil
}
