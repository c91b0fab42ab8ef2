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

	"github.com/phuslu/log"
)

// RESTFetcher implements SeriesFetcher against a self-hosted bars API.
type RESTFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string, timeout time.Duration) *RESTFetcher {
	return &RESTFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL, timeout),
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape from the bars API.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	AdjClose  float64 `json:"adj_close"`
	Volume    float64 `json:"volume"`
}

// FetchSeries requests GET /api/v1/bars/daily?symbol=&from=&to= with dates as YYYY-MM-DD.
func (f *RESTFetcher) FetchSeries(ctx context.Context, ticker string, start, end time.Time) (*model.MarketSeries, error) {
	q := url.Values{}
	q.Set("symbol", ticker)
	q.Set("from", start.Format("2006-01-02"))
	q.Set("to", end.Format("2006-01-02"))
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?%s", f.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}

	log.Debug().Str("ticker", ticker).Str("source", f.Name()).Msg("fetching daily bars")
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, transportError("fetch bars", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperr.UnknownTicker(ticker)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, statusError("fetch bars", resp.StatusCode, body)
	}

	var raw []restBar
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}
	if len(raw) == 0 {
		return nil, apperr.UnknownTicker(ticker)
	}

	bars := make([]model.Bar, len(raw))
	for i, rb := range raw {
		adj := rb.AdjClose
		if adj == 0 {
			adj = rb.Close
		}
		bars[i] = model.Bar{
			Date:     time.Unix(rb.Timestamp, 0).UTC(),
			Open:     rb.Open,
			High:     rb.High,
			Low:      rb.Low,
			Close:    rb.Close,
			AdjClose: adj,
			Volume:   rb.Volume,
		}
	}

	return &model.MarketSeries{
		Symbol:    ticker,
		Bars:      normalizeBars(bars),
		FetchedAt: time.Now(),
	}, nil
}
