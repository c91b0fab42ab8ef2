package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"TickerScope/internal/apperr"

	"github.com/PuerkitoBio/goquery"
	"github.com/phuslu/log"
)

const (
	DefaultFinvizBaseURL   = "https://finviz.com"
	DefaultFinvizUserAgent = "Mozilla/5.0 (compatible; TickerScope/1.0)"
)

// FinvizScraper implements HeadlineFetcher by scraping the news table of a
// finviz quote page.
type FinvizScraper struct {
	BaseURL   string
	UserAgent string
	Client    *http.Client
}

// NewFinvizScraper creates a scraper with optional proxy support.
func NewFinvizScraper(userAgent, proxyURL string, timeout time.Duration) *FinvizScraper {
	if userAgent == "" {
		userAgent = DefaultFinvizUserAgent
	}
	return &FinvizScraper{
		BaseURL:   DefaultFinvizBaseURL,
		UserAgent: userAgent,
		Client:    newHTTPClient(proxyURL, timeout),
	}
}

// FetchHeadlines returns the link texts of #news-table in page order, newest first.
// A page without a news table yields an empty list.
func (s *FinvizScraper) FetchHeadlines(ctx context.Context, ticker string) ([]string, error) {
	u := fmt.Sprintf("%s/quote.ashx?t=%s&p=d", strings.TrimRight(s.BaseURL, "/"), url.QueryEscape(ticker))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.UserAgent)

	log.Debug().Str("ticker", ticker).Msg("scraping finviz headlines")
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, transportError("finviz fetch", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperr.UnknownTicker(ticker)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, statusError("finviz", resp.StatusCode, body)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse finviz HTML: %w", err)
	}

	headlines := []string{}
	doc.Find("#news-table a").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			headlines = append(headlines, text)
		}
	})

	log.Debug().Str("ticker", ticker).Int("headlines", len(headlines)).Msg("finviz headlines scraped")
	return headlines, nil
}
