package main

import (
	"TickerScope/internal/analysis"
	"TickerScope/internal/collector"
	"TickerScope/internal/config"
	"TickerScope/internal/search"
	"TickerScope/internal/sentiment"

	"github.com/phuslu/log"
)

func newSeriesFetcher(c *config.Config) collector.SeriesFetcher {
	var fetcher collector.SeriesFetcher
	if c.Market.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(c.Market.BaseURL, c.Market.APIKey, c.Proxy, c.Market.Timeout)
	} else {
		fetcher = collector.NewYahooFetcher(c.Proxy, c.Market.Timeout)
	}
	log.Info().Str("source", fetcher.Name()).Msg("market data source")
	return fetcher
}

func newHeadlineFetcher(c *config.Config) collector.HeadlineFetcher {
	scraper := collector.NewFinvizScraper(c.Headlines.UserAgent, c.Proxy, c.Headlines.Timeout)
	if c.Headlines.BaseURL != "" {
		scraper.BaseURL = c.Headlines.BaseURL
	}
	return scraper
}

func newOrchestrator(c *config.Config) *analysis.Orchestrator {
	return analysis.New(
		analysis.ConfigFrom(c.Analysis),
		newSeriesFetcher(c),
		newHeadlineFetcher(c),
		sentiment.NewVaderScorer(),
	)
}

// newSearchIndex returns nil when no symbol-search API key is configured.
func newSearchIndex(c *config.Config) *search.Index {
	if err := c.ValidateSymbolSearch(); err != nil {
		log.Warn().Err(err).Msg("symbol search disabled")
		return nil
	}
	searcher := collector.NewAlphaVantageSearcher(c.SymbolSearch.APIKey, c.Proxy, c.SymbolSearch.RequestsPerMinute, c.SymbolSearch.Timeout)
	if c.SymbolSearch.BaseURL != "" {
		searcher.BaseURL = c.SymbolSearch.BaseURL
	}
	return search.NewIndex(searcher, c.SymbolSearch.Timeout)
}
