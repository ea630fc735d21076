package scrape

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"marketscraper/internal/apperror"
	"marketscraper/internal/market"
)

// Scraper assembles one canonical record per symbol from a fetched market
// page. Transport and format errors propagate to the caller unchanged;
// failure isolation across symbols belongs to the batch layer.
type Scraper struct {
	fetcher *Fetcher
}

func New(fetcher *Fetcher) *Scraper {
	return &Scraper{fetcher: fetcher}
}

func (s *Scraper) Scrape(ctx context.Context, symbol string) (market.Record, error) {
	if symbol == "" {
		return market.Record{}, apperror.New(apperror.Format, "symbol cannot be empty")
	}

	doc, err := s.fetcher.Fetch(ctx, symbol)
	if err != nil {
		return market.Record{}, err
	}

	// Wall clock of the scraping process, not the page's own update time.
	capturedAt := time.Now().In(jakarta)

	currentPrice, err := extractCurrentPrice(doc)
	if err != nil {
		return market.Record{}, err
	}

	details, err := extractPriceDetails(doc)
	if err != nil {
		return market.Record{}, err
	}

	lastUpdate, err := extractLastUpdate(doc)
	if err != nil {
		return market.Record{}, err
	}

	rec := market.Record{
		Symbol:       strings.ToUpper(symbol),
		SourceURL:    s.fetcher.URL(symbol),
		CapturedAt:   capturedAt,
		CurrentPrice: currentPrice,
		HighPrice:    details.High,
		LowPrice:     details.Low,
		LastPrice:    details.Last,
		OpenPrice:    details.Open,
	}
	if lastUpdate != nil {
		text := lastUpdate.Format(lastUpdateLayout)
		rec.LastUpdateText = &text
	}

	slog.Info("scraped market page", "symbol", rec.Symbol, "url", rec.SourceURL,
		"currentPrice", currentPrice != nil, "lastUpdate", lastUpdate != nil)

	return rec, nil
}
