package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"marketscraper/internal/batch"
	"marketscraper/internal/config"
	"marketscraper/internal/market"
	"marketscraper/internal/platform/sqlite"
	marketrepo "marketscraper/internal/repository/market"
	"marketscraper/internal/scrape"
	"marketscraper/internal/sink"
)

func main() {
	saveDB := flag.Bool("save-db", false, "persist records to the sqlite store")
	writeCSV := flag.Bool("csv", false, "also write a csv export")
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Root context: cancelled on SIGINT/SIGTERM so in-flight fetches stop
	// promptly instead of running the batch to completion.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fetcher := scrape.NewFetcher(
		scrape.WithBaseURL(cfg.BaseURL),
		scrape.WithTimeout(cfg.HTTPTimeout),
	)
	scraper := scrape.New(fetcher)

	sinks := []batch.Sink{sink.NewJSONFile(cfg.OutputPath)}
	if *writeCSV {
		sinks = append(sinks, sink.NewCSVFile(cfg.CSVPath))
	}
	if *saveDB {
		db, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()
		sinks = append(sinks, sink.NewStore(marketrepo.NewRepository(db.DB)))
	}

	orch := batch.NewOrchestrator(scraper, sinks, batch.WithWorkers(cfg.Workers))

	fmt.Printf("Processing symbols: %v\n", cfg.Symbols)
	res := orch.Run(ctx, cfg.Symbols)

	for _, rec := range res.Records {
		fmt.Printf("✓ %s scraped from %s\n", rec.Symbol, rec.SourceURL)
	}
	for _, f := range res.Failures {
		fmt.Printf("✗ %s failed (%s): %v\n", f.Symbol, f.Code, f.Err)
	}
	for _, se := range res.SinkErrors {
		fmt.Printf("✗ sink %s failed for %q: %v\n", se.Sink, se.Symbol, se.Err)
	}

	fmt.Printf("\nScraped %d of %d symbols\n", len(res.Records), len(cfg.Symbols))
	for _, s := range sinks {
		fmt.Printf("Delivered %d records to %s\n", res.Delivered[s.Name()], s.Name())
	}

	records := res.Records
	if records == nil {
		records = []market.Record{}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	_ = enc.Encode(records)

	if !res.OK() {
		os.Exit(1)
	}
}
