package batch

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"marketscraper/internal/apperror"
	"marketscraper/internal/market"
)

// Scraper produces one record per symbol.
type Scraper interface {
	Scrape(ctx context.Context, symbol string) (market.Record, error)
}

// Sink is a destination for assembled records. Store may buffer; Flush is
// called once after every record has been offered.
type Sink interface {
	Name() string
	Store(ctx context.Context, rec market.Record) error
	Flush(ctx context.Context) error
}

// SymbolError is a per-symbol scrape failure kept in the batch result.
type SymbolError struct {
	Symbol string
	Code   apperror.Code
	Err    error
}

// SinkError is a per-delivery failure. Symbol is empty for flush failures.
type SinkError struct {
	Sink   string
	Symbol string
	Err    error
}

// Result summarizes one batch run. Records holds only fully assembled
// records, in input symbol order.
type Result struct {
	Records    []market.Record
	Failures   []SymbolError
	Delivered  map[string]int
	SinkErrors []SinkError
}

// OK reports whether the run completed without any symbol or sink failure.
func (r Result) OK() bool {
	return len(r.Failures) == 0 && len(r.SinkErrors) == 0
}

// Orchestrator runs the configured symbols through the scraper and fans the
// resulting records out to the sinks. One symbol's failure never aborts the
// batch, and one sink's failure never blocks the other sinks.
type Orchestrator struct {
	scraper Scraper
	sinks   []Sink
	workers int
}

func NewOrchestrator(scraper Scraper, sinks []Sink, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		scraper: scraper,
		sinks:   sinks,
		workers: 1,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type Option func(*Orchestrator)

func WithWorkers(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.workers = n
		}
	}
}

// Run scrapes every symbol and delivers the successes to each sink. Sink
// writes happen after all scraping is done, serialized, so file output is
// deterministic for a given symbol order regardless of worker count.
func (o *Orchestrator) Run(ctx context.Context, symbols []string) Result {
	type outcome struct {
		rec market.Record
		err error
	}
	outcomes := make([]outcome, len(symbols))

	// Workers never return an error from the group: a failed symbol is
	// recorded in its slot and must not cancel in-flight siblings.
	g := new(errgroup.Group)
	g.SetLimit(o.workers)

	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			rec, err := o.scraper.Scrape(ctx, symbol)
			if err != nil {
				slog.Error("scrape failed", "symbol", symbol, "error", err)
			}
			outcomes[i] = outcome{rec: rec, err: err}
			return nil
		})
	}
	_ = g.Wait()

	res := Result{Delivered: make(map[string]int, len(o.sinks))}
	for _, s := range o.sinks {
		res.Delivered[s.Name()] = 0
	}

	for i, out := range outcomes {
		if out.err != nil {
			res.Failures = append(res.Failures, SymbolError{
				Symbol: symbols[i],
				Code:   apperror.CodeOf(out.err),
				Err:    out.err,
			})
			continue
		}
		res.Records = append(res.Records, out.rec)
	}

	for _, rec := range res.Records {
		for _, s := range o.sinks {
			if err := s.Store(ctx, rec); err != nil {
				slog.Error("sink store failed", "sink", s.Name(), "symbol", rec.Symbol, "error", err)
				res.SinkErrors = append(res.SinkErrors, SinkError{Sink: s.Name(), Symbol: rec.Symbol, Err: err})
				continue
			}
			res.Delivered[s.Name()]++
		}
	}

	for _, s := range o.sinks {
		if err := s.Flush(ctx); err != nil {
			slog.Error("sink flush failed", "sink", s.Name(), "error", err)
			res.SinkErrors = append(res.SinkErrors, SinkError{Sink: s.Name(), Err: err})
			// A failed flush means nothing durable was written for this sink.
			res.Delivered[s.Name()] = 0
		}
	}

	return res
}
