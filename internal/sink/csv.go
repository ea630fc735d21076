package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"marketscraper/internal/apperror"
	"marketscraper/internal/market"
)

var csvHeader = []string{
	"symbol", "source_url", "captured_at",
	"current_price", "high_price", "low_price", "last_price", "open_price",
	"last_update",
}

// CSVFile writes records as a flat CSV export on Flush, overwriting any
// previous file. Absent fields become empty cells.
type CSVFile struct {
	path string

	mu      sync.Mutex
	records []market.Record
}

func NewCSVFile(path string) *CSVFile {
	return &CSVFile{path: path}
}

func (s *CSVFile) Name() string { return "csv" }

func (s *CSVFile) Store(_ context.Context, rec market.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

func (s *CSVFile) Flush(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Create(s.path)
	if err != nil {
		return apperror.Wrap(apperror.Sink, fmt.Sprintf("create %s", s.path), err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return apperror.Wrap(apperror.Sink, fmt.Sprintf("write %s", s.path), err)
	}
	for _, rec := range s.records {
		row := []string{
			rec.Symbol,
			rec.SourceURL,
			rec.CapturedAt.Format(time.RFC3339),
			decimalCell(rec.CurrentPrice),
			decimalCell(rec.HighPrice),
			decimalCell(rec.LowPrice),
			decimalCell(rec.LastPrice),
			decimalCell(rec.OpenPrice),
			textCell(rec.LastUpdateText),
		}
		if err := w.Write(row); err != nil {
			return apperror.Wrap(apperror.Sink, fmt.Sprintf("write %s", s.path), err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return apperror.Wrap(apperror.Sink, fmt.Sprintf("flush %s", s.path), err)
	}
	return nil
}

func decimalCell(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func textCell(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
