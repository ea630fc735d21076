package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"marketscraper/internal/apperror"
	"marketscraper/internal/market"
)

// JSONFile buffers records and writes them as one indented JSON array on
// Flush, overwriting any previous file. Non-ASCII text is written as-is.
type JSONFile struct {
	path string

	mu      sync.Mutex
	records []market.Record
}

func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

func (s *JSONFile) Name() string { return "json" }

func (s *JSONFile) Store(_ context.Context, rec market.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

func (s *JSONFile) Flush(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.records
	if records == nil {
		records = []market.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return apperror.Wrap(apperror.Sink, fmt.Sprintf("encode %s", s.path), err)
	}

	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return apperror.Wrap(apperror.Sink, fmt.Sprintf("write %s", s.path), err)
	}
	return nil
}
