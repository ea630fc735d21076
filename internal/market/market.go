package market

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices serialize as JSON numbers, matching the file format consumers
	// already parse.
	decimal.MarshalJSONWithoutQuotes = true
}

// Record is one normalized price snapshot for a single symbol. Price fields
// and LastUpdateText are nil when the source page did not carry them; a nil
// field is distinct from a zero price.
type Record struct {
	Symbol         string
	SourceURL      string
	CapturedAt     time.Time
	CurrentPrice   *decimal.Decimal
	HighPrice      *decimal.Decimal
	LowPrice       *decimal.Decimal
	LastPrice      *decimal.Decimal
	OpenPrice      *decimal.Decimal
	LastUpdateText *string
}

type recordData struct {
	CurrentPrice   *decimal.Decimal `json:"currentPrice"`
	HighPrice      *decimal.Decimal `json:"highPrice"`
	LowPrice       *decimal.Decimal `json:"lowPrice"`
	LastPrice      *decimal.Decimal `json:"lastPrice"`
	OpenPrice      *decimal.Decimal `json:"openPrice"`
	LastUpdateText *string          `json:"lastUpdateText"`
}

type recordJSON struct {
	Symbol     string     `json:"symbol"`
	SourceURL  string     `json:"sourceUrl"`
	CapturedAt time.Time  `json:"capturedAt"`
	Data       recordData `json:"data"`
}

// MarshalJSON nests the price fields under a "data" object. Absent fields
// serialize as null rather than being omitted.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		Symbol:     r.Symbol,
		SourceURL:  r.SourceURL,
		CapturedAt: r.CapturedAt,
		Data: recordData{
			CurrentPrice:   r.CurrentPrice,
			HighPrice:      r.HighPrice,
			LowPrice:       r.LowPrice,
			LastPrice:      r.LastPrice,
			OpenPrice:      r.OpenPrice,
			LastUpdateText: r.LastUpdateText,
		},
	})
}

func (r *Record) UnmarshalJSON(b []byte) error {
	var rj recordJSON
	if err := json.Unmarshal(b, &rj); err != nil {
		return err
	}
	*r = Record{
		Symbol:         rj.Symbol,
		SourceURL:      rj.SourceURL,
		CapturedAt:     rj.CapturedAt,
		CurrentPrice:   rj.Data.CurrentPrice,
		HighPrice:      rj.Data.HighPrice,
		LowPrice:       rj.Data.LowPrice,
		LastPrice:      rj.Data.LastPrice,
		OpenPrice:      rj.Data.OpenPrice,
		LastUpdateText: rj.Data.LastUpdateText,
	}
	return nil
}
