package market

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	domain "marketscraper/internal/market"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert stores one record and returns the auto-assigned row id.
func (r *Repository) Insert(ctx context.Context, rec domain.Record) (int64, error) {
	const query = `INSERT INTO market_data (
		symbol, source_url, captured_at,
		current_price, high_price, low_price, last_price, open_price,
		last_update_text
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		rec.Symbol,
		rec.SourceURL,
		rec.CapturedAt.Format(time.RFC3339),
		nullFloat(rec.CurrentPrice),
		nullFloat(rec.HighPrice),
		nullFloat(rec.LowPrice),
		nullFloat(rec.LastPrice),
		nullFloat(rec.OpenPrice),
		nullText(rec.LastUpdateText),
	)
	if err != nil {
		return 0, fmt.Errorf("insert record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// List returns the most recent records for a symbol, newest first.
func (r *Repository) List(ctx context.Context, symbol string, limit int) ([]domain.Record, error) {
	const query = `SELECT symbol, source_url, captured_at,
		current_price, high_price, low_price, last_price, open_price,
		last_update_text
		FROM market_data
		WHERE symbol = ?
		ORDER BY id DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []domain.Record
	for rows.Next() {
		var rec domain.Record
		var capturedStr string
		var current, high, low, last, open sql.NullFloat64
		var lastUpdate sql.NullString

		if err := rows.Scan(&rec.Symbol, &rec.SourceURL, &capturedStr,
			&current, &high, &low, &last, &open, &lastUpdate); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}

		rec.CapturedAt, _ = time.Parse(time.RFC3339, capturedStr)
		rec.CurrentPrice = decimalPtr(current)
		rec.HighPrice = decimalPtr(high)
		rec.LowPrice = decimalPtr(low)
		rec.LastPrice = decimalPtr(last)
		rec.OpenPrice = decimalPtr(open)
		if lastUpdate.Valid {
			rec.LastUpdateText = &lastUpdate.String
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func nullFloat(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.InexactFloat64()
}

func nullText(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func decimalPtr(f sql.NullFloat64) *decimal.Decimal {
	if !f.Valid {
		return nil
	}
	d := decimal.NewFromFloat(f.Float64)
	return &d
}
