package sink

import (
	"context"
	"fmt"
	"log/slog"

	"marketscraper/internal/apperror"
	"marketscraper/internal/market"
	marketrepo "marketscraper/internal/repository/market"
)

// Store delivers records to the relational store, one row per record.
type Store struct {
	repo *marketrepo.Repository
}

func NewStore(repo *marketrepo.Repository) *Store {
	return &Store{repo: repo}
}

func (s *Store) Name() string { return "sqlite" }

func (s *Store) Store(ctx context.Context, rec market.Record) error {
	id, err := s.repo.Insert(ctx, rec)
	if err != nil {
		return apperror.Wrap(apperror.Sink, fmt.Sprintf("store %s", rec.Symbol), err)
	}
	slog.Info("record stored", "symbol", rec.Symbol, "id", id)
	return nil
}

// Flush is a no-op: rows are written as they arrive.
func (s *Store) Flush(context.Context) error { return nil }
