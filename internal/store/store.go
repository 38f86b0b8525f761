// Package store bridges the pgx pool to the pipeline's session contract.
//
// A session wraps one pooled connection held for a whole run: acquired at
// run start, released on every exit path. Two concurrent runs would hold
// two distinct connections; their upserts race safely because upserts on
// the same (isin, date) are idempotent and commutative.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mzidar/adriatic-eod/internal/model"
	"github.com/mzidar/adriatic-eod/internal/pipeline"
	"github.com/mzidar/adriatic-eod/internal/registry"
	"github.com/mzidar/adriatic-eod/internal/writer"
)

// Factory hands out run-scoped sessions backed by a pgx pool.
type Factory struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewFactory creates a session factory.
func NewFactory(pool *pgxpool.Pool, logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{pool: pool, logger: logger}
}

// Acquire takes one connection from the pool for the run's duration.
func (f *Factory) Acquire(ctx context.Context) (pipeline.Session, error) {
	conn, err := f.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return &session{
		conn:   conn,
		writer: writer.New(conn, f.logger),
		logger: f.logger,
	}, nil
}

type session struct {
	conn   *pgxpool.Conn
	writer *writer.Writer
	logger *slog.Logger
}

func (s *session) Registry(ctx context.Context) (*registry.Snapshot, error) {
	return registry.Load(ctx, s.conn, s.logger)
}

func (s *session) UpsertDailyPrice(ctx context.Context, rec model.DailyPrice) error {
	return s.writer.UpsertDailyPrice(ctx, rec)
}

func (s *session) UpsertIndexValue(ctx context.Context, rec model.IndexValue) error {
	return s.writer.UpsertIndexValue(ctx, rec)
}

func (s *session) UpdateInstrumentSnapshot(ctx context.Context, isin string, last, changePct *float64) error {
	return s.writer.UpdateInstrumentSnapshot(ctx, isin, last, changePct)
}

func (s *session) ResetInstrumentChange(ctx context.Context, isin string) error {
	return s.writer.ResetInstrumentChange(ctx, isin)
}

func (s *session) Release() {
	s.conn.Release()
}
