package registry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/mzidar/adriatic-eod/internal/model"
)

// Querier is the slice of pgx the registry needs. Both *pgxpool.Pool and
// *pgxpool.Conn satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Snapshot is one run's read-only view of the tracked instruments.
type Snapshot struct {
	equities []model.Instrument
	indices  []model.Instrument
}

// Equities returns tracked equities in stable ISIN order.
func (s *Snapshot) Equities() []model.Instrument { return s.equities }

// Indices returns tracked indices in stable ISIN order.
func (s *Snapshot) Indices() []model.Instrument { return s.indices }

const listInstrumentsSQL = `
SELECT isin, mic, symbol, market_class, web_id, last_price, change_prev_close_percentage
FROM instruments
ORDER BY isin
`

// Load reads all tracked instruments and resolves their source routing.
func Load(ctx context.Context, q Querier, logger *slog.Logger) (*Snapshot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	rows, err := q.Query(ctx, listInstrumentsSQL)
	if err != nil {
		return nil, fmt.Errorf("list instruments: %w", err)
	}
	defer rows.Close()

	var instruments []model.Instrument
	for rows.Next() {
		var inst model.Instrument
		if err := rows.Scan(&inst.ISIN, &inst.MIC, &inst.Symbol, &inst.Class,
			&inst.WebID, &inst.LastPrice, &inst.ChangePct); err != nil {
			return nil, fmt.Errorf("scan instrument: %w", err)
		}
		instruments = append(instruments, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read instruments: %w", err)
	}

	return NewSnapshot(instruments, logger), nil
}

// NewSnapshot builds a snapshot from already-loaded instruments, resolving
// each one's source routing.
func NewSnapshot(instruments []model.Instrument, logger *slog.Logger) *Snapshot {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Snapshot{}
	for _, inst := range instruments {
		inst.Source = resolveSource(inst)
		if inst.Source == model.SourceNone {
			logger.Warn("instrument has no usable source",
				"isin", inst.ISIN,
				"class", inst.Class,
			)
		}
		switch inst.Class {
		case model.ClassIndex:
			s.indices = append(s.indices, inst)
		default:
			s.equities = append(s.equities, inst)
		}
	}
	return s
}

// resolveSource decides the routing for one instrument. The Vienna export
// only works for equities carrying the venue's web path identifier.
func resolveSource(inst model.Instrument) model.Source {
	switch {
	case strings.HasPrefix(inst.ISIN, "HR"):
		return model.SourceZagreb
	case strings.HasPrefix(inst.ISIN, "SI"):
		return model.SourceLjubljana
	case strings.HasPrefix(inst.ISIN, "AT") &&
		inst.Class == model.ClassEquity &&
		inst.WebID != nil && *inst.WebID != "":
		return model.SourceVienna
	default:
		return model.SourceNone
	}
}
