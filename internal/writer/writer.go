package writer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mzidar/adriatic-eod/internal/model"
)

// DB is the slice of pgx the writer needs. Both *pgxpool.Pool and
// *pgxpool.Conn satisfy it.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Writer persists canonical records and keeps the instruments table's
// denormalized snapshot in step with them.
type Writer struct {
	db     DB
	logger *slog.Logger
}

// New creates a Writer over the given database handle.
func New(db DB, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{db: db, logger: logger}
}

const upsertDailyPriceSQL = `
INSERT INTO daily_price_records (
	isin, date, trading_model_id, open_price, high_price, low_price,
	last_price, vwap_price, change_prev_close_percentage, num_trades,
	volume, turnover, price_currency, turnover_currency
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
ON CONFLICT (isin, date) DO UPDATE SET
	trading_model_id = EXCLUDED.trading_model_id,
	open_price = EXCLUDED.open_price,
	high_price = EXCLUDED.high_price,
	low_price = EXCLUDED.low_price,
	last_price = EXCLUDED.last_price,
	vwap_price = EXCLUDED.vwap_price,
	change_prev_close_percentage = EXCLUDED.change_prev_close_percentage,
	num_trades = EXCLUDED.num_trades,
	volume = EXCLUDED.volume,
	turnover = EXCLUDED.turnover,
	price_currency = EXCLUDED.price_currency,
	turnover_currency = EXCLUDED.turnover_currency
`

// UpsertDailyPrice writes one equity record, overwriting any existing row
// for the same (isin, date).
func (w *Writer) UpsertDailyPrice(ctx context.Context, rec model.DailyPrice) error {
	_, err := w.db.Exec(ctx, upsertDailyPriceSQL,
		rec.ISIN, rec.Date, rec.TradingModelID, rec.Open, rec.High, rec.Low,
		rec.Last, rec.VWAP, rec.ChangePct, rec.NumTrades,
		rec.Volume, rec.Turnover, rec.PriceCurrency, rec.TurnoverCurrency,
	)
	if err != nil {
		return fmt.Errorf("upsert daily price %s/%s: %w", rec.ISIN, rec.Date.Format("2006-01-02"), err)
	}
	return nil
}

const upsertIndexValueSQL = `
INSERT INTO index_value_records (
	isin, date, open_value, high_value, low_value, last_value,
	change_prev_close_percentage, turnover
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (isin, date) DO UPDATE SET
	open_value = EXCLUDED.open_value,
	high_value = EXCLUDED.high_value,
	low_value = EXCLUDED.low_value,
	last_value = EXCLUDED.last_value,
	change_prev_close_percentage = EXCLUDED.change_prev_close_percentage,
	turnover = EXCLUDED.turnover
`

// UpsertIndexValue writes one index record, overwriting any existing row
// for the same (isin, date).
func (w *Writer) UpsertIndexValue(ctx context.Context, rec model.IndexValue) error {
	_, err := w.db.Exec(ctx, upsertIndexValueSQL,
		rec.ISIN, rec.Date, rec.Open, rec.High, rec.Low, rec.Last,
		rec.ChangePct, rec.Turnover,
	)
	if err != nil {
		return fmt.Errorf("upsert index value %s/%s: %w", rec.ISIN, rec.Date.Format("2006-01-02"), err)
	}
	return nil
}

const updateSnapshotSQL = `
UPDATE instruments
SET last_price = $2, change_prev_close_percentage = $3
WHERE isin = $1
`

// UpdateInstrumentSnapshot mirrors a freshly ingested record's last
// price/value and change percentage onto the instrument row.
func (w *Writer) UpdateInstrumentSnapshot(ctx context.Context, isin string, last, changePct *float64) error {
	_, err := w.db.Exec(ctx, updateSnapshotSQL, isin, last, changePct)
	if err != nil {
		return fmt.Errorf("update instrument snapshot %s: %w", isin, err)
	}
	return nil
}

const resetChangeSQL = `
UPDATE instruments
SET change_prev_close_percentage = 0
WHERE isin = $1
`

// ResetInstrumentChange zeroes the denormalized change percentage. Called
// when an instrument's sync fails, so readers see "no fresh comparison"
// instead of a stale percentage.
func (w *Writer) ResetInstrumentChange(ctx context.Context, isin string) error {
	_, err := w.db.Exec(ctx, resetChangeSQL, isin)
	if err != nil {
		return fmt.Errorf("reset instrument change %s: %w", isin, err)
	}
	return nil
}
