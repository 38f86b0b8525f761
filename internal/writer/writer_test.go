package writer

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mzidar/adriatic-eod/internal/model"
)

type execCall struct {
	sql  string
	args []any
}

type fakeDB struct {
	calls []execCall
	err   error
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, execCall{sql: sql, args: args})
	return pgconn.NewCommandTag("UPDATE 1"), f.err
}

func f64(v float64) *float64 { return &v }

func sampleDailyPrice() model.DailyPrice {
	tm := "CT"
	eur := "EUR"
	trades := int64(17)
	return model.DailyPrice{
		ISIN:             "SI0031102120",
		Date:             time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		TradingModelID:   &tm,
		Open:             f64(10.5),
		High:             f64(11),
		Low:              f64(10.25),
		Last:             f64(10.8),
		VWAP:             f64(10.6),
		ChangePct:        f64(2.5),
		NumTrades:        &trades,
		Volume:           f64(1234),
		Turnover:         f64(13330),
		PriceCurrency:    &eur,
		TurnoverCurrency: &eur,
	}
}

func TestUpsertDailyPrice(t *testing.T) {
	db := &fakeDB{}
	w := New(db, nil)

	rec := sampleDailyPrice()
	if err := w.UpsertDailyPrice(context.Background(), rec); err != nil {
		t.Fatalf("UpsertDailyPrice failed: %v", err)
	}

	if len(db.calls) != 1 {
		t.Fatalf("got %d exec calls, want 1", len(db.calls))
	}
	call := db.calls[0]

	if !strings.Contains(call.sql, "ON CONFLICT (isin, date) DO UPDATE") {
		t.Error("upsert must resolve conflicts on (isin, date)")
	}
	// Every non-key column is overwritten from the incoming row.
	if n := strings.Count(call.sql, "EXCLUDED."); n != 12 {
		t.Errorf("conflict clause overwrites %d columns, want 12", n)
	}
	if len(call.args) != 14 {
		t.Fatalf("got %d args, want 14", len(call.args))
	}
	if call.args[0] != "SI0031102120" {
		t.Errorf("args[0] = %v, want isin", call.args[0])
	}
}

func TestUpsertDailyPrice_NilsArePassedThrough(t *testing.T) {
	db := &fakeDB{}
	w := New(db, nil)

	// A Vienna record: vwap and num_trades unavailable, must be written as
	// NULL rather than kept from a previous ingestion.
	rec := sampleDailyPrice()
	rec.VWAP = nil
	rec.NumTrades = nil

	if err := w.UpsertDailyPrice(context.Background(), rec); err != nil {
		t.Fatalf("UpsertDailyPrice failed: %v", err)
	}

	args := db.calls[0].args
	if args[7] != (*float64)(nil) {
		t.Errorf("vwap arg = %v, want nil", args[7])
	}
	if args[9] != (*int64)(nil) {
		t.Errorf("num_trades arg = %v, want nil", args[9])
	}
}

func TestUpsertDailyPrice_Idempotent(t *testing.T) {
	db := &fakeDB{}
	w := New(db, nil)

	rec := sampleDailyPrice()
	if err := w.UpsertDailyPrice(context.Background(), rec); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if err := w.UpsertDailyPrice(context.Background(), rec); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	// Same record, same statement, same arguments: the second write leaves
	// the row exactly as the first did.
	if db.calls[0].sql != db.calls[1].sql {
		t.Error("statements differ between identical upserts")
	}
	if !reflect.DeepEqual(db.calls[0].args, db.calls[1].args) {
		t.Errorf("args differ between identical upserts:\n%v\n%v", db.calls[0].args, db.calls[1].args)
	}
}

func TestUpsertIndexValue(t *testing.T) {
	db := &fakeDB{}
	w := New(db, nil)

	rec := model.IndexValue{
		ISIN:      "SI0026109882",
		Date:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Open:      f64(1250.1),
		Last:      f64(1255.2),
		ChangePct: f64(0.4),
	}
	if err := w.UpsertIndexValue(context.Background(), rec); err != nil {
		t.Fatalf("UpsertIndexValue failed: %v", err)
	}

	call := db.calls[0]
	if !strings.Contains(call.sql, "index_value_records") {
		t.Error("index record must go to index_value_records")
	}
	if !strings.Contains(call.sql, "ON CONFLICT (isin, date) DO UPDATE") {
		t.Error("upsert must resolve conflicts on (isin, date)")
	}
	if len(call.args) != 8 {
		t.Errorf("got %d args, want 8", len(call.args))
	}
	if call.args[3] != (*float64)(nil) {
		t.Errorf("high arg = %v, want nil", call.args[3])
	}
}

func TestUpdateInstrumentSnapshot(t *testing.T) {
	db := &fakeDB{}
	w := New(db, nil)

	if err := w.UpdateInstrumentSnapshot(context.Background(), "SI0031102120", f64(10.8), f64(2.5)); err != nil {
		t.Fatalf("UpdateInstrumentSnapshot failed: %v", err)
	}

	call := db.calls[0]
	if !strings.Contains(call.sql, "UPDATE instruments") {
		t.Error("snapshot update must target instruments")
	}
	if call.args[0] != "SI0031102120" {
		t.Errorf("args[0] = %v, want isin", call.args[0])
	}
	if *(call.args[1].(*float64)) != 10.8 || *(call.args[2].(*float64)) != 2.5 {
		t.Errorf("snapshot args = %v", call.args[1:])
	}
}

func TestResetInstrumentChange(t *testing.T) {
	db := &fakeDB{}
	w := New(db, nil)

	if err := w.ResetInstrumentChange(context.Background(), "HRHT00RA0005"); err != nil {
		t.Fatalf("ResetInstrumentChange failed: %v", err)
	}

	call := db.calls[0]
	if !strings.Contains(call.sql, "change_prev_close_percentage = 0") {
		t.Error("reset must zero the change percentage")
	}
	if !reflect.DeepEqual(call.args, []any{"HRHT00RA0005"}) {
		t.Errorf("args = %v, want [HRHT00RA0005]", call.args)
	}
}

func TestWriter_ExecErrorIsWrapped(t *testing.T) {
	db := &fakeDB{err: errors.New("connection lost")}
	w := New(db, nil)

	err := w.UpsertDailyPrice(context.Background(), sampleDailyPrice())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "SI0031102120") {
		t.Errorf("error %q does not name the instrument", err)
	}
}
