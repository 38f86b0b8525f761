package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mzidar/adriatic-eod/internal/model"
	"github.com/mzidar/adriatic-eod/internal/registry"
	"github.com/mzidar/adriatic-eod/internal/source"
	"github.com/mzidar/adriatic-eod/internal/source/histapi"
	"github.com/mzidar/adriatic-eod/internal/source/vienna"
)

// Status is the terminal state of a run.
type Status int

const (
	Completed Status = iota
	Aborted
)

func (s Status) String() string {
	if s == Aborted {
		return "aborted"
	}
	return "completed"
}

// Outcome summarizes one run. It is handed to the Notifier and otherwise
// discarded; per-instrument failure detail lives only in the logs.
type Outcome struct {
	RunID    uuid.UUID
	Status   Status
	Err      error // abort cause, nil when Completed
	Started  time.Time
	Duration time.Duration

	Processed int // instruments with a record upserted
	Skipped   int // nothing new in window, or no usable source
	Failed    int // per-instrument failures (the run still completes)
}

// Success reports whether the run completed. Item failures do not make a
// run unsuccessful.
func (o Outcome) Success() bool { return o.Status == Completed }

// Notifier receives the outcome of every run.
type Notifier interface {
	Notify(ctx context.Context, o Outcome) error
}

// HistorySource fetches the most recent point for one instrument from a
// JSON history API. A (nil, nil) return means nothing traded in the window.
type HistorySource interface {
	SecurityHistory(ctx context.Context, isin string, w source.Window) (*histapi.SecurityRecord, error)
	IndexHistory(ctx context.Context, isin string, w source.Window) (*histapi.IndexRecord, error)
}

// ExportSource fetches the latest session row from the Vienna CSV export.
type ExportSource interface {
	DailyExport(ctx context.Context, webID string, day time.Time) (vienna.Row, error)
}

// Store is the persistence surface of one run.
type Store interface {
	UpsertDailyPrice(ctx context.Context, rec model.DailyPrice) error
	UpsertIndexValue(ctx context.Context, rec model.IndexValue) error
	UpdateInstrumentSnapshot(ctx context.Context, isin string, last, changePct *float64) error
	ResetInstrumentChange(ctx context.Context, isin string) error
}

// Session scopes one run's database access: acquired at run start and
// released on every exit path, normal or aborted.
type Session interface {
	Store
	Registry(ctx context.Context) (*registry.Snapshot, error)
	Release()
}

// SessionFactory hands out run-scoped sessions.
type SessionFactory interface {
	Acquire(ctx context.Context) (Session, error)
}
