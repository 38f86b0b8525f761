package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/mzidar/adriatic-eod/internal/model"
	"github.com/mzidar/adriatic-eod/internal/normalize"
	"github.com/mzidar/adriatic-eod/internal/source"
)

// Config wires a Runner.
type Config struct {
	Zagreb    HistorySource
	Ljubljana HistorySource
	Vienna    ExportSource
	Sessions  SessionFactory
	Notifier  Notifier
	Logger    *slog.Logger
	Now       func() time.Time // injectable clock, defaults to time.Now
}

// Runner executes sync runs.
type Runner struct {
	zagreb    HistorySource
	ljubljana HistorySource
	vienna    ExportSource
	sessions  SessionFactory
	notifier  Notifier
	logger    *slog.Logger
	now       func() time.Time

	group singleflight.Group

	mu   sync.Mutex
	last *Outcome
}

// New creates a Runner.
func New(cfg Config) *Runner {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Runner{
		zagreb:    cfg.Zagreb,
		ljubljana: cfg.Ljubljana,
		vienna:    cfg.Vienna,
		sessions:  cfg.Sessions,
		notifier:  cfg.Notifier,
		logger:    logger,
		now:       now,
	}
}

// Trigger executes a run. Overlapping triggers, from the HTTP endpoint or
// the scheduler, collapse into the run already in flight and share its
// outcome.
func (r *Runner) Trigger(ctx context.Context) Outcome {
	v, _, _ := r.group.Do("daily-sync", func() (any, error) {
		return r.run(ctx), nil
	})
	return v.(Outcome)
}

// LastOutcome returns the most recent run outcome, if any.
func (r *Runner) LastOutcome() (Outcome, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil {
		return Outcome{}, false
	}
	return *r.last, true
}

func (r *Runner) run(ctx context.Context) Outcome {
	o := Outcome{RunID: uuid.New(), Started: r.now()}
	log := r.logger.With("run_id", o.RunID)
	log.Info("sync run started")

	sess, err := r.sessions.Acquire(ctx)
	if err != nil {
		return r.abort(ctx, log, o, fmt.Errorf("acquire session: %w", err))
	}
	defer sess.Release()

	snap, err := sess.Registry(ctx)
	if err != nil {
		return r.abort(ctx, log, o, fmt.Errorf("load registry: %w", err))
	}

	w := source.TwoDayWindow(r.now())

	for _, inst := range snap.Equities() {
		r.syncEquity(ctx, log, sess, inst, w, &o)
	}
	for _, inst := range snap.Indices() {
		r.syncIndex(ctx, log, sess, inst, w, &o)
	}

	o.Status = Completed
	o.Duration = time.Since(o.Started)
	log.Info("sync run completed",
		"processed", o.Processed,
		"skipped", o.Skipped,
		"failed", o.Failed,
		"duration", o.Duration,
	)

	r.notify(ctx, log, o)
	r.record(o)
	return o
}

func (r *Runner) abort(ctx context.Context, log *slog.Logger, o Outcome, cause error) Outcome {
	o.Status = Aborted
	o.Err = cause
	o.Duration = time.Since(o.Started)
	log.Error("sync run aborted", "error", cause)

	r.notify(ctx, log, o)
	r.record(o)
	return o
}

func (r *Runner) syncEquity(ctx context.Context, log *slog.Logger, sess Session, inst model.Instrument, w source.Window, o *Outcome) {
	switch inst.Source {
	case model.SourceZagreb:
		r.equityFromHistory(ctx, log, sess, r.zagreb, inst, w, o)
	case model.SourceLjubljana:
		r.equityFromHistory(ctx, log, sess, r.ljubljana, inst, w, o)
	case model.SourceVienna:
		r.equityFromExport(ctx, log, sess, inst, o)
	default:
		log.Warn("skipping unsourced instrument", "isin", inst.ISIN)
		o.Skipped++
	}
}

func (r *Runner) equityFromHistory(ctx context.Context, log *slog.Logger, sess Session, src HistorySource, inst model.Instrument, w source.Window, o *Outcome) {
	point, err := src.SecurityHistory(ctx, inst.ISIN, w)
	if err != nil {
		r.itemFailed(ctx, log, sess, inst.ISIN, err, o)
		return
	}
	if point == nil {
		log.Debug("nothing new in window", "isin", inst.ISIN)
		o.Skipped++
		return
	}

	rec, err := normalize.EquityFromHistory(point, inst)
	if err != nil {
		r.itemFailed(ctx, log, sess, inst.ISIN, source.Malformedf("normalize: %w", err), o)
		return
	}
	r.persistEquity(ctx, log, sess, inst, rec, o)
}

func (r *Runner) equityFromExport(ctx context.Context, log *slog.Logger, sess Session, inst model.Instrument, o *Outcome) {
	row, err := r.vienna.DailyExport(ctx, *inst.WebID, r.now())
	if err != nil {
		r.itemFailed(ctx, log, sess, inst.ISIN, err, o)
		return
	}

	rec := normalize.EquityFromExport(row, inst, r.now())
	r.persistEquity(ctx, log, sess, inst, rec, o)
}

func (r *Runner) persistEquity(ctx context.Context, log *slog.Logger, sess Session, inst model.Instrument, rec model.DailyPrice, o *Outcome) {
	if err := sess.UpsertDailyPrice(ctx, rec); err != nil {
		r.itemFailed(ctx, log, sess, inst.ISIN, err, o)
		return
	}
	if err := sess.UpdateInstrumentSnapshot(ctx, inst.ISIN, rec.Last, rec.ChangePct); err != nil {
		r.itemFailed(ctx, log, sess, inst.ISIN, err, o)
		return
	}

	o.Processed++
	log.Info("record saved", "isin", inst.ISIN, "date", rec.Date.Format("2006-01-02"))
}

func (r *Runner) syncIndex(ctx context.Context, log *slog.Logger, sess Session, inst model.Instrument, w source.Window, o *Outcome) {
	var src HistorySource
	switch inst.Source {
	case model.SourceZagreb:
		src = r.zagreb
	case model.SourceLjubljana:
		src = r.ljubljana
	default:
		log.Warn("skipping unsourced instrument", "isin", inst.ISIN)
		o.Skipped++
		return
	}

	point, err := src.IndexHistory(ctx, inst.ISIN, w)
	if err != nil {
		r.itemFailed(ctx, log, sess, inst.ISIN, err, o)
		return
	}
	if point == nil {
		log.Debug("nothing new in window", "isin", inst.ISIN)
		o.Skipped++
		return
	}

	rec, err := normalize.IndexFromHistory(point, inst)
	if err != nil {
		r.itemFailed(ctx, log, sess, inst.ISIN, source.Malformedf("normalize: %w", err), o)
		return
	}

	if err := sess.UpsertIndexValue(ctx, rec); err != nil {
		r.itemFailed(ctx, log, sess, inst.ISIN, err, o)
		return
	}
	if err := sess.UpdateInstrumentSnapshot(ctx, inst.ISIN, rec.Last, rec.ChangePct); err != nil {
		r.itemFailed(ctx, log, sess, inst.ISIN, err, o)
		return
	}

	o.Processed++
	log.Info("record saved", "isin", inst.ISIN, "date", rec.Date.Format("2006-01-02"))
}

// itemFailed recovers a per-instrument failure: log by kind, zero the
// instrument's denormalized change percentage so readers see "no fresh
// comparison" rather than a stale value, and let the batch continue.
func (r *Runner) itemFailed(ctx context.Context, log *slog.Logger, sess Session, isin string, err error, o *Outcome) {
	var fe *source.FetchError
	if errors.As(err, &fe) && fe.Kind == source.ClientRejected {
		log.Warn("provider rejected request, skipping", "isin", isin, "error", err)
	} else {
		log.Error("instrument sync failed", "isin", isin, "error", err)
	}

	if rerr := sess.ResetInstrumentChange(ctx, isin); rerr != nil {
		log.Error("reset change percentage failed", "isin", isin, "error", rerr)
	}
	o.Failed++
}

func (r *Runner) notify(ctx context.Context, log *slog.Logger, o Outcome) {
	if r.notifier == nil {
		return
	}
	if err := r.notifier.Notify(ctx, o); err != nil {
		log.Error("outcome notification failed", "error", err)
	}
}

func (r *Runner) record(o Outcome) {
	r.mu.Lock()
	r.last = &o
	r.mu.Unlock()
}
