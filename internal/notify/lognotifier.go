package notify

import (
	"context"
	"log/slog"

	"github.com/mzidar/adriatic-eod/internal/pipeline"
)

// LogNotifier reports outcomes to the log only.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(ctx context.Context, o pipeline.Outcome) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if o.Success() {
		logger.Info("run outcome",
			"run_id", o.RunID,
			"status", o.Status,
			"processed", o.Processed,
			"skipped", o.Skipped,
			"failed", o.Failed,
		)
		return nil
	}

	logger.Error("run outcome",
		"run_id", o.RunID,
		"status", o.Status,
		"error", o.Err,
	)
	return nil
}
