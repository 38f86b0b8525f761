// Command syncrun executes a single sync run and exits. It exists for
// cron-outside-the-process setups and for manual catch-up after downtime.
// The exit code reflects only run abortion; per-instrument failures are
// reported in the logs and the outcome summary.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mzidar/adriatic-eod/internal/config"
	"github.com/mzidar/adriatic-eod/internal/database"
	"github.com/mzidar/adriatic-eod/internal/notify"
	"github.com/mzidar/adriatic-eod/internal/pipeline"
	"github.com/mzidar/adriatic-eod/internal/source/histapi"
	"github.com/mzidar/adriatic-eod/internal/source/vienna"
	"github.com/mzidar/adriatic-eod/internal/store"
	"github.com/mzidar/adriatic-eod/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/syncd.local.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting syncrun",
		"version", version.Version,
		"config", *configPath,
	)

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	zagreb := histapi.NewClient(cfg.Sources.Zagreb.BaseURL, cfg.Sources.Zagreb.MIC,
		histapi.WithTimeout(cfg.Sources.Zagreb.Timeout),
		histapi.WithLogger(logger),
	)
	ljubljana := histapi.NewClient(cfg.Sources.Ljubljana.BaseURL, cfg.Sources.Ljubljana.MIC,
		histapi.WithTimeout(cfg.Sources.Ljubljana.Timeout),
		histapi.WithLogger(logger),
	)
	wiener := vienna.NewClient(cfg.Sources.Vienna.BaseURL,
		vienna.WithTimeout(cfg.Sources.Vienna.Timeout),
		vienna.WithLogger(logger),
	)

	var notifier pipeline.Notifier
	if cfg.SMTP.Enabled() {
		notifier = notify.NewMailer(cfg.SMTP, logger)
	} else {
		notifier = notify.LogNotifier{Logger: logger}
	}

	runner := pipeline.New(pipeline.Config{
		Zagreb:    zagreb,
		Ljubljana: ljubljana,
		Vienna:    wiener,
		Sessions:  store.NewFactory(pool, logger),
		Notifier:  notifier,
		Logger:    logger,
	})

	o := runner.Trigger(ctx)
	if !o.Success() {
		os.Exit(1)
	}
}
