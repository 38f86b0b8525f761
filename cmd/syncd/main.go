package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

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

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting syncd",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"listen_addr", cfg.HTTP.ListenAddr,
		"cron", cfg.Schedule.Cron,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Connect to database
	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
	)

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	logger.Info("database connected")

	runner := buildRunner(cfg, pool, logger)

	// In-process scheduler. An empty expression leaves the HTTP trigger as
	// the only way to start a run.
	var sched *cron.Cron
	if cfg.Schedule.Cron != "" {
		sched = cron.New()
		_, err := sched.AddFunc(cfg.Schedule.Cron, func() {
			runner.Trigger(ctx)
		})
		if err != nil {
			logger.Error("invalid cron expression", "cron", cfg.Schedule.Cron, "error", err)
			os.Exit(1)
		}
		sched.Start()
		logger.Info("scheduler started", "cron", cfg.Schedule.Cron)
	}

	server := &http.Server{
		Addr:    cfg.HTTP.ListenAddr,
		Handler: newHandler(pool, runner, logger),
	}

	go func() {
		logger.Info("starting http server", "addr", cfg.HTTP.ListenAddr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
		}
	}()

	logger.Info("syncd running", "instance_id", cfg.Instance.ID)

	// Wait for shutdown
	<-ctx.Done()

	logger.Info("shutting down...")

	if sched != nil {
		<-sched.Stop().Done()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	server.Shutdown(shutdownCtx)

	logger.Info("syncd stopped")
}

// buildRunner wires the source clients, session factory and notifier.
func buildRunner(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) *pipeline.Runner {
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

	return pipeline.New(pipeline.Config{
		Zagreb:    zagreb,
		Ljubljana: ljubljana,
		Vienna:    wiener,
		Sessions:  store.NewFactory(pool, logger),
		Notifier:  notifier,
		Logger:    logger,
	})
}

// newHandler exposes the manual trigger and the health check.
func newHandler(pool *pgxpool.Pool, runner *pipeline.Runner, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /daily-update", func(w http.ResponseWriter, r *http.Request) {
		o := runner.Trigger(r.Context())

		w.Header().Set("Content-Type", "application/json")
		if !o.Success() {
			w.WriteHeader(http.StatusInternalServerError)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"run_id":    o.RunID.String(),
			"status":    o.Status.String(),
			"processed": o.Processed,
			"skipped":   o.Skipped,
			"failed":    o.Failed,
			"duration":  o.Duration.String(),
		})
	})

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := struct {
			Status     string         `json:"status"`
			Components map[string]any `json:"components"`
		}{
			Status:     "healthy",
			Components: make(map[string]any),
		}

		if err := pool.Ping(ctx); err != nil {
			health.Status = "unhealthy"
			health.Components["postgres"] = map[string]string{
				"status": "disconnected",
				"error":  err.Error(),
			}
		} else {
			health.Components["postgres"] = "connected"
		}

		if o, ok := runner.LastOutcome(); ok {
			health.Components["last_run"] = map[string]any{
				"run_id":    o.RunID.String(),
				"status":    o.Status.String(),
				"started":   o.Started.Format(time.RFC3339),
				"processed": o.Processed,
				"failed":    o.Failed,
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})

	return mux
}
