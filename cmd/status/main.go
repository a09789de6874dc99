package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dhvll/status/internal/config"
	"github.com/dhvll/status/internal/job"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	watch := flag.Bool("watch", false, "stay running and re-run whenever the observation log changes")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	// The delivery endpoint must resolve before anything is read or
	// written: with no way to alert, there is nothing useful to do.
	if cfg.Job.Webhook.URL() == "" {
		slog.Error("webhook URL is not set", "env", cfg.Job.Webhook.URLEnv)
		os.Exit(1)
	}

	slog.Info("status starting",
		"observation_log", cfg.Job.ObservationLog,
		"ledger", cfg.Job.LedgerPath,
		"threshold", cfg.Job.AlertThreshold,
		"webhook_type", cfg.Job.Webhook.Type,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	j := job.New(cfg)

	if *watch || cfg.Job.Watch.Enabled {
		if err := j.Watch(ctx); err != nil {
			slog.Error("watch mode stopped", "err", err)
			os.Exit(1)
		}
		slog.Info("status shutting down")
		return
	}

	if err := j.Run(ctx); err != nil {
		slog.Error("run failed", "err", err)
		os.Exit(1)
	}
}
