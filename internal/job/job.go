package job

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dhvll/status/internal/alerts"
	"github.com/dhvll/status/internal/config"
	"github.com/dhvll/status/internal/ledger"
	"github.com/dhvll/status/internal/metrics"
	"github.com/dhvll/status/internal/obslog"
	"github.com/dhvll/status/internal/outage"
)

// Job runs the outage alerting pipeline against one configuration.
type Job struct {
	cfg        *config.Config
	dispatcher *alerts.Dispatcher
	now        func() time.Time // injectable for deterministic tests
}

// New creates a Job from the loaded configuration.
func New(cfg *config.Config) *Job {
	return &Job{
		cfg:        cfg,
		dispatcher: alerts.NewDispatcher(cfg.Job.Webhook),
		now:        time.Now,
	}
}

// Run executes one batch cycle and returns the first fatal error.
//
// A source read or parse failure aborts before anything is persisted.
// Ledger I/O failures degrade: an unreadable ledger is treated as empty
// (worst case a duplicate alert), an unsaved one is logged and dropped.
// On delivery failure the cleaned ledger is still committed — resolved
// services must not linger — but the newly-alerted services are not
// stamped, so the next run retries them, and Run reports the failure.
func (j *Job) Run(ctx context.Context) error {
	now := j.now()

	observations, err := obslog.Read(j.cfg.Job.ObservationLog)
	if err != nil {
		return fmt.Errorf("job: %w", err)
	}

	outages := outage.Reconstruct(observations, now)
	slog.Info("job: reconstructed outages",
		"observations", len(observations),
		"ongoing", len(outages),
	)

	led, err := ledger.Load(j.cfg.Job.LedgerPath)
	if err != nil {
		slog.Warn("job: ledger unreadable, starting empty", "err", err)
	}

	dec := alerts.Decide(led, outages, j.cfg.Job.AlertThreshold)

	var deliveryErr error
	if len(dec.ToAlert) > 0 {
		if err := j.dispatcher.Send(ctx, dec.ToAlert); err != nil {
			deliveryErr = fmt.Errorf("job: %w", err)
			slog.Error("job: alert delivery failed, will retry next run",
				"services", len(dec.ToAlert), "err", err)
		} else {
			for _, o := range dec.ToAlert {
				dec.Ledger[o.Service] = now
			}
			slog.Info("job: alert delivered", "services", len(dec.ToAlert))
		}
	}

	// Single ledger commit per run, after delivery has resolved. Stamped
	// entries are only present when delivery succeeded.
	if err := dec.Ledger.Save(j.cfg.Job.LedgerPath); err != nil {
		slog.Warn("job: ledger save failed, duplicate alerts possible", "err", err)
	}

	if path := j.cfg.Job.Metrics.Textfile; path != "" {
		sent := 0
		if deliveryErr == nil {
			sent = len(dec.ToAlert)
		}
		s := metrics.Summary{
			OngoingOutages: len(outages),
			AlertsSent:     sent,
			RanAt:          now,
		}
		if err := metrics.Write(path, s); err != nil {
			slog.Warn("job: metrics write failed", "err", err)
		}
	}

	return deliveryErr
}

// Watch runs once immediately, then re-runs on every observation log
// write until ctx is cancelled. A failed run is logged and the loop
// continues: watch mode is meant to outlive transient delivery problems.
func (j *Job) Watch(ctx context.Context) error {
	if err := j.Run(ctx); err != nil {
		slog.Error("job: run failed", "err", err)
	}
	return config.WatchFile(ctx, j.cfg.Job.ObservationLog, j.cfg.Job.Watch.Debounce, func() {
		if err := j.Run(ctx); err != nil {
			slog.Error("job: run failed", "err", err)
		}
	})
}
