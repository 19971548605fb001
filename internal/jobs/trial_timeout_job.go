package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// TrialTimeoutJob sweeps home trial deliveries whose 20-minute wait
// window has expired and auto-advances them to in_transit.
// Runs every second; the sweep is idempotent, so overlapping or repeated
// firings never double-append history.
type TrialTimeoutJob struct {
	handler commands.CheckTrialTimeoutsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewTrialTimeoutJob creates a new job for expiring trial windows.
// Uses CheckTrialTimeoutsCommandHandler to sweep waiting deliveries every second.
func NewTrialTimeoutJob(handler commands.CheckTrialTimeoutsCommandHandler, logger *slog.Logger) *TrialTimeoutJob {
	return &TrialTimeoutJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "trial_timeout_job"),
	}
}

// Start begins the trial timeout sweep to run every second.
func (j *TrialTimeoutJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewCheckTrialTimeoutsCommand()

		expired, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Trial timeout sweep failed", "error", err)
			return
		}

		if expired > 0 {
			j.logger.InfoContext(ctx, "Expired trial windows", "count", expired)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Trial timeout job started (running every second)")
	return nil
}

// Stop stops the trial timeout job.
func (j *TrialTimeoutJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Trial timeout job stopped")
}
