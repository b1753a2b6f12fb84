package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"marketplace/internal/core/application/usecases/commands"
)

// StaleOrderReminderJob re-notifies shops about orders that have been
// sitting in pending for too long. Runs every minute.
type StaleOrderReminderJob struct {
	handler   commands.RemindStaleOrdersCommandHandler
	threshold time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStaleOrderReminderJob creates the reminder job. threshold is how long
// an order may stay pending before the shop is reminded.
func NewStaleOrderReminderJob(
	handler commands.RemindStaleOrdersCommandHandler,
	threshold time.Duration,
	logger *slog.Logger,
) *StaleOrderReminderJob {
	return &StaleOrderReminderJob{
		handler:   handler,
		threshold: threshold,
		cron:      cron.New(),
		logger:    logger.With("component", "stale_order_reminder_job"),
	}
}

// Start schedules the reminder to run every minute.
func (j *StaleOrderReminderJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewRemindStaleOrdersCommand(j.threshold)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Stale order reminder job misconfigured", "error", cmdErr)
			return
		}

		reminded, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Stale order reminder job failed", "error", handleErr)
			return
		}

		if reminded > 0 {
			j.logger.InfoContext(ctx, "Reminded shops about stale orders", "count", reminded)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order reminder job started (running every minute)")
	return nil
}

// Stop stops the reminder job.
func (j *StaleOrderReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale order reminder job stopped")
}
