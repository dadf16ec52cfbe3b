package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/clock"
)

// ClockJobs holds the clock maintenance jobs.
type ClockJobs struct {
	clockService clock.ClockService
	interval     time.Duration
}

func NewClockJobs(clockService clock.ClockService, interval time.Duration) *ClockJobs {
	return &ClockJobs{
		clockService: clockService,
		interval:     interval,
	}
}

func (j *ClockJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_clocks", j.interval, j.AutoCloseStaleClocks)
}

// AutoCloseStaleClocks closes sessions left open past the configured limit.
func (j *ClockJobs) AutoCloseStaleClocks(ctx context.Context) error {
	closed, err := j.clockService.AutoCloseStale(ctx)
	if err != nil {
		return err
	}
	if closed > 0 {
		slog.Info("Cron: Auto-closed stale clock sessions", "count", closed)
	}
	return nil
}
