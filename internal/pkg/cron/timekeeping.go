package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timekeeping-engine-go/internal/domain/timekeeping"
)

type TimekeepingJobs struct {
	timekeepingSvc timekeeping.TimekeepingService
	directory      timekeeping.EmployeeDirectory
}

func NewTimekeepingJobs(
	timekeepingSvc timekeeping.TimekeepingService,
	directory timekeeping.EmployeeDirectory,
) *TimekeepingJobs {
	return &TimekeepingJobs{
		timekeepingSvc: timekeepingSvc,
		directory:      directory,
	}
}

func (j *TimekeepingJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddDailyJob("recompute_previous_day", 2, j.RecomputePreviousDay)
}

// RecomputePreviousDay classifies yesterday's attendance for every
// active employee. Yesterday rather than today so overnight shifts
// ending after midnight have their closing logs in place.
func (j *TimekeepingJobs) RecomputePreviousDay(ctx context.Context) error {
	slog.Info("Cron: Starting previous-day recompute job")

	employeeIDs, err := j.directory.ActiveEmployeeIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)

	computed := 0
	for _, employeeID := range employeeIDs {
		if _, err := j.timekeepingSvc.ComputeDay(ctx, employeeID, yesterday); err != nil {
			slog.Error("Cron: Failed to compute day summary",
				"employee_id", employeeID,
				"date", yesterday.Format("2006-01-02"),
				"error", err)
			continue
		}
		computed++
	}

	slog.Info("Cron: Previous-day recompute finished",
		"date", yesterday.Format("2006-01-02"),
		"computed", computed,
		"total", len(employeeIDs))
	return nil
}
