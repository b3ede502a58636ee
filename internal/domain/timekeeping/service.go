package timekeeping

import (
	"context"
	"time"
)

// TimekeepingService defines business logic for attendance time
// classification.
type TimekeepingService interface {
	// ComputeDay runs the full classification pipeline for one
	// (employee, date) and persists the resulting summary.
	ComputeDay(ctx context.Context, employeeID string, date time.Time) (DaySummary, error)

	// ComputeRange recomputes a date range in ascending order so each
	// day sees its predecessor's carryover.
	ComputeRange(ctx context.Context, req RecomputeRequest) (RecomputeResponse, error)

	// GetDaySummaries returns persisted summaries for a date range.
	GetDaySummaries(ctx context.Context, req SummaryFilter) ([]DaySummaryResponse, error)

	// GetCutoffSummary returns the rolled-up totals for one cutoff.
	GetCutoffSummary(ctx context.Context, employeeID string, cutoffID string) (CutoffSummaryResponse, error)
}
