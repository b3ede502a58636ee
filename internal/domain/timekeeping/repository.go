package timekeeping

import (
	"context"
	"time"
)

// ShiftProvider resolves the active shift definition for an employee
// and date. It must also answer for date-1 and date+1 so the engine
// can stitch overnight shifts across day boundaries. A nil shift with
// a nil error means no shift is scheduled for that date.
type ShiftProvider interface {
	Resolve(ctx context.Context, employeeID string, date time.Time) (*ShiftDefinition, error)
}

// LogStore supplies raw clock intervals for a day, ordered by TimeIn
// ascending. Overlapping rows are a data-quality problem the engine
// resolves first-wins; the store does not have to deduplicate.
type LogStore interface {
	RawIntervals(ctx context.Context, employeeID string, date time.Time) ([]RawLogInterval, error)
}

// SummarySink accepts computed totals and owns the cutoff-level
// reduction. Writes for the same (employee, cutoff) key must not run
// concurrently; the engine makes no further assumption.
type SummarySink interface {
	// Persist overwrites the day summary for (employee, date).
	Persist(ctx context.Context, summary DaySummary) error

	// GraceConfig returns the forgiveness thresholds for the employee's
	// group. ErrSummaryNotFound-free: missing configuration must be
	// reported as a zero-valued config, not an error.
	GraceConfig(ctx context.Context, employeeID string) (GraceConfig, error)

	// ReduceCutoff re-sums every day summary sharing the cutoff id.
	ReduceCutoff(ctx context.Context, employeeID string, cutoffID string) (CutoffSummary, error)

	// GetDaySummary returns a previously persisted summary.
	GetDaySummary(ctx context.Context, employeeID string, date time.Time) (DaySummary, error)

	// ListDaySummaries returns persisted summaries in a date range,
	// ordered by date ascending.
	ListDaySummaries(ctx context.Context, employeeID string, from, to time.Time) ([]DaySummary, error)

	// GetCutoffSummary returns the stored cutoff reduction.
	GetCutoffSummary(ctx context.Context, employeeID string, cutoffID string) (CutoffSummary, error)
}

// LeaveProvider answers whether a date is an approved leave day
// (including eligible holidays). The eligibility rules live in a
// neighboring system; the engine only consumes the boolean.
type LeaveProvider interface {
	IsApprovedLeave(ctx context.Context, employeeID string, date time.Time) (bool, error)
}

// EmployeeDirectory lists employees the batch jobs recompute for.
type EmployeeDirectory interface {
	ActiveEmployeeIDs(ctx context.Context) ([]string, error)
}
