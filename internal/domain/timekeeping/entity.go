package timekeeping

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/timekeeping-engine-go/internal/pkg/daytime"
)

// SegmentType labels one classified slice of a day. Exactly one type
// covers any given minute; overlays replace, they never double-label.
type SegmentType string

const (
	SegmentWorkTime          SegmentType = "WORK_TIME"
	SegmentOvertime          SegmentType = "OVERTIME"
	SegmentLate              SegmentType = "LATE"
	SegmentUndertime         SegmentType = "UNDERTIME"
	SegmentBreakTime         SegmentType = "BREAK_TIME"
	SegmentNightDiff         SegmentType = "NIGHT_DIFFERENTIAL"
	SegmentNightDiffOvertime SegmentType = "NIGHT_DIFFERENTIAL_OVERTIME"
)

// Segment is a typed, non-overlapping slice of one logical day.
// Start is strictly before End; an overnight shift carries a separate
// next-day segment list instead of letting End wrap past midnight.
// SourceLogID traces back to the raw log row that produced the
// segment; it is nil for synthetic segments such as detected gaps.
type Segment struct {
	Type        SegmentType
	Start       daytime.TimeOfDay
	End         daytime.TimeOfDay
	SourceLogID *string
}

// Minutes returns the segment duration.
func (s Segment) Minutes() daytime.Minutes {
	return daytime.Minutes(s.End.Minutes() - s.Start.Minutes())
}

func (s Segment) String() string {
	return fmt.Sprintf("%s[%s-%s]", s.Type, s.Start, s.End)
}

// ShiftType selects the classification mode for a day.
type ShiftType string

const (
	// ShiftTimeBound is defined by explicit clock windows.
	ShiftTimeBound ShiftType = "TIME_BOUND"
	// ShiftFlexitime accumulates attendance against a target-hour quota.
	ShiftFlexitime ShiftType = "FLEXITIME"
	// ShiftRestDay and ShiftExtraDay behave like flexitime with a zero
	// target, so all attendance counts as overtime.
	ShiftRestDay  ShiftType = "REST_DAY"
	ShiftExtraDay ShiftType = "EXTRA_DAY"
)

// ShiftWindow is one scheduled start/end range within a shift.
type ShiftWindow struct {
	Start   daytime.TimeOfDay
	End     daytime.TimeOfDay
	IsBreak bool
}

// ShiftDefinition is the normalized shift for one (employee, date).
// It is resolved and validated once by the ShiftProvider; the engine
// treats it as read-only and never re-inspects stored shapes.
type ShiftDefinition struct {
	ID             string
	Type           ShiftType
	Windows        []ShiftWindow
	NextDayWindows []ShiftWindow
	TargetMinutes  daytime.Minutes
	// BreakMinutes and BreakThresholdMinutes drive the aggregation-time
	// break deduction for shifts without explicit break windows.
	BreakMinutes          daytime.Minutes
	BreakThresholdMinutes daytime.Minutes
}

// TimeBound reports whether the shift classifies by explicit windows.
func (s ShiftDefinition) TimeBound() bool {
	return s.Type == ShiftTimeBound
}

// NoAbsence reports whether absence must never be recorded for the
// shift regardless of credited minutes.
func (s ShiftDefinition) NoAbsence() bool {
	return s.Type == ShiftRestDay || s.Type == ShiftExtraDay
}

// RawLogInterval is one clock-in/clock-out pair, ordered by TimeIn.
type RawLogInterval struct {
	ID      string
	TimeIn  daytime.TimeOfDay
	TimeOut daytime.TimeOfDay
}

// DurationMinutes returns the raw interval length.
func (r RawLogInterval) DurationMinutes() int {
	return r.TimeOut.Minutes() - r.TimeIn.Minutes()
}

// GraceConfig holds the per-employee-group forgiveness thresholds.
// A total at or below its threshold is forgiven entirely; above it the
// full raw value counts. There is never proration.
type GraceConfig struct {
	LateGraceMinutes      int
	UndertimeGraceMinutes int
	OvertimeGraceMinutes  int
}

// DaySummary is the aggregated result of one (employee, date) run.
// The sink overwrites on recomputation, it never appends.
type DaySummary struct {
	EmployeeID string
	Date       time.Time
	CutoffID   string

	WorkMinutes              int
	BreakMinutes             int
	RawLateMinutes           int
	LateMinutes              int
	RawUndertimeMinutes      int
	UndertimeMinutes         int
	RawOvertimeMinutes       int
	OvertimeMinutes          int
	NightDiffMinutes         int
	RawNightDiffOTMinutes    int
	NightDiffOvertimeMinutes int

	TotalCreditedMinutes int
	PresentDayCount      int
	AbsentCount          int
}

// CutoffSummary is the sum of all day summaries sharing a cutoff id.
type CutoffSummary struct {
	EmployeeID string
	CutoffID   string

	WorkMinutes              int
	BreakMinutes             int
	LateMinutes              int
	UndertimeMinutes         int
	OvertimeMinutes          int
	NightDiffMinutes         int
	NightDiffOvertimeMinutes int
	TotalCreditedMinutes     int
	PresentDayCount          int
	AbsentCount              int
}

// CutoffID returns the semi-monthly pay-cutoff identifier for a date:
// days 1-15 fall in the "1" half, the rest in "2".
func CutoffID(date time.Time) string {
	half := 1
	if date.Day() > 15 {
		half = 2
	}
	return fmt.Sprintf("%04d-%02d-%d", date.Year(), int(date.Month()), half)
}

// RunState tracks the stage of one per-day computation. Stages are
// never skipped; a failure aborts the run before anything persists.
type RunState string

const (
	RunInitialized    RunState = "INITIALIZED"
	RunLogsLoaded     RunState = "LOGS_LOADED"
	RunWorkClassified RunState = "WORK_CLASSIFIED"
	RunGapsClassified RunState = "GAPS_CLASSIFIED"
	RunNightOverlaid  RunState = "NIGHT_OVERLAID"
	RunStitched       RunState = "STITCHED"
	RunAggregated     RunState = "AGGREGATED"
	RunPersisted      RunState = "PERSISTED"
)
