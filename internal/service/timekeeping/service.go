package timekeeping

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timekeeping-engine-go/internal/domain/timekeeping"
)

type TimekeepingServiceImpl struct {
	shifts timekeeping.ShiftProvider
	logs   timekeeping.LogStore
	sink   timekeeping.SummarySink
	leaves timekeeping.LeaveProvider
}

// runContext carries all scratch state for one (employee, date) run.
// It is created at the top of ComputeDay and discarded at the end, so
// nothing mutable survives between two runs.
type runContext struct {
	employeeID string
	date       time.Time
	state      timekeeping.RunState

	shift     *timekeeping.ShiftDefinition
	prevShift *timekeeping.ShiftDefinition
	logs      []timekeeping.RawLogInterval
	nextLogs  []timekeeping.RawLogInterval

	// day holds today's partition; next holds the portion of tonight's
	// attendance that belongs to a shift window crossing into tomorrow.
	day  []timekeeping.Segment
	next []timekeeping.Segment
}

// ComputeDay implements timekeeping.TimekeepingService. Stages run in
// a fixed order and any failure aborts the run before anything is
// persisted, so a failed run is always safely retryable.
func (s *TimekeepingServiceImpl) ComputeDay(ctx context.Context, employeeID string, date time.Time) (timekeeping.DaySummary, error) {
	date = date.Truncate(24 * time.Hour)
	rc := &runContext{employeeID: employeeID, date: date, state: timekeeping.RunInitialized}

	shift, err := s.shifts.Resolve(ctx, employeeID, date)
	if err != nil {
		return timekeeping.DaySummary{}, fmt.Errorf("failed to resolve shift: %w", err)
	}
	if shift == nil {
		// No shift resolvable: report zero totals rather than guessing.
		slog.Warn("no shift definition for day",
			slog.String("employee_id", employeeID),
			slog.String("date", date.Format("2006-01-02")),
			slog.Any("error", timekeeping.ErrMissingShiftDefinition),
		)
		summary := zeroSummary(employeeID, rc)
		if err := s.persist(ctx, rc, summary); err != nil {
			return timekeeping.DaySummary{}, err
		}
		return summary, nil
	}
	rc.shift = shift

	if err := s.loadLogs(ctx, rc); err != nil {
		return timekeeping.DaySummary{}, err
	}
	s.classifyWork(rc)
	s.classifyGaps(rc)
	s.overlayNight(rc)
	if err := s.stitch(ctx, rc); err != nil {
		return timekeeping.DaySummary{}, err
	}
	summary, err := s.aggregate(ctx, rc)
	if err != nil {
		return timekeeping.DaySummary{}, err
	}
	if err := s.persist(ctx, rc, summary); err != nil {
		return timekeeping.DaySummary{}, err
	}

	slog.Debug("timekeeping run complete",
		"employee_id", employeeID,
		"date", date.Format("2006-01-02"),
		"state", rc.state,
		"credited_minutes", summary.TotalCreditedMinutes)
	return summary, nil
}

func (s *TimekeepingServiceImpl) loadLogs(ctx context.Context, rc *runContext) error {
	logs, err := s.logs.RawIntervals(ctx, rc.employeeID, rc.date)
	if err != nil {
		return fmt.Errorf("failed to load attendance logs: %w", err)
	}
	rc.logs = normalizeLogs(rc.employeeID, logs)

	if len(rc.shift.NextDayWindows) > 0 {
		nextLogs, err := s.logs.RawIntervals(ctx, rc.employeeID, rc.date.AddDate(0, 0, 1))
		if err != nil {
			return fmt.Errorf("failed to load next-day attendance logs: %w", err)
		}
		rc.nextLogs = normalizeLogs(rc.employeeID, nextLogs)
	}
	rc.state = timekeeping.RunLogsLoaded
	return nil
}

func (s *TimekeepingServiceImpl) classifyWork(rc *runContext) {
	if rc.shift.TimeBound() {
		rc.day = classifyTimeBound(rc.shift, rc.logs)
		if len(rc.shift.NextDayWindows) > 0 {
			rc.next = insertSegments(windowIntersections(rc.shift.NextDayWindows, rc.nextLogs), rc.next)
		}
	} else {
		rc.day = classifyFlexible(rc.shift, rc.logs)
	}
	rc.state = timekeeping.RunWorkClassified
}

func (s *TimekeepingServiceImpl) classifyGaps(rc *runContext) {
	if rc.shift.TimeBound() {
		rc.day = insertSegments(detectWindowGaps(rc.shift.Windows, rc.logs), rc.day)
		if len(rc.shift.NextDayWindows) > 0 {
			rc.next = insertSegments(detectWindowGaps(rc.shift.NextDayWindows, rc.nextLogs), rc.next)
		}
	}
	rc.state = timekeeping.RunGapsClassified
}

func (s *TimekeepingServiceImpl) overlayNight(rc *runContext) {
	rc.day = overlayNight(rc.day)
	rc.next = overlayNight(rc.next)
	rc.state = timekeeping.RunNightOverlaid
}

func (s *TimekeepingServiceImpl) stitch(ctx context.Context, rc *runContext) error {
	prev, err := s.shifts.Resolve(ctx, rc.employeeID, rc.date.AddDate(0, 0, -1))
	if err != nil {
		return fmt.Errorf("failed to resolve previous-day shift: %w", err)
	}
	rc.prevShift = prev
	rc.day = dedupePartition(trimCarryover(rc.day, prev))
	rc.next = dedupePartition(rc.next)
	rc.state = timekeeping.RunStitched
	return nil
}

func (s *TimekeepingServiceImpl) aggregate(ctx context.Context, rc *runContext) (timekeeping.DaySummary, error) {
	grace, err := s.sink.GraceConfig(ctx, rc.employeeID)
	if err != nil {
		return timekeeping.DaySummary{}, fmt.Errorf("failed to load grace config: %w", err)
	}
	onLeave, err := s.leaves.IsApprovedLeave(ctx, rc.employeeID, rc.date)
	if err != nil {
		return timekeeping.DaySummary{}, fmt.Errorf("failed to check approved leave: %w", err)
	}
	summary := aggregateDay(rc, grace, onLeave)
	rc.state = timekeeping.RunAggregated
	return summary, nil
}

func (s *TimekeepingServiceImpl) persist(ctx context.Context, rc *runContext, summary timekeeping.DaySummary) error {
	if err := s.sink.Persist(ctx, summary); err != nil {
		return fmt.Errorf("failed to persist day summary: %w", err)
	}
	if _, err := s.sink.ReduceCutoff(ctx, rc.employeeID, summary.CutoffID); err != nil {
		return fmt.Errorf("failed to reduce cutoff summary: %w", err)
	}
	rc.state = timekeeping.RunPersisted
	return nil
}

// ComputeRange implements timekeeping.TimekeepingService. Days run in
// ascending order so each day sees its predecessor's carryover.
func (s *TimekeepingServiceImpl) ComputeRange(ctx context.Context, req timekeeping.RecomputeRequest) (timekeeping.RecomputeResponse, error) {
	if err := req.Validate(); err != nil {
		return timekeeping.RecomputeResponse{}, err
	}
	from, to := req.DateRange()

	resp := timekeeping.RecomputeResponse{
		EmployeeID: req.EmployeeID,
		From:       req.From,
		To:         req.To,
	}
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		summary, err := s.ComputeDay(ctx, req.EmployeeID, date)
		if err != nil {
			return timekeeping.RecomputeResponse{}, fmt.Errorf("recompute failed at %s: %w", date.Format("2006-01-02"), err)
		}
		resp.Summaries = append(resp.Summaries, timekeeping.MapDaySummaryToResponse(summary))
		resp.DaysRun++
	}
	return resp, nil
}

// GetDaySummaries implements timekeeping.TimekeepingService.
func (s *TimekeepingServiceImpl) GetDaySummaries(ctx context.Context, filter timekeeping.SummaryFilter) ([]timekeeping.DaySummaryResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	from, to := (&timekeeping.RecomputeRequest{From: filter.From, To: filter.To}).DateRange()

	summaries, err := s.sink.ListDaySummaries(ctx, filter.EmployeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list day summaries: %w", err)
	}
	responses := make([]timekeeping.DaySummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		responses = append(responses, timekeeping.MapDaySummaryToResponse(summary))
	}
	return responses, nil
}

// GetCutoffSummary implements timekeeping.TimekeepingService.
func (s *TimekeepingServiceImpl) GetCutoffSummary(ctx context.Context, employeeID string, cutoffID string) (timekeeping.CutoffSummaryResponse, error) {
	if employeeID == "" {
		return timekeeping.CutoffSummaryResponse{}, timekeeping.ErrEmployeeIDRequired
	}
	summary, err := s.sink.GetCutoffSummary(ctx, employeeID, cutoffID)
	if err != nil {
		return timekeeping.CutoffSummaryResponse{}, err
	}
	return timekeeping.MapCutoffSummaryToResponse(summary), nil
}

func NewTimekeepingService(
	shiftProvider timekeeping.ShiftProvider,
	logStore timekeeping.LogStore,
	summarySink timekeeping.SummarySink,
	leaveProvider timekeeping.LeaveProvider,
) (timekeeping.TimekeepingService, error) {
	if err := validateNightBands(); err != nil {
		return nil, err
	}
	return &TimekeepingServiceImpl{
		shifts: shiftProvider,
		logs:   logStore,
		sink:   summarySink,
		leaves: leaveProvider,
	}, nil
}
