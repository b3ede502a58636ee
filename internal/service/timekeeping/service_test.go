package timekeeping

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/timekeeping-engine-go/internal/domain/timekeeping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== IN-MEMORY COLLABORATOR FAKES =====

type fakeShiftProvider struct {
	shifts map[string]*timekeeping.ShiftDefinition
}

func (f *fakeShiftProvider) Resolve(_ context.Context, _ string, date time.Time) (*timekeeping.ShiftDefinition, error) {
	return f.shifts[date.Format("2006-01-02")], nil
}

type fakeLogStore struct {
	logs map[string][]timekeeping.RawLogInterval
}

func (f *fakeLogStore) RawIntervals(_ context.Context, _ string, date time.Time) ([]timekeeping.RawLogInterval, error) {
	return f.logs[date.Format("2006-01-02")], nil
}

type fakeLeaveProvider struct {
	approved map[string]bool
}

func (f *fakeLeaveProvider) IsApprovedLeave(_ context.Context, _ string, date time.Time) (bool, error) {
	return f.approved[date.Format("2006-01-02")], nil
}

type fakeSummarySink struct {
	grace     timekeeping.GraceConfig
	summaries map[string]timekeeping.DaySummary
	cutoffs   map[string]timekeeping.CutoffSummary
}

func newFakeSink(grace timekeeping.GraceConfig) *fakeSummarySink {
	return &fakeSummarySink{
		grace:     grace,
		summaries: make(map[string]timekeeping.DaySummary),
		cutoffs:   make(map[string]timekeeping.CutoffSummary),
	}
}

func (f *fakeSummarySink) Persist(_ context.Context, summary timekeeping.DaySummary) error {
	f.summaries[summary.Date.Format("2006-01-02")] = summary
	return nil
}

func (f *fakeSummarySink) GraceConfig(_ context.Context, _ string) (timekeeping.GraceConfig, error) {
	return f.grace, nil
}

func (f *fakeSummarySink) ReduceCutoff(_ context.Context, employeeID string, cutoffID string) (timekeeping.CutoffSummary, error) {
	reduced := timekeeping.CutoffSummary{EmployeeID: employeeID, CutoffID: cutoffID}
	for _, s := range f.summaries {
		if s.CutoffID != cutoffID {
			continue
		}
		reduced.WorkMinutes += s.WorkMinutes
		reduced.BreakMinutes += s.BreakMinutes
		reduced.LateMinutes += s.LateMinutes
		reduced.UndertimeMinutes += s.UndertimeMinutes
		reduced.OvertimeMinutes += s.OvertimeMinutes
		reduced.NightDiffMinutes += s.NightDiffMinutes
		reduced.NightDiffOvertimeMinutes += s.NightDiffOvertimeMinutes
		reduced.TotalCreditedMinutes += s.TotalCreditedMinutes
		reduced.PresentDayCount += s.PresentDayCount
		reduced.AbsentCount += s.AbsentCount
	}
	f.cutoffs[cutoffID] = reduced
	return reduced, nil
}

func (f *fakeSummarySink) GetDaySummary(_ context.Context, _ string, date time.Time) (timekeeping.DaySummary, error) {
	s, ok := f.summaries[date.Format("2006-01-02")]
	if !ok {
		return timekeeping.DaySummary{}, timekeeping.ErrSummaryNotFound
	}
	return s, nil
}

func (f *fakeSummarySink) ListDaySummaries(_ context.Context, _ string, from, to time.Time) ([]timekeeping.DaySummary, error) {
	var out []timekeeping.DaySummary
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		if s, ok := f.summaries[date.Format("2006-01-02")]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSummarySink) GetCutoffSummary(_ context.Context, _ string, cutoffID string) (timekeeping.CutoffSummary, error) {
	s, ok := f.cutoffs[cutoffID]
	if !ok {
		return timekeeping.CutoffSummary{}, timekeeping.ErrCutoffSummaryNotFound
	}
	return s, nil
}

func newTestService(t *testing.T, shifts *fakeShiftProvider, logs *fakeLogStore, sink *fakeSummarySink) timekeeping.TimekeepingService {
	t.Helper()
	svc, err := NewTimekeepingService(shifts, logs, sink, &fakeLeaveProvider{approved: map[string]bool{}})
	require.NoError(t, err)
	return svc
}

// ===== TIMEKEEPING SERVICE TESTS =====

// Scenario: time-bound 08:00-17:00, single log 08:15-17:00. Fifteen
// raw late minutes, fully forgiven by a 15-minute grace.
func TestTimekeepingService_ComputeDay_LateWithinGrace(t *testing.T) {
	t.Parallel()
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	shifts := &fakeShiftProvider{shifts: map[string]*timekeeping.ShiftDefinition{
		"2026-08-10": {
			Type:    timekeeping.ShiftTimeBound,
			Windows: []timekeeping.ShiftWindow{window(t, "08:00", "17:00", false)},
		},
	}}
	logs := &fakeLogStore{logs: map[string][]timekeeping.RawLogInterval{
		"2026-08-10": {rawLog(t, "log-1", "08:15", "17:00")},
	}}
	sink := newFakeSink(timekeeping.GraceConfig{LateGraceMinutes: 15})

	svc := newTestService(t, shifts, logs, sink)
	summary, err := svc.ComputeDay(context.Background(), "emp-1", day)

	require.NoError(t, err)
	assert.Equal(t, 525, summary.WorkMinutes)
	assert.Equal(t, 15, summary.RawLateMinutes)
	assert.Equal(t, 0, summary.LateMinutes)
	assert.Equal(t, 1, summary.PresentDayCount)
	assert.Equal(t, "2026-08-1", summary.CutoffID)

	// Persisted and rolled into the cutoff.
	stored, err := sink.GetDaySummary(context.Background(), "emp-1", day)
	require.NoError(t, err)
	assert.Equal(t, summary, stored)
	cutoff, err := sink.GetCutoffSummary(context.Background(), "emp-1", "2026-08-1")
	require.NoError(t, err)
	assert.Equal(t, 525, cutoff.WorkMinutes)
}

// Scenario: flexitime with a 480-minute target and 300 minutes of
// attendance reports 180 minutes of undertime regardless of gaps.
func TestTimekeepingService_ComputeDay_FlexitimeUndertime(t *testing.T) {
	t.Parallel()
	day := time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC)

	shifts := &fakeShiftProvider{shifts: map[string]*timekeeping.ShiftDefinition{
		"2026-08-11": {Type: timekeeping.ShiftFlexitime, TargetMinutes: 480},
	}}
	logs := &fakeLogStore{logs: map[string][]timekeeping.RawLogInterval{
		"2026-08-11": {rawLog(t, "log-1", "09:00", "14:00")},
	}}
	sink := newFakeSink(timekeeping.GraceConfig{})

	svc := newTestService(t, shifts, logs, sink)
	summary, err := svc.ComputeDay(context.Background(), "emp-1", day)

	require.NoError(t, err)
	assert.Equal(t, 300, summary.WorkMinutes)
	assert.Equal(t, 180, summary.UndertimeMinutes)
}

// Scenario: an overnight shift credits tonight's and tomorrow-early-
// morning's night minutes to today; tomorrow's run then trims the
// claimed minutes out of its own classification.
func TestTimekeepingService_ComputeDay_OvernightCarryover(t *testing.T) {
	t.Parallel()

	day1 := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	shifts := &fakeShiftProvider{shifts: map[string]*timekeeping.ShiftDefinition{
		"2026-08-10": {
			Type:           timekeeping.ShiftTimeBound,
			Windows:        []timekeeping.ShiftWindow{window(t, "22:00", "24:00", false)},
			NextDayWindows: []timekeeping.ShiftWindow{window(t, "00:00", "02:00", false)},
		},
		"2026-08-11": {Type: timekeeping.ShiftRestDay},
	}}
	logs := &fakeLogStore{logs: map[string][]timekeeping.RawLogInterval{
		"2026-08-10": {rawLog(t, "log-1", "22:00", "23:59")},
		"2026-08-11": {rawLog(t, "log-2", "00:00", "02:00")},
	}}
	sink := newFakeSink(timekeeping.GraceConfig{UndertimeGraceMinutes: 15})

	svc := newTestService(t, shifts, logs, sink)

	first, err := svc.ComputeDay(context.Background(), "emp-1", day1)
	require.NoError(t, err)
	// 119 night minutes tonight plus the 120-minute next-day window.
	assert.Equal(t, 239, first.NightDiffMinutes)
	assert.Equal(t, 0, first.WorkMinutes)
	assert.Equal(t, 0, first.UndertimeMinutes)

	second, err := svc.ComputeDay(context.Background(), "emp-1", day2)
	require.NoError(t, err)
	// The early-morning minutes already belong to day one.
	assert.Equal(t, 0, second.NightDiffMinutes)
	assert.Equal(t, 0, second.NightDiffOvertimeMinutes)
	assert.Equal(t, 0, second.TotalCreditedMinutes)
	assert.Equal(t, 0, second.AbsentCount)
}

func TestTimekeepingService_ComputeDay_MissingShiftReportsZero(t *testing.T) {
	t.Parallel()
	day := time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC)

	shifts := &fakeShiftProvider{shifts: map[string]*timekeeping.ShiftDefinition{}}
	logs := &fakeLogStore{logs: map[string][]timekeeping.RawLogInterval{
		"2026-08-12": {rawLog(t, "log-1", "08:00", "17:00")},
	}}
	sink := newFakeSink(timekeeping.GraceConfig{})

	svc := newTestService(t, shifts, logs, sink)
	summary, err := svc.ComputeDay(context.Background(), "emp-1", day)

	require.NoError(t, err)
	assert.Zero(t, summary.WorkMinutes)
	assert.Zero(t, summary.TotalCreditedMinutes)
	assert.Zero(t, summary.AbsentCount)

	_, err = sink.GetDaySummary(context.Background(), "emp-1", day)
	assert.NoError(t, err)
}

// Recomputation of the same day overwrites rather than accumulates.
func TestTimekeepingService_ComputeDay_Idempotent(t *testing.T) {
	t.Parallel()
	day := time.Date(2026, 8, 13, 0, 0, 0, 0, time.UTC)

	shifts := &fakeShiftProvider{shifts: map[string]*timekeeping.ShiftDefinition{
		"2026-08-13": {
			Type:    timekeeping.ShiftTimeBound,
			Windows: []timekeeping.ShiftWindow{window(t, "08:00", "17:00", false)},
		},
	}}
	logs := &fakeLogStore{logs: map[string][]timekeeping.RawLogInterval{
		"2026-08-13": {rawLog(t, "log-1", "08:00", "17:00")},
	}}
	sink := newFakeSink(timekeeping.GraceConfig{})

	svc := newTestService(t, shifts, logs, sink)

	first, err := svc.ComputeDay(context.Background(), "emp-1", day)
	require.NoError(t, err)
	second, err := svc.ComputeDay(context.Background(), "emp-1", day)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	cutoff, err := sink.GetCutoffSummary(context.Background(), "emp-1", first.CutoffID)
	require.NoError(t, err)
	assert.Equal(t, first.WorkMinutes, cutoff.WorkMinutes)
}

func TestTimekeepingService_ComputeRange(t *testing.T) {
	t.Parallel()

	shifts := &fakeShiftProvider{shifts: map[string]*timekeeping.ShiftDefinition{
		"2026-08-10": {
			Type:    timekeeping.ShiftTimeBound,
			Windows: []timekeeping.ShiftWindow{window(t, "08:00", "17:00", false)},
		},
		"2026-08-11": {
			Type:    timekeeping.ShiftTimeBound,
			Windows: []timekeeping.ShiftWindow{window(t, "08:00", "17:00", false)},
		},
	}}
	logs := &fakeLogStore{logs: map[string][]timekeeping.RawLogInterval{
		"2026-08-10": {rawLog(t, "log-1", "08:00", "17:00")},
		"2026-08-11": {rawLog(t, "log-2", "08:00", "12:00")},
	}}
	sink := newFakeSink(timekeeping.GraceConfig{})

	svc := newTestService(t, shifts, logs, sink)
	resp, err := svc.ComputeRange(context.Background(), timekeeping.RecomputeRequest{
		EmployeeID: "emp-1",
		From:       "2026-08-10",
		To:         "2026-08-11",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.DaysRun)
	require.Len(t, resp.Summaries, 2)
	assert.Equal(t, "2026-08-10", resp.Summaries[0].Date)
	assert.Equal(t, 540, resp.Summaries[0].WorkMinutes)
	assert.Equal(t, 240, resp.Summaries[1].WorkMinutes)
}

func TestTimekeepingService_ComputeRange_InvalidRequest(t *testing.T) {
	t.Parallel()

	sink := newFakeSink(timekeeping.GraceConfig{})
	svc := newTestService(t, &fakeShiftProvider{}, &fakeLogStore{}, sink)

	_, err := svc.ComputeRange(context.Background(), timekeeping.RecomputeRequest{
		EmployeeID: "emp-1",
		From:       "2026-08-11",
		To:         "2026-08-10",
	})
	assert.Error(t, err)
}

func TestTimekeepingService_GetDaySummaries(t *testing.T) {
	t.Parallel()
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	shifts := &fakeShiftProvider{shifts: map[string]*timekeeping.ShiftDefinition{
		"2026-08-10": {
			Type:    timekeeping.ShiftTimeBound,
			Windows: []timekeeping.ShiftWindow{window(t, "08:00", "17:00", false)},
		},
	}}
	logs := &fakeLogStore{logs: map[string][]timekeeping.RawLogInterval{
		"2026-08-10": {rawLog(t, "log-1", "08:00", "17:00")},
	}}
	sink := newFakeSink(timekeeping.GraceConfig{})

	svc := newTestService(t, shifts, logs, sink)
	_, err := svc.ComputeDay(context.Background(), "emp-1", day)
	require.NoError(t, err)

	got, err := svc.GetDaySummaries(context.Background(), timekeeping.SummaryFilter{
		EmployeeID: "emp-1",
		From:       "2026-08-09",
		To:         "2026-08-12",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 540, got[0].WorkMinutes)
}
