package timekeeping

import (
	"testing"

	"github.com/cmlabs-hris/timekeeping-engine-go/internal/domain/timekeeping"
	"github.com/stretchr/testify/assert"
)

func rawLog(t *testing.T, id, in, out string) timekeeping.RawLogInterval {
	t.Helper()
	return timekeeping.RawLogInterval{ID: id, TimeIn: tod(t, in), TimeOut: tod(t, out)}
}

func window(t *testing.T, start, end string, isBreak bool) timekeeping.ShiftWindow {
	t.Helper()
	return timekeeping.ShiftWindow{Start: tod(t, start), End: tod(t, end), IsBreak: isBreak}
}

// stripSources drops source log ids so tests can compare shapes.
func stripSources(segs []timekeeping.Segment) []timekeeping.Segment {
	out := make([]timekeeping.Segment, 0, len(segs))
	for _, s := range segs {
		s.SourceLogID = nil
		out = append(out, s)
	}
	return out
}

func TestNormalizeLogsFirstWins(t *testing.T) {
	t.Parallel()

	logs := []timekeeping.RawLogInterval{
		rawLog(t, "a", "08:00", "12:00"),
		rawLog(t, "b", "11:00", "15:00"),
		rawLog(t, "c", "14:00", "14:30"),
	}

	got := normalizeLogs("emp-1", logs)
	assert.Equal(t, []timekeeping.RawLogInterval{
		rawLog(t, "a", "08:00", "12:00"),
		rawLog(t, "b", "12:00", "15:00"),
	}, got)
}

// Scenario: time-bound 08:00-17:00 with a 12:00-13:00 break window and
// attendance through 18:00 classifies work around the break and
// overtime past the last window.
func TestClassifyTimeBoundWithBreakAndOvertime(t *testing.T) {
	t.Parallel()

	shift := &timekeeping.ShiftDefinition{
		Type: timekeeping.ShiftTimeBound,
		Windows: []timekeeping.ShiftWindow{
			window(t, "08:00", "17:00", false),
			window(t, "12:00", "13:00", true),
		},
	}
	logs := []timekeeping.RawLogInterval{rawLog(t, "a", "08:00", "18:00")}

	got := classifyTimeBound(shift, logs)

	assert.Equal(t, []timekeeping.Segment{
		seg(t, timekeeping.SegmentWorkTime, "08:00", "12:00"),
		seg(t, timekeeping.SegmentBreakTime, "12:00", "13:00"),
		seg(t, timekeeping.SegmentWorkTime, "13:00", "17:00"),
		seg(t, timekeeping.SegmentOvertime, "17:00", "18:00"),
	}, stripSources(got))
	assertNoOverlap(t, got)
}

// Shifts can store windows that overlap one another. The minutes shared
// by two work windows must be credited once, not once per window.
func TestClassifyTimeBoundOverlappingWindows(t *testing.T) {
	t.Parallel()

	shift := &timekeeping.ShiftDefinition{
		Type: timekeeping.ShiftTimeBound,
		Windows: []timekeeping.ShiftWindow{
			window(t, "08:00", "12:00", false),
			window(t, "09:00", "11:00", false),
		},
	}
	logs := []timekeeping.RawLogInterval{rawLog(t, "a", "10:00", "12:00")}

	got := classifyTimeBound(shift, logs)

	assertNoOverlap(t, got)
	assert.Equal(t, 120, totalMinutes(got)[timekeeping.SegmentWorkTime])
}

func TestClassifyTimeBoundEmptyIntersectionEmitsNothing(t *testing.T) {
	t.Parallel()

	shift := &timekeeping.ShiftDefinition{
		Type:    timekeeping.ShiftTimeBound,
		Windows: []timekeeping.ShiftWindow{window(t, "08:00", "17:00", false)},
	}

	got := classifyTimeBound(shift, nil)
	assert.Empty(t, got)
}

func TestClassifyFlexibleSplitsBoundaryLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		shift  *timekeeping.ShiftDefinition
		logs   []timekeeping.RawLogInterval
		expect []timekeeping.Segment
	}{
		{
			name:  "under target stays work time",
			shift: &timekeeping.ShiftDefinition{Type: timekeeping.ShiftFlexitime, TargetMinutes: 480},
			logs:  []timekeeping.RawLogInterval{rawLog(t, "a", "09:00", "14:00")},
			expect: []timekeeping.Segment{
				seg(t, timekeeping.SegmentWorkTime, "09:00", "14:00"),
			},
		},
		{
			name:  "boundary log splits into work then overtime",
			shift: &timekeeping.ShiftDefinition{Type: timekeeping.ShiftFlexitime, TargetMinutes: 480},
			logs: []timekeeping.RawLogInterval{
				rawLog(t, "a", "08:00", "12:00"),
				rawLog(t, "b", "13:00", "19:00"),
			},
			expect: []timekeeping.Segment{
				seg(t, timekeeping.SegmentWorkTime, "08:00", "12:00"),
				seg(t, timekeeping.SegmentWorkTime, "13:00", "17:00"),
				seg(t, timekeeping.SegmentOvertime, "17:00", "19:00"),
			},
		},
		{
			name:  "logs after the split are all overtime",
			shift: &timekeeping.ShiftDefinition{Type: timekeeping.ShiftFlexitime, TargetMinutes: 240},
			logs: []timekeeping.RawLogInterval{
				rawLog(t, "a", "08:00", "12:00"),
				rawLog(t, "b", "13:00", "15:00"),
			},
			expect: []timekeeping.Segment{
				seg(t, timekeeping.SegmentWorkTime, "08:00", "12:00"),
				seg(t, timekeeping.SegmentOvertime, "13:00", "15:00"),
			},
		},
		{
			name:  "rest day has zero target so all attendance is overtime",
			shift: &timekeeping.ShiftDefinition{Type: timekeeping.ShiftRestDay},
			logs:  []timekeeping.RawLogInterval{rawLog(t, "a", "09:00", "13:00")},
			expect: []timekeeping.Segment{
				seg(t, timekeeping.SegmentOvertime, "09:00", "13:00"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyFlexible(tt.shift, tt.logs)
			assert.Equal(t, tt.expect, stripSources(got))
			assertNoOverlap(t, got)
		})
	}
}

// Coverage conservation: with windows spanning the whole day, every
// minute of every raw log ends up in exactly one log-sourced segment.
func TestClassifyTimeBoundConservesLogCoverage(t *testing.T) {
	t.Parallel()

	shift := &timekeeping.ShiftDefinition{
		Type: timekeeping.ShiftTimeBound,
		Windows: []timekeeping.ShiftWindow{
			window(t, "00:00", "12:00", false),
			window(t, "12:00", "13:00", true),
			window(t, "13:00", "24:00", false),
		},
	}
	logs := []timekeeping.RawLogInterval{
		rawLog(t, "a", "06:30", "12:30"),
		rawLog(t, "b", "12:45", "20:15"),
		rawLog(t, "c", "21:00", "23:59"),
	}

	partition := classifyTimeBound(shift, logs)
	partition = overlayNight(partition)
	assertNoOverlap(t, partition)

	logTotal := 0
	for _, lg := range logs {
		logTotal += lg.DurationMinutes()
	}
	segTotal := 0
	for _, s := range partition {
		if s.SourceLogID != nil {
			segTotal += int(s.Minutes())
		}
	}
	assert.Equal(t, logTotal, segTotal)
}
