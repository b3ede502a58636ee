package timekeeping

import (
	"testing"

	"github.com/cmlabs-hris/timekeeping-engine-go/internal/domain/timekeeping"
	"github.com/stretchr/testify/assert"
)

// Scenario: shift 08:00-17:00, single log 08:15-17:00 yields a LATE
// gap at the window start.
func TestDetectWindowGapsLateArrival(t *testing.T) {
	t.Parallel()

	windows := []timekeeping.ShiftWindow{window(t, "08:00", "17:00", false)}
	logs := []timekeeping.RawLogInterval{rawLog(t, "a", "08:15", "17:00")}

	got := detectWindowGaps(windows, logs)
	assert.Equal(t, []timekeeping.Segment{
		seg(t, timekeeping.SegmentLate, "08:00", "08:15"),
	}, got)
}

func TestDetectWindowGapsMidDayAndTail(t *testing.T) {
	t.Parallel()

	windows := []timekeeping.ShiftWindow{window(t, "08:00", "17:00", false)}
	logs := []timekeeping.RawLogInterval{
		rawLog(t, "a", "08:30", "10:00"),
		rawLog(t, "b", "10:30", "16:00"),
	}

	got := detectWindowGaps(windows, logs)
	assert.Equal(t, []timekeeping.Segment{
		seg(t, timekeeping.SegmentLate, "08:00", "08:30"),
		seg(t, timekeeping.SegmentUndertime, "10:00", "10:30"),
		seg(t, timekeeping.SegmentUndertime, "16:00", "17:00"),
	}, got)
}

func TestDetectWindowGapsNoAttendanceEmitsNothing(t *testing.T) {
	t.Parallel()

	windows := []timekeeping.ShiftWindow{window(t, "08:00", "17:00", false)}

	got := detectWindowGaps(windows, nil)
	assert.Empty(t, got)
}

// Break windows never register as a deduction: the detected gap is
// trimmed against every break window before it is emitted.
// Attending the morning window but skipping the afternoon window
// entirely is undertime for the whole skipped window, not a fully
// present day.
func TestDetectWindowGapsSkippedWindowIsUndertime(t *testing.T) {
	t.Parallel()

	windows := []timekeeping.ShiftWindow{
		window(t, "08:00", "12:00", false),
		window(t, "13:00", "17:00", false),
	}
	logs := []timekeeping.RawLogInterval{rawLog(t, "a", "08:00", "12:00")}

	got := detectWindowGaps(windows, logs)
	assert.Equal(t, []timekeeping.Segment{
		seg(t, timekeeping.SegmentUndertime, "13:00", "17:00"),
	}, got)
}

func TestDetectWindowGapsTrimsBreakWindows(t *testing.T) {
	t.Parallel()

	windows := []timekeeping.ShiftWindow{
		window(t, "08:00", "17:00", false),
		window(t, "12:00", "13:00", true),
	}
	// Worker leaves at 11:30 and returns at 13:30; only the non-break
	// slices of the gap count as undertime.
	logs := []timekeeping.RawLogInterval{
		rawLog(t, "a", "08:00", "11:30"),
		rawLog(t, "b", "13:30", "17:00"),
	}

	got := detectWindowGaps(windows, logs)
	assert.Equal(t, []timekeeping.Segment{
		seg(t, timekeeping.SegmentUndertime, "11:30", "12:00"),
		seg(t, timekeeping.SegmentUndertime, "13:00", "13:30"),
	}, got)
}

func TestDetectWindowGapsMultipleBreakWindows(t *testing.T) {
	t.Parallel()

	windows := []timekeeping.ShiftWindow{
		window(t, "08:00", "18:00", false),
		window(t, "10:00", "10:15", true),
		window(t, "12:00", "13:00", true),
	}
	logs := []timekeeping.RawLogInterval{
		rawLog(t, "a", "08:00", "09:45"),
		rawLog(t, "b", "13:15", "18:00"),
	}

	got := detectWindowGaps(windows, logs)
	assert.Equal(t, []timekeeping.Segment{
		seg(t, timekeeping.SegmentUndertime, "09:45", "10:00"),
		seg(t, timekeeping.SegmentUndertime, "10:15", "12:00"),
		seg(t, timekeeping.SegmentUndertime, "13:00", "13:15"),
	}, got)
}

// A smaller gap fully contained in a strictly larger detected gap is
// discarded; overlapping windows can propose the same miss twice.
func TestDetectWindowGapsDropsContainedDuplicates(t *testing.T) {
	t.Parallel()

	windows := []timekeeping.ShiftWindow{
		window(t, "08:00", "12:00", false),
		window(t, "09:00", "11:00", false),
	}
	logs := []timekeeping.RawLogInterval{rawLog(t, "a", "10:00", "12:00")}

	got := detectWindowGaps(windows, logs)
	assert.Equal(t, []timekeeping.Segment{
		seg(t, timekeeping.SegmentLate, "08:00", "10:00"),
	}, got)
}
