package timekeeping

import (
	"log/slog"

	"github.com/cmlabs-hris/timekeeping-engine-go/internal/domain/timekeeping"
)

// Work-time classification turns raw clock intervals into WORK_TIME,
// BREAK_TIME, and OVERTIME segments. Time-bound shifts intersect logs
// with scheduled windows; flexible shifts burn down a target-minute
// quota in chronological order.

// normalizeLogs drops empty intervals and resolves overlapping rows
// first-wins: a later log is clipped to start where the previous one
// ended. Overlap is a data-quality problem, not a fatal error.
func normalizeLogs(employeeID string, logs []timekeeping.RawLogInterval) []timekeeping.RawLogInterval {
	out := make([]timekeeping.RawLogInterval, 0, len(logs))
	highWater := 0
	for _, lg := range logs {
		in := lg.TimeIn.Minutes()
		outAt := lg.TimeOut.Minutes()
		if in < highWater {
			slog.Warn("overlapping raw attendance logs, keeping earlier row",
				"employee_id", employeeID,
				"log_id", lg.ID,
				"error", timekeeping.ErrOverlappingRawLogs)
			in = highWater
		}
		if in >= outAt {
			continue
		}
		lg.TimeIn = clockAt(in)
		out = append(out, lg)
		if outAt > highWater {
			highWater = outAt
		}
	}
	return out
}

// windowIntersections emits one segment per (window, log) pair with a
// non-empty intersection: BREAK_TIME for break windows, WORK_TIME
// otherwise.
func windowIntersections(windows []timekeeping.ShiftWindow, logs []timekeeping.RawLogInterval) []timekeeping.Segment {
	var segs []timekeeping.Segment
	for _, w := range windows {
		for _, lg := range logs {
			lg := lg
			inStart := max(lg.TimeIn.Minutes(), w.Start.Minutes())
			outEnd := min(lg.TimeOut.Minutes(), w.End.Minutes())
			if inStart >= outEnd {
				continue
			}
			typ := timekeeping.SegmentWorkTime
			if w.IsBreak {
				typ = timekeeping.SegmentBreakTime
			}
			segs = append(segs, timekeeping.Segment{
				Type:        typ,
				Start:       clockAt(inStart),
				End:         clockAt(outEnd),
				SourceLogID: &lg.ID,
			})
		}
	}
	return segs
}

// overtimeLeftovers returns the portions of each log not covered by
// any scheduled window; attendance outside the shift is overtime.
func overtimeLeftovers(windows []timekeeping.ShiftWindow, logs []timekeeping.RawLogInterval) []timekeeping.Segment {
	var segs []timekeeping.Segment
	for _, lg := range logs {
		lg := lg
		pieces := []timekeeping.Segment{{
			Type:        timekeeping.SegmentOvertime,
			Start:       lg.TimeIn,
			End:         lg.TimeOut,
			SourceLogID: &lg.ID,
		}}
		for _, w := range windows {
			var next []timekeeping.Segment
			for _, p := range pieces {
				next = append(next, subtractSpan(p, w.Start.Minutes(), w.End.Minutes())...)
			}
			pieces = next
		}
		segs = append(segs, pieces...)
	}
	return segs
}

// classifyTimeBound builds the day's work/break/overtime segments for
// a time-bound shift.
func classifyTimeBound(shift *timekeeping.ShiftDefinition, logs []timekeeping.RawLogInterval) []timekeeping.Segment {
	var partition []timekeeping.Segment
	var work, brk []timekeeping.Segment
	for _, seg := range windowIntersections(shift.Windows, logs) {
		if seg.Type == timekeeping.SegmentBreakTime {
			brk = append(brk, seg)
		} else {
			work = append(work, seg)
		}
	}
	// Break windows sit inside work windows in most stored shifts, so
	// breaks insert second and carve the work segments.
	partition = insertSegments(work, partition)
	partition = insertSegments(brk, partition)
	partition = insertSegments(overtimeLeftovers(shift.Windows, logs), partition)
	return partition
}

// classifyFlexible walks logs chronologically against the shift's
// target. The log that exhausts the target is split; it and every
// later log overflow into OVERTIME. Rest and extra days run the same
// way with a zero target, so all attendance is overtime.
func classifyFlexible(shift *timekeeping.ShiftDefinition, logs []timekeeping.RawLogInterval) []timekeeping.Segment {
	remaining := int(shift.TargetMinutes)
	var segs []timekeeping.Segment
	for _, lg := range logs {
		lg := lg
		dur := lg.DurationMinutes()
		switch {
		case remaining >= dur:
			segs = append(segs, timekeeping.Segment{
				Type:        timekeeping.SegmentWorkTime,
				Start:       lg.TimeIn,
				End:         lg.TimeOut,
				SourceLogID: &lg.ID,
			})
			remaining -= dur
		case remaining > 0:
			split := lg.TimeIn.Minutes() + remaining
			segs = append(segs,
				timekeeping.Segment{
					Type:        timekeeping.SegmentWorkTime,
					Start:       lg.TimeIn,
					End:         clockAt(split),
					SourceLogID: &lg.ID,
				},
				timekeeping.Segment{
					Type:        timekeeping.SegmentOvertime,
					Start:       clockAt(split),
					End:         lg.TimeOut,
					SourceLogID: &lg.ID,
				})
			remaining = 0
		default:
			segs = append(segs, timekeeping.Segment{
				Type:        timekeeping.SegmentOvertime,
				Start:       lg.TimeIn,
				End:         lg.TimeOut,
				SourceLogID: &lg.ID,
			})
		}
	}
	return insertSegments(segs, nil)
}
