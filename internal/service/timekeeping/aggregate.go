package timekeeping

import (
	"github.com/cmlabs-hris/timekeeping-engine-go/internal/domain/timekeeping"
)

// Aggregation reduces the final partitions to day totals: raw sums per
// type, grace thresholds, the flexitime undertime override, the
// break-threshold deduction, and presence/absence derivation.

// applyGrace is an all-or-nothing step function: at or under the
// threshold the whole raw value is forgiven, above it the whole raw
// value counts. Never prorated.
func applyGrace(raw, graceMinutes int) int {
	if raw <= graceMinutes {
		return 0
	}
	return raw
}

func aggregateDay(rc *runContext, grace timekeeping.GraceConfig, onApprovedLeave bool) timekeeping.DaySummary {
	totals := totalMinutes(rc.day)
	for typ, mins := range totalMinutes(rc.next) {
		totals[typ] += mins
	}

	work := totals[timekeeping.SegmentWorkTime]
	brk := totals[timekeeping.SegmentBreakTime]
	rawLate := totals[timekeeping.SegmentLate]
	rawUndertime := totals[timekeeping.SegmentUndertime]
	rawOvertime := totals[timekeeping.SegmentOvertime]
	nightDiff := totals[timekeeping.SegmentNightDiff]
	rawNightDiffOT := totals[timekeeping.SegmentNightDiffOvertime]

	shift := rc.shift

	// Shifts without explicit break windows state a break budget plus a
	// work threshold; crossing it moves the budget from work to break
	// in the totals only, never in the partition.
	if shift.BreakMinutes > 0 && shift.BreakThresholdMinutes > 0 &&
		work >= int(shift.BreakThresholdMinutes) {
		moved := min(int(shift.BreakMinutes), work)
		work -= moved
		brk += moved
	}

	// Flexitime measures undertime against the target, not against
	// window gaps.
	if shift.Type == timekeeping.ShiftFlexitime && work > 0 {
		rawUndertime = max(0, int(shift.TargetMinutes)-work)
	}

	late := applyGrace(rawLate, grace.LateGraceMinutes)
	undertime := applyGrace(rawUndertime, grace.UndertimeGraceMinutes)
	overtime := applyGrace(rawOvertime, grace.OvertimeGraceMinutes)
	nightDiffOT := applyGrace(rawNightDiffOT, grace.OvertimeGraceMinutes)

	credited := work + overtime + nightDiff + nightDiffOT

	present, absent := 0, 0
	switch {
	case shift.NoAbsence():
		if credited > 0 {
			present = 1
		}
	case credited == 0 && !onApprovedLeave:
		absent = 1
	default:
		present = 1
	}

	return timekeeping.DaySummary{
		EmployeeID:               rc.employeeID,
		Date:                     rc.date,
		CutoffID:                 timekeeping.CutoffID(rc.date),
		WorkMinutes:              work,
		BreakMinutes:             brk,
		RawLateMinutes:           rawLate,
		LateMinutes:              late,
		RawUndertimeMinutes:      rawUndertime,
		UndertimeMinutes:         undertime,
		RawOvertimeMinutes:       rawOvertime,
		OvertimeMinutes:          overtime,
		NightDiffMinutes:         nightDiff,
		RawNightDiffOTMinutes:    rawNightDiffOT,
		NightDiffOvertimeMinutes: nightDiffOT,
		TotalCreditedMinutes:     credited,
		PresentDayCount:          present,
		AbsentCount:              absent,
	}
}

// zeroSummary is persisted when no shift definition resolves: the run
// reports zero totals rather than guessing, and records no absence.
func zeroSummary(employeeID string, rc *runContext) timekeeping.DaySummary {
	return timekeeping.DaySummary{
		EmployeeID: employeeID,
		Date:       rc.date,
		CutoffID:   timekeeping.CutoffID(rc.date),
	}
}
