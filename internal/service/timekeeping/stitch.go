package timekeeping

import (
	"github.com/cmlabs-hris/timekeeping-engine-go/internal/domain/timekeeping"
)

// Cross-day stitching keeps overnight shifts from double-counting the
// early-morning minutes they share with the following day. Yesterday's
// next-day windows claim those minutes out of today's partition;
// today's own next-day partition is summed into today and re-derived
// (and trimmed away) when tomorrow runs, so single-day recomputation
// stays idempotent as long as days recompute in ascending order.

// carryoverClaims converts a previous day's next-day windows into
// synthetic claim segments for trimming.
func carryoverClaims(prev *timekeeping.ShiftDefinition) []timekeeping.Segment {
	if prev == nil {
		return nil
	}
	claims := make([]timekeeping.Segment, 0, len(prev.NextDayWindows))
	for _, w := range prev.NextDayWindows {
		claims = append(claims, timekeeping.Segment{
			Type:  timekeeping.SegmentWorkTime,
			Start: w.Start,
			End:   w.End,
		})
	}
	return claims
}

// trimCarryover removes yesterday's claimed minutes from today's
// partition. Work, gap, and night segments inside the claim all
// disappear; they were already credited to yesterday.
func trimCarryover(partition []timekeeping.Segment, prev *timekeeping.ShiftDefinition) []timekeeping.Segment {
	claims := carryoverClaims(prev)
	if len(claims) == 0 {
		return partition
	}
	return removeOverlap(claims, partition)
}
