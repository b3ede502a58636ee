package timekeeping

import (
	"sort"

	"github.com/cmlabs-hris/timekeeping-engine-go/internal/domain/timekeeping"
	"github.com/cmlabs-hris/timekeeping-engine-go/internal/pkg/daytime"
)

// The partition primitive is the only mutation path classifiers use.
// Every pass proposes new segments and merges them here, so the
// no-overlap invariant holds after every insertion regardless of the
// order passes run in.

// removeOverlap trims the existing partition around each incoming
// segment. An existing segment overlapped by an incoming one is
// replaced by zero, one, or two sub-segments covering only the
// non-overlapping remainder; untouched segments pass through.
func removeOverlap(incoming, existing []timekeeping.Segment) []timekeeping.Segment {
	out := make([]timekeeping.Segment, 0, len(existing))
	for _, seg := range existing {
		pieces := []timekeeping.Segment{seg}
		for _, in := range incoming {
			var next []timekeeping.Segment
			for _, p := range pieces {
				next = append(next, subtractSpan(p, in.Start.Minutes(), in.End.Minutes())...)
			}
			pieces = next
		}
		out = append(out, pieces...)
	}
	return out
}

// subtractSpan removes [start, end) from seg, keeping seg's type and
// source log on the remainder pieces.
func subtractSpan(seg timekeeping.Segment, start, end int) []timekeeping.Segment {
	segStart := seg.Start.Minutes()
	segEnd := seg.End.Minutes()

	if end <= segStart || start >= segEnd {
		return []timekeeping.Segment{seg}
	}

	var pieces []timekeeping.Segment
	if segStart < start {
		left := seg
		left.End = seg.Start.Add(start - segStart)
		pieces = append(pieces, left)
	}
	if end < segEnd {
		right := seg
		right.Start = seg.Start.Add(end - segStart)
		pieces = append(pieces, right)
	}
	return pieces
}

// insertSegments merges new segments into a partition; each incoming
// segment claims its minutes, splitting whatever held them before.
// Segments fold in one at a time so a batch whose members overlap
// each other (overlapping scheduled windows produce one) cannot land
// the same minutes twice.
func insertSegments(incoming, partition []timekeeping.Segment) []timekeeping.Segment {
	for _, in := range incoming {
		if in.Start.Minutes() >= in.End.Minutes() {
			continue
		}
		partition = append(removeOverlap([]timekeeping.Segment{in}, partition), in)
	}
	sortPartition(partition)
	return partition
}

// dedupePartition collapses exact-duplicate (start, end) pairs, which
// two detection passes can independently propose for the same gap.
func dedupePartition(partition []timekeeping.Segment) []timekeeping.Segment {
	seen := make(map[[2]int]bool, len(partition))
	out := partition[:0]
	for _, seg := range partition {
		key := [2]int{seg.Start.Minutes(), seg.End.Minutes()}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, seg)
	}
	return out
}

func sortPartition(partition []timekeeping.Segment) {
	sort.SliceStable(partition, func(i, j int) bool {
		return partition[i].Start.Minutes() < partition[j].Start.Minutes()
	})
}

// clockAt builds a TimeOfDay from a minute count the engine already
// validated; classification math stays within 0..MinutesPerDay.
func clockAt(n int) daytime.TimeOfDay {
	t, _ := daytime.FromMinutes(n)
	return t
}

// totalMinutes sums segment durations per type.
func totalMinutes(partition []timekeeping.Segment) map[timekeeping.SegmentType]int {
	totals := make(map[timekeeping.SegmentType]int)
	for _, seg := range partition {
		totals[seg.Type] += int(seg.Minutes())
	}
	return totals
}
