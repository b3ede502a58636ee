package timekeeping

import (
	"sort"

	"github.com/cmlabs-hris/timekeeping-engine-go/internal/domain/timekeeping"
)

// Gap detection applies only to time-bound shifts: the difference
// between each non-break window and the union of attendance inside it
// becomes LATE (when the gap touches the window's own start) or
// UNDERTIME segments. Gaps are synthetic; they carry no source log.

type span struct {
	start, end int
}

// coverageInside merges log intersections with the window into a
// sorted, non-overlapping span list.
func coverageInside(w timekeeping.ShiftWindow, logs []timekeeping.RawLogInterval) []span {
	var spans []span
	for _, lg := range logs {
		s := max(lg.TimeIn.Minutes(), w.Start.Minutes())
		e := min(lg.TimeOut.Minutes(), w.End.Minutes())
		if s < e {
			spans = append(spans, span{start: s, end: e})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	merged := spans[:0]
	for _, sp := range spans {
		if n := len(merged); n > 0 && sp.start <= merged[n-1].end {
			if sp.end > merged[n-1].end {
				merged[n-1].end = sp.end
			}
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}

// detectWindowGaps finds LATE/UNDERTIME segments for every non-break
// window. A window skipped entirely while the employee attended other
// windows counts as undertime for its whole span. When the day has no
// attendance at all nothing is emitted; full absence is derived from
// credited minutes, not from gaps. Detected gaps are trimmed against
// every break window before they are emitted so break time never
// registers as a deduction.
func detectWindowGaps(windows []timekeeping.ShiftWindow, logs []timekeeping.RawLogInterval) []timekeeping.Segment {
	var breaks []span
	for _, w := range windows {
		if w.IsBreak {
			breaks = append(breaks, span{start: w.Start.Minutes(), end: w.End.Minutes()})
		}
	}

	var gaps []timekeeping.Segment
	for _, w := range windows {
		if w.IsBreak {
			continue
		}
		coverage := coverageInside(w, logs)
		if len(coverage) == 0 {
			if len(logs) > 0 {
				gaps = append(gaps, timekeeping.Segment{
					Type:  timekeeping.SegmentUndertime,
					Start: w.Start,
					End:   w.End,
				})
			}
			continue
		}
		cursor := w.Start.Minutes()
		for _, cov := range coverage {
			if cov.start > cursor {
				gaps = append(gaps, gapSegment(w, cursor, cov.start))
			}
			if cov.end > cursor {
				cursor = cov.end
			}
		}
		if cursor < w.End.Minutes() {
			gaps = append(gaps, gapSegment(w, cursor, w.End.Minutes()))
		}
	}

	gaps = trimAgainst(gaps, breaks)
	return dropContainedGaps(gaps)
}

func gapSegment(w timekeeping.ShiftWindow, start, end int) timekeeping.Segment {
	typ := timekeeping.SegmentUndertime
	if start == w.Start.Minutes() {
		typ = timekeeping.SegmentLate
	}
	return timekeeping.Segment{Type: typ, Start: clockAt(start), End: clockAt(end)}
}

func trimAgainst(segs []timekeeping.Segment, spans []span) []timekeeping.Segment {
	if len(spans) == 0 {
		return segs
	}
	var out []timekeeping.Segment
	for _, seg := range segs {
		pieces := []timekeeping.Segment{seg}
		for _, sp := range spans {
			var next []timekeeping.Segment
			for _, p := range pieces {
				next = append(next, subtractSpan(p, sp.start, sp.end)...)
			}
			pieces = next
		}
		out = append(out, pieces...)
	}
	return out
}

// dropContainedGaps discards a gap fully contained within a strictly
// larger gap already found; overlapping windows can propose the same
// miss twice at different extents.
func dropContainedGaps(gaps []timekeeping.Segment) []timekeeping.Segment {
	out := gaps[:0]
	for i, g := range gaps {
		contained := false
		for j, other := range gaps {
			if i == j || g.Minutes() >= other.Minutes() {
				continue
			}
			if g.Start.Minutes() >= other.Start.Minutes() && g.End.Minutes() <= other.End.Minutes() {
				contained = true
				break
			}
		}
		if !contained {
			out = append(out, g)
		}
	}
	return dedupePartition(out)
}
