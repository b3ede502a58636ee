package timekeeping

import (
	"github.com/cmlabs-hris/timekeeping-engine-go/internal/domain/timekeeping"
	"github.com/cmlabs-hris/timekeeping-engine-go/internal/pkg/daytime"
)

// Night differential is a second pass over an already-classified
// partition: the slice of a WORK_TIME or OVERTIME segment falling
// inside a night band is re-emitted under the night type, and the
// remainder keeps its original type. Running the overlay twice is a
// no-op because night segments are never re-intersected.

// The two statutory night bands: 22:00-24:00 and 00:00-06:00.
const (
	eveningBandStart = 22 * 60
	eveningBandEnd   = daytime.MinutesPerDay
	morningBandStart = 0
	morningBandEnd   = 6 * 60
)

var nightBands = []span{
	{start: eveningBandStart, end: eveningBandEnd},
	{start: morningBandStart, end: morningBandEnd},
}

// validateNightBands guards against an inverted band configuration;
// it runs once at engine construction.
func validateNightBands() error {
	for _, b := range nightBands {
		if b.start >= b.end || b.start < 0 || b.end > daytime.MinutesPerDay {
			return timekeeping.ErrNightBandMisconfigured
		}
	}
	return nil
}

// overlayNight applies both night bands to one partition and returns
// the partition with night segments replacing the overlapped slices.
func overlayNight(partition []timekeeping.Segment) []timekeeping.Segment {
	var overlays []timekeeping.Segment
	for _, seg := range partition {
		var typ timekeeping.SegmentType
		switch seg.Type {
		case timekeeping.SegmentWorkTime:
			typ = timekeeping.SegmentNightDiff
		case timekeeping.SegmentOvertime:
			typ = timekeeping.SegmentNightDiffOvertime
		default:
			continue
		}
		for _, band := range nightBands {
			s := max(seg.Start.Minutes(), band.start)
			e := min(seg.End.Minutes(), band.end)
			if s >= e {
				continue
			}
			overlays = append(overlays, timekeeping.Segment{
				Type:        typ,
				Start:       clockAt(s),
				End:         clockAt(e),
				SourceLogID: seg.SourceLogID,
			})
		}
	}
	return insertSegments(overlays, partition)
}
