package segment

import (
	"sort"
	"time"

	"subcut/internal/subtitle"
)

// RemapResult accounts for every cue that did not survive remapping
// unchanged, so nothing disappears silently.
type RemapResult struct {
	// cues that fell entirely inside a removed gap
	Dropped int
	// cues that straddled a cut boundary and were trimmed to it
	Clipped int
}

// Remap rewrites cue timestamps into the timeline of the cut video.
// For a time inside the i-th kept segment the new value is the time's
// offset within that segment plus the summed durations of all earlier
// segments. Cues lying entirely inside a removed gap have no position in
// the cut video and are dropped; cues straddling a boundary are clipped
// to the kept span. Surviving cues are renumbered from 1.
func Remap(entries []subtitle.Entry, segments []Segment) ([]subtitle.Entry, RemapResult) {
	var result RemapResult

	if len(segments) == 0 {
		result.Dropped = len(entries)
		return nil, result
	}

	// position of each segment's start in the new timeline
	offsets := make([]time.Duration, len(segments))
	for i := 1; i < len(segments); i++ {
		offsets[i] = offsets[i-1] + segments[i-1].Duration()
	}

	sorted := make([]subtitle.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})

	var out []subtitle.Entry
	for _, entry := range sorted {
		newStart, startClipped, startOK := mapStart(segments, offsets, entry.StartTime)
		newEnd, endClipped, endOK := mapEnd(segments, offsets, entry.EndTime)

		if !startOK || !endOK || newEnd <= newStart {
			result.Dropped++
			continue
		}
		if startClipped || endClipped {
			result.Clipped++
		}

		entry.StartTime = newStart
		entry.EndTime = newEnd
		entry.Index = len(out) + 1
		out = append(out, entry)
	}

	return out, result
}

// mapStart maps a cue start time forward into the first kept segment
// ending after it.
func mapStart(segments []Segment, offsets []time.Duration, t time.Duration) (time.Duration, bool, bool) {
	for i, s := range segments {
		if t < s.End {
			clipped := false
			if t < s.Start {
				t = s.Start
				clipped = true
			}
			return offsets[i] + (t - s.Start), clipped, true
		}
	}
	return 0, false, false
}

// mapEnd maps a cue end time backward into the last kept segment starting
// before it.
func mapEnd(segments []Segment, offsets []time.Duration, t time.Duration) (time.Duration, bool, bool) {
	for i := len(segments) - 1; i >= 0; i-- {
		s := segments[i]
		if s.Start < t {
			clipped := false
			if t > s.End {
				t = s.End
				clipped = true
			}
			return offsets[i] + (t - s.Start), clipped, true
		}
	}
	return 0, false, false
}
