// Package segment derives the set of time ranges to keep from subtitle
// cues: overlapping or near-adjacent cue spans collapse into one segment,
// everything between segments is cut away.
package segment

import (
	"fmt"
	"sort"
	"time"

	"subcut/internal/subtitle"
)

// kept time range, half of a cut plan
type Segment struct {
	Start time.Duration
	End   time.Duration
}

func (s Segment) Duration() time.Duration {
	return s.End - s.Start
}

// Config carries the merge threshold so batch callers can run pipelines
// with different settings side by side.
type Config struct {
	// cues closer together than this are joined into one segment
	MergeGap time.Duration
}

func DefaultConfig() Config {
	return Config{
		MergeGap: 500 * time.Millisecond,
	}
}

// InvalidIntervalError reports a cue with a zero-length or inverted time
// range. Such cues are data corruption, not something to silently fix.
type InvalidIntervalError struct {
	Index int
	Start time.Duration
	End   time.Duration
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf(
		"cue %d has invalid time range %v --> %v",
		e.Index,
		e.Start,
		e.End,
	)
}

// Merge converts subtitle cues into a minimal ordered set of disjoint
// segments. Cues are sorted by start time (original order breaks ties) and
// a cue whose gap to the open segment is below cfg.MergeGap extends it;
// overlapping cues always merge. The result covers every input cue span,
// segments are sorted and any two neighbours are at least MergeGap apart.
func Merge(entries []subtitle.Entry, cfg Config) ([]Segment, error) {
	for _, entry := range entries {
		if entry.StartTime >= entry.EndTime {
			return nil, &InvalidIntervalError{
				Index: entry.Index,
				Start: entry.StartTime,
				End:   entry.EndTime,
			}
		}
	}

	if len(entries) == 0 {
		return nil, nil
	}

	sorted := make([]subtitle.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})

	segments := []Segment{{
		Start: sorted[0].StartTime,
		End:   sorted[0].EndTime,
	}}

	for _, entry := range sorted[1:] {
		current := &segments[len(segments)-1]
		if entry.StartTime-current.End < cfg.MergeGap {
			if entry.EndTime > current.End {
				current.End = entry.EndTime
			}
			continue
		}
		segments = append(segments, Segment{
			Start: entry.StartTime,
			End:   entry.EndTime,
		})
	}

	return segments, nil
}

// Total returns the summed duration of all segments, i.e. the length of
// the video after cutting.
func Total(segments []Segment) time.Duration {
	var total time.Duration
	for _, s := range segments {
		total += s.Duration()
	}
	return total
}
