package subtitle

import "time"

// Pad widens each cue by pad at both ends. Starts are clamped to zero and
// to the previous cue's (already padded) end; ends are clamped to the next
// cue's original start, so cues never overlap their neighbours.
func Pad(entries []Entry, pad time.Duration) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)

	for i := range out {
		start := out[i].StartTime - pad
		if start < 0 {
			start = 0
		}
		if i > 0 && start < out[i-1].EndTime {
			start = out[i-1].EndTime
		}

		end := out[i].EndTime + pad
		if i < len(entries)-1 && end > entries[i+1].StartTime {
			end = entries[i+1].StartTime
		}

		out[i].StartTime = start
		out[i].EndTime = end
	}

	return out
}
