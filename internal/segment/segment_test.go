package segment

import (
	"errors"
	"testing"
	"time"

	"subcut/internal/subtitle"
)

func sec(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func cue(index int, start, end float64) subtitle.Entry {
	return subtitle.Entry{
		Index:     index,
		StartTime: sec(start),
		EndTime:   sec(end),
		Text:      "cue",
	}
}

func segmentsEqual(a, b []Segment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name    string
		entries []subtitle.Entry
		want    []Segment
	}{
		{
			name: "gap below threshold merges",
			entries: []subtitle.Entry{
				cue(1, 0, 2),
				cue(2, 2.3, 4),
				cue(3, 10, 12),
			},
			want: []Segment{
				{Start: sec(0), End: sec(4)},
				{Start: sec(10), End: sec(12)},
			},
		},
		{
			name: "overlapping cues merge unconditionally",
			entries: []subtitle.Entry{
				cue(1, 0, 5),
				cue(2, 3, 4),
				cue(3, 4.2, 6),
			},
			want: []Segment{
				{Start: sec(0), End: sec(6)},
			},
		},
		{
			name: "gap at threshold stays separate",
			entries: []subtitle.Entry{
				cue(1, 0, 2),
				cue(2, 2.5, 3),
			},
			want: []Segment{
				{Start: sec(0), End: sec(2)},
				{Start: sec(2.5), End: sec(3)},
			},
		},
		{
			name: "unsorted input is sorted first",
			entries: []subtitle.Entry{
				cue(1, 10, 12),
				cue(2, 0, 2),
			},
			want: []Segment{
				{Start: sec(0), End: sec(2)},
				{Start: sec(10), End: sec(12)},
			},
		},
		{
			name: "single cue",
			entries: []subtitle.Entry{
				cue(1, 1.5, 3),
			},
			want: []Segment{
				{Start: sec(1.5), End: sec(3)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Merge(tt.entries, DefaultConfig())
			if err != nil {
				t.Fatalf("Merge failed: %v", err)
			}
			if !segmentsEqual(got, tt.want) {
				t.Errorf("Merge = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMergeEmptyInput(t *testing.T) {
	got, err := Merge(nil, DefaultConfig())
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected no segments, got %v", got)
	}
}

func TestMergeRejectsInvalidCues(t *testing.T) {
	tests := []struct {
		name    string
		entries []subtitle.Entry
	}{
		{
			name:    "zero-length cue",
			entries: []subtitle.Entry{cue(1, 5, 5)},
		},
		{
			name:    "inverted cue",
			entries: []subtitle.Entry{cue(1, 5, 4)},
		},
		{
			name: "invalid cue among valid ones",
			entries: []subtitle.Entry{
				cue(1, 0, 2),
				cue(2, 3, 3),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Merge(tt.entries, DefaultConfig())
			if err == nil {
				t.Fatal("expected error for invalid cue")
			}
			var invalidErr *InvalidIntervalError
			if !errors.As(err, &invalidErr) {
				t.Errorf("expected InvalidIntervalError, got %v", err)
			}
		})
	}
}

func TestMergeIdempotent(t *testing.T) {
	entries := []subtitle.Entry{
		cue(1, 0, 2),
		cue(2, 2.3, 4),
		cue(3, 4.1, 5),
		cue(4, 10, 12),
		cue(5, 13, 14),
	}

	first, err := Merge(entries, DefaultConfig())
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	asEntries := make([]subtitle.Entry, len(first))
	for i, s := range first {
		asEntries[i] = subtitle.Entry{
			Index:     i + 1,
			StartTime: s.Start,
			EndTime:   s.End,
		}
	}

	second, err := Merge(asEntries, DefaultConfig())
	if err != nil {
		t.Fatalf("second Merge failed: %v", err)
	}

	if !segmentsEqual(first, second) {
		t.Errorf("merge not idempotent: %v then %v", first, second)
	}
}

func TestMergeInvariants(t *testing.T) {
	entries := []subtitle.Entry{
		cue(1, 3, 4),
		cue(2, 0, 1),
		cue(3, 0.5, 2),
		cue(4, 2.2, 2.9),
		cue(5, 8, 9),
		cue(6, 9.4, 10),
		cue(7, 20, 21),
	}
	cfg := DefaultConfig()

	segments, err := Merge(entries, cfg)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	for i := 0; i < len(segments)-1; i++ {
		if segments[i].End > segments[i+1].Start {
			t.Errorf(
				"segments %d and %d overlap: %v, %v",
				i, i+1, segments[i], segments[i+1],
			)
		}
		gap := segments[i+1].Start - segments[i].End
		if gap < cfg.MergeGap {
			t.Errorf(
				"segments %d and %d should have merged (gap %v < %v)",
				i, i+1, gap, cfg.MergeGap,
			)
		}
	}

	// every cue span must be covered by some segment
	for _, entry := range entries {
		covered := false
		for _, s := range segments {
			if entry.StartTime >= s.Start && entry.EndTime <= s.End {
				covered = true
				break
			}
		}
		if !covered {
			t.Errorf("cue %d (%v-%v) not covered by any segment",
				entry.Index, entry.StartTime, entry.EndTime)
		}
	}
}

func TestTotal(t *testing.T) {
	segments := []Segment{
		{Start: sec(0), End: sec(4)},
		{Start: sec(10), End: sec(12)},
	}
	if got := Total(segments); got != sec(6) {
		t.Errorf("Total = %v, want %v", got, sec(6))
	}
	if got := Total(nil); got != 0 {
		t.Errorf("Total(nil) = %v, want 0", got)
	}
}
