package subtitle

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

type VTTFile struct {
	entries []Entry
	skipped int
}

var (
	vttTimestampRegex = regexp.MustCompile(
		`(\d{2}):(\d{2}):(\d{2})\.(\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2})\.(\d{3})`,
	)
	// MM:SS.mmm form without the hours field
	vttShortTimestampRegex = regexp.MustCompile(
		`(\d{2}):(\d{2})\.(\d{3})\s*-->\s*(\d{2}):(\d{2})\.(\d{3})`,
	)
)

// parseVTTFile follows the same lenient policy as the SRT parser: cue
// blocks without a usable time range are skipped and counted.
func parseVTTFile(path string) (*VTTFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open VTT file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	blocks, err := scanBlocks(file)
	if err != nil {
		return nil, fmt.Errorf("error reading VTT file: %w", err)
	}

	f := &VTTFile{}
	firstBadLine := 0

	for i, b := range blocks {
		head := strings.TrimSpace(b.lines[0])

		if i == 0 && strings.HasPrefix(head, "WEBVTT") {
			continue
		}
		// non-cue blocks
		if strings.HasPrefix(head, "NOTE") ||
			strings.HasPrefix(head, "STYLE") ||
			strings.HasPrefix(head, "REGION") {
			continue
		}

		entry, ok := parseVTTBlock(b)
		if !ok {
			f.skipped++
			if firstBadLine == 0 {
				firstBadLine = b.line
			}
			continue
		}
		entry.Index = len(f.entries) + 1
		f.entries = append(f.entries, entry)
	}

	if len(f.entries) == 0 && f.skipped > 0 {
		return nil, &MalformedCueError{Path: path, Line: firstBadLine}
	}

	return f, nil
}

func parseVTTBlock(b block) (Entry, bool) {
	lines := b.lines

	// optional cue identifier line ahead of the timestamps
	next := 0
	if !strings.Contains(lines[0], "-->") {
		next = 1
	}
	if next >= len(lines) {
		return Entry{}, false
	}

	var entry Entry

	if matches := vttTimestampRegex.FindStringSubmatch(lines[next]); len(matches) == 9 {
		startTime, err := clockTime(matches[1], matches[2], matches[3], matches[4])
		if err != nil {
			return Entry{}, false
		}
		endTime, err := clockTime(matches[5], matches[6], matches[7], matches[8])
		if err != nil {
			return Entry{}, false
		}
		entry.StartTime = startTime
		entry.EndTime = endTime
	} else if matches := vttShortTimestampRegex.FindStringSubmatch(lines[next]); len(matches) == 7 {
		startTime, err := clockTime("0", matches[1], matches[2], matches[3])
		if err != nil {
			return Entry{}, false
		}
		endTime, err := clockTime("0", matches[4], matches[5], matches[6])
		if err != nil {
			return Entry{}, false
		}
		entry.StartTime = startTime
		entry.EndTime = endTime
	} else {
		return Entry{}, false
	}

	entry.Text = strings.Join(lines[next+1:], "\n")

	return entry, true
}

func (f *VTTFile) Format() Format {
	return FormatVTT
}

func (f *VTTFile) Subtitle() *Subtitle {
	return &Subtitle{
		Entries: f.entries,
		Format:  string(FormatVTT),
	}
}

func (f *VTTFile) Skipped() int {
	return f.skipped
}
