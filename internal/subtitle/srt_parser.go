package subtitle

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

type SRTFile struct {
	entries []Entry
	skipped int
}

var srtTimestampRegex = regexp.MustCompile(
	`(\d{2}):(\d{2}):(\d{2}),(\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2}),(\d{3})`,
)

// parseSRTFile reads an SRT file cue block by cue block. Blocks without a
// parseable time range are skipped and counted rather than failing the
// whole file; hand-edited subtitles are rarely pristine. A file where
// every block is malformed fails with MalformedCueError.
func parseSRTFile(path string) (*SRTFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SRT file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	blocks, err := scanBlocks(file)
	if err != nil {
		return nil, fmt.Errorf("error reading SRT file: %w", err)
	}

	f := &SRTFile{}
	firstBadLine := 0

	for _, b := range blocks {
		entry, ok := parseSRTBlock(b)
		if !ok {
			f.skipped++
			if firstBadLine == 0 {
				firstBadLine = b.line
			}
			continue
		}
		f.entries = append(f.entries, entry)
	}

	if len(f.entries) == 0 && f.skipped > 0 {
		return nil, &MalformedCueError{Path: path, Line: firstBadLine}
	}

	return f, nil
}

func parseSRTBlock(b block) (Entry, bool) {
	lines := b.lines
	var entry Entry

	// optional numeric index line ahead of the timestamps
	next := 0
	if index, err := strconv.Atoi(strings.TrimSpace(lines[0])); err == nil {
		entry.Index = index
		next = 1
	}

	if next >= len(lines) {
		return Entry{}, false
	}

	matches := srtTimestampRegex.FindStringSubmatch(lines[next])
	if len(matches) != 9 {
		return Entry{}, false
	}

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
	entry.Text = strings.Join(lines[next+1:], "\n")

	return entry, true
}

func (f *SRTFile) Format() Format {
	return FormatSRT
}

func (f *SRTFile) Subtitle() *Subtitle {
	return &Subtitle{
		Entries: f.entries,
		Format:  string(FormatSRT),
	}
}

func (f *SRTFile) Skipped() int {
	return f.skipped
}
