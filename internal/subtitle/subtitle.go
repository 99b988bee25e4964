package subtitle

import (
	"fmt"
	"time"
)

// represents single subtitle cue
type Entry struct {
	Index     int
	StartTime time.Duration
	EndTime   time.Duration
	Text      string
}

// represents complete subtitle track
type Subtitle struct {
	Entries []Entry
	Format  string
}

// represents supported subtitle formats
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
)

// interface for writing subtitles to files
type Writer interface {
	Write(subtitle *Subtitle, path string) error
}

// parsed subtitle file
type File interface {
	Format() Format
	Subtitle() *Subtitle
	// number of cue blocks dropped because their time range could not
	// be parsed
	Skipped() int
}

// MalformedCueError reports a subtitle file whose cue blocks could not be
// parsed at all. Individual bad cues inside an otherwise usable file are
// skipped instead (see File.Skipped).
type MalformedCueError struct {
	Path string
	Line int
}

func (e *MalformedCueError) Error() string {
	return fmt.Sprintf(
		"no parseable cues in %s (first malformed block at line %d)",
		e.Path,
		e.Line,
	)
}
