package cli

import (
	"path/filepath"
	"strings"
)

// siblingSubtitle returns the .srt file next to a video, e.g.
// "clips/talk.mp4" -> "clips/talk.srt".
func siblingSubtitle(videoPath string) string {
	return strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".srt"
}

// derivedPath inserts a suffix before the extension, e.g.
// ("talk.srt", "_cut") -> "talk_cut.srt".
func derivedPath(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}
