package cli

import "testing"

func TestSiblingSubtitle(t *testing.T) {
	tests := []struct {
		video string
		want  string
	}{
		{"video.mp4", "video.srt"},
		{"clips/talk.mkv", "clips/talk.srt"},
		{"noext", "noext.srt"},
	}

	for _, tt := range tests {
		t.Run(tt.video, func(t *testing.T) {
			if got := siblingSubtitle(tt.video); got != tt.want {
				t.Errorf("siblingSubtitle(%q) = %q, want %q", tt.video, got, tt.want)
			}
		})
	}
}

func TestDerivedPath(t *testing.T) {
	tests := []struct {
		path   string
		suffix string
		want   string
	}{
		{"talk.srt", "_cut", "talk_cut.srt"},
		{"subs/talk.vtt", "_pad", "subs/talk_pad.vtt"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := derivedPath(tt.path, tt.suffix); got != tt.want {
				t.Errorf(
					"derivedPath(%q, %q) = %q, want %q",
					tt.path, tt.suffix, got, tt.want,
				)
			}
		})
	}
}

func TestBackupName(t *testing.T) {
	if got := backupName("video.srt"); got != "video.back.srt" {
		t.Errorf("backupName = %q, want video.back.srt", got)
	}
}
