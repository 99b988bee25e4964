package engine

import (
	"testing"

	"subcut/internal/filtergraph"
)

func hasArgPair(args []string, flag, value string) bool {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag && args[i+1] == value {
			return true
		}
	}
	return false
}

func hasArg(args []string, flag string) bool {
	for _, arg := range args {
		if arg == flag {
			return true
		}
	}
	return false
}

func TestCommandCBR(t *testing.T) {
	cmd := command(
		"input.mp4",
		"/tmp/filter.txt",
		"output.mp4",
		"/usr/bin/ffmpeg",
		DefaultOptions(),
	)
	args := cmd.Args

	if args[0] != "/usr/bin/ffmpeg" {
		t.Errorf("binary = %q, want /usr/bin/ffmpeg", args[0])
	}

	checks := [][2]string{
		{"-i", "input.mp4"},
		{"-filter_complex_script", "/tmp/filter.txt"},
		{"-map", filtergraph.VideoLabel},
		{"-map", filtergraph.AudioLabel},
		{"-c:v", "h264_nvenc"},
		{"-c:a", "aac"},
		{"-preset", "p4"},
		{"-b:v", "10M"},
		{"-r", "30"},
		{"-max_muxing_queue_size", "1024"},
		{"-movflags", "+faststart"},
	}
	for _, check := range checks {
		if !hasArgPair(args, check[0], check[1]) {
			t.Errorf("missing %s %s in %v", check[0], check[1], args)
		}
	}

	if !hasArg(args, "-y") {
		t.Errorf("missing -y in %v", args)
	}
	if args[len(args)-1] != "output.mp4" {
		t.Errorf("last arg = %q, want output.mp4", args[len(args)-1])
	}

	// CBR must not carry VBR flags
	if hasArg(args, "-rc") || hasArg(args, "-cq") {
		t.Errorf("unexpected VBR flags in %v", args)
	}
}

func TestCommandVBR(t *testing.T) {
	opts := DefaultOptions()
	opts.RateControl = RateControlVBR
	opts.ConstantQuality = 20

	cmd := command(
		"input.mp4",
		"/tmp/filter.txt",
		"output.mp4",
		"/usr/bin/ffmpeg",
		opts,
	)
	args := cmd.Args

	if !hasArgPair(args, "-rc", "vbr") {
		t.Errorf("missing -rc vbr in %v", args)
	}
	if !hasArgPair(args, "-cq", "20") {
		t.Errorf("missing -cq 20 in %v", args)
	}
	if hasArg(args, "-b:v") {
		t.Errorf("unexpected -b:v in VBR mode: %v", args)
	}
}

func TestCommandSourceFrameRate(t *testing.T) {
	opts := DefaultOptions()
	opts.OutputFrameRate = 0

	cmd := command(
		"input.mp4",
		"/tmp/filter.txt",
		"output.mp4",
		"/usr/bin/ffmpeg",
		opts,
	)

	if hasArg(cmd.Args, "-r") {
		t.Errorf("unexpected -r with source frame rate: %v", cmd.Args)
	}
}
