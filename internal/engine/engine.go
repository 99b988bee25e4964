// Package engine drives the external ffmpeg process that executes a
// compiled filter graph. Everything up to the process boundary is pure;
// this is where the pipeline touches the real encoder.
package engine

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "subcut/internal/ffmpeg"
	"subcut/internal/filtergraph"
)

// rate control mode for the video encoder
type RateControl string

const (
	RateControlCBR RateControl = "cbr"
	RateControlVBR RateControl = "vbr"
)

// Options holds the encoder flags passed to ffmpeg.
type Options struct {
	Codec              string      // video encoder, e.g. h264_nvenc, libx264
	Preset             string      // encoder preset
	RateControl        RateControl // cbr uses Bitrate, vbr uses ConstantQuality
	Bitrate            string      // target bitrate for CBR (e.g. "10M")
	ConstantQuality    int         // CQ value for VBR (0-51, lower is better)
	OutputFrameRate    int         // output frame rate; 0 keeps the source rate
	AudioCodec         string
	MaxMuxingQueueSize int
	FastStart          bool // move the moov atom up front for streaming
}

func DefaultOptions() Options {
	return Options{
		Codec:              "h264_nvenc",
		Preset:             "p4",
		RateControl:        RateControlCBR,
		Bitrate:            "10M",
		ConstantQuality:    23,
		OutputFrameRate:    30,
		AudioCodec:         "aac",
		MaxMuxingQueueSize: 1024,
		FastStart:          true,
	}
}

// Error wraps a failed ffmpeg run together with its diagnostic output.
type Error struct {
	Err    error
	Stderr string
}

func (e *Error) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("ffmpeg failed: %v", e.Err)
	}
	return fmt.Sprintf("ffmpeg failed: %v: %s", e.Err, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Cut runs ffmpeg with the compiled filter graph, producing the final
// concatenated clip. The graph is handed over via a temporary script file
// (-filter_complex_script); inlining it on the command line would hit the
// argument length ceiling once the subtitle yields enough segments.
func Cut(
	ctx context.Context,
	inputPath string,
	script *filtergraph.Script,
	outputPath string,
	opts Options,
) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", inputPath)
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return err
	}

	tempDir, err := os.MkdirTemp("", "subcut-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() {
		_ = os.RemoveAll(tempDir)
	}()

	scriptPath := filepath.Join(tempDir, "filter.txt")
	if err := os.WriteFile(scriptPath, []byte(script.FilterGraph), 0644); err != nil {
		return fmt.Errorf("failed to write filter script: %w", err)
	}

	if err := ensureDir(outputPath); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	compiled := command(inputPath, scriptPath, outputPath, ffmpegPath, opts)
	cmd := exec.CommandContext(ctx, compiled.Path, compiled.Args[1:]...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &Error{Err: err, Stderr: stderr.String()}
	}

	return nil
}

// command builds the ffmpeg invocation without running it.
func command(
	inputPath, scriptPath, outputPath, ffmpegPath string,
	opts Options,
) *exec.Cmd {
	kwargs := ffmpeg.KwArgs{
		"filter_complex_script": scriptPath,
		"map": []string{
			filtergraph.VideoLabel,
			filtergraph.AudioLabel,
		},
		"c:v":                   opts.Codec,
		"c:a":                   opts.AudioCodec,
		"preset":                opts.Preset,
		"max_muxing_queue_size": opts.MaxMuxingQueueSize,
	}

	if opts.OutputFrameRate > 0 {
		kwargs["r"] = opts.OutputFrameRate
	}

	switch opts.RateControl {
	case RateControlVBR:
		kwargs["rc"] = "vbr"
		kwargs["cq"] = opts.ConstantQuality
	default:
		kwargs["b:v"] = opts.Bitrate
	}

	if opts.FastStart {
		kwargs["movflags"] = "+faststart"
	}

	return ffmpeg.Input(inputPath).
		Output(outputPath, kwargs).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		Compile()
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}
