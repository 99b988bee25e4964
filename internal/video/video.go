package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	ffmpegbin "subcut/internal/ffmpeg"
)

// video file information
type Info struct {
	Path         string
	Duration     time.Duration
	Width        int
	Height       int
	Codec        string
	FrameRate    float64
	RawFrameRate string // r_frame_rate as reported, e.g. "30000/1001"
	HasAudio     bool
}

// JSON output from ffprobe
type ffprobeOutput struct {
	Streams []struct {
		CodecName  string `json:"codec_name"`
		CodecType  string `json:"codec_type"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		RFrameRate string `json:"r_frame_rate"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe inspects a media file with ffprobe.
func Probe(ctx context.Context, videoPath string) (*Info, error) {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("video file not found: %s", videoPath)
	}

	ffprobePath, err := ffmpegbin.FFprobePath()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		videoPath,
	)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(out.Bytes(), &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	info := &Info{Path: videoPath}

	if probe.Format.Duration != "" {
		var secs float64
		if _, err := fmt.Sscanf(probe.Format.Duration, "%f", &secs); err != nil {
			return nil, fmt.Errorf("failed to parse duration: %w", err)
		}
		info.Duration = time.Duration(secs * float64(time.Second))
	}

	for _, stream := range probe.Streams {
		switch stream.CodecType {
		case "video":
			if info.Codec != "" {
				continue
			}
			info.Codec = stream.CodecName
			info.Width = stream.Width
			info.Height = stream.Height
			info.RawFrameRate = stream.RFrameRate
			if rate, err := ParseFrameRate(stream.RFrameRate); err == nil {
				info.FrameRate = rate
			}
		case "audio":
			info.HasAudio = true
		}
	}

	if info.Codec == "" {
		return nil, fmt.Errorf("no video stream in %s", videoPath)
	}

	return info, nil
}

// ParseFrameRate converts an ffprobe rational frame rate ("60/1",
// "30000/1001") to frames per second.
func ParseFrameRate(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty frame rate")
	}

	num, den, found := strings.Cut(raw, "/")
	if !found {
		return strconv.ParseFloat(raw, 64)
	}

	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid frame rate %q: %w", raw, err)
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid frame rate %q: %w", raw, err)
	}
	if d == 0 {
		return 0, fmt.Errorf("invalid frame rate %q: zero denominator", raw)
	}

	return n / d, nil
}
