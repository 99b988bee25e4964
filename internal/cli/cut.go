package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"subcut/internal/engine"
	"subcut/internal/filtergraph"
	"subcut/internal/segment"
	"subcut/internal/subtitle"
	"subcut/internal/video"
)

var cutCmd = &cobra.Command{
	Use:   "cut [video_file] [subtitle_file]",
	Short: "Cut a video down to its subtitled segments",
	Long: `Cut a video down to the time ranges covered by its subtitles.

Cue spans closer together than the merge gap are joined into one segment,
the segments are compiled into an ffmpeg filter graph and ffmpeg encodes
the concatenated result with synchronized audio. When no subtitle file is
given, the .srt file next to the video is used.

Two filter graph variants are available: "select" keeps the graph tiny no
matter how many segments there are, "trim" binds audio and video per
segment for tighter sync on variable-frame-rate sources.

Examples:
  subcut cut video.mp4
  subcut cut video.mp4 video.srt -o trimmed.mp4
  subcut cut video.mp4 --variant trim
  subcut cut video.mp4 --vbr --cq 20
  subcut cut video.mp4 --codec libx264 --preset fast
  subcut cut video.mp4 --script filter.txt`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCut,
}

func init() {
	rootCmd.AddCommand(cutCmd)

	cutCmd.Flags().
		String("variant", "select", "Filter graph variant (select, trim)")
	cutCmd.Flags().
		String("codec", "h264_nvenc", "Video encoder")
	cutCmd.Flags().
		String("preset", "p4", "Encoder preset")
	cutCmd.Flags().
		Bool("vbr", false, "Use variable bitrate mode (smaller files)")
	cutCmd.Flags().
		Int("cq", 23, "Constant quality for VBR mode (0-51, lower is better)")
	cutCmd.Flags().
		StringP("bitrate", "b", "10M", "Video bitrate for CBR mode")
	cutCmd.Flags().
		Int("fps", 30, "Output frame rate (0 keeps the source rate)")
	cutCmd.Flags().
		String("script", "", "Write the compiled filter graph to this path instead of encoding")
}

func runCut(cmd *cobra.Command, args []string) error {
	videoPath := args[0]
	subtitlePath := siblingSubtitle(videoPath)
	if len(args) == 2 {
		subtitlePath = args[1]
	}

	variantStr, _ := cmd.Flags().GetString("variant")
	gapSeconds, _ := cmd.Flags().GetFloat64("gap")
	outputPath, _ := cmd.Flags().GetString("output")
	scriptPath, _ := cmd.Flags().GetString("script")

	variant, err := filtergraph.ParseVariant(variantStr)
	if err != nil {
		return err
	}

	subFile, err := openSubtitle(subtitlePath)
	if err != nil {
		return err
	}
	entries := subFile.Subtitle().Entries

	cfg := segment.DefaultConfig()
	cfg.MergeGap = time.Duration(gapSeconds * float64(time.Second))

	segments, err := segment.Merge(entries, cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	info, err := video.Probe(ctx, videoPath)
	if err != nil {
		return fmt.Errorf("failed to probe video: %w", err)
	}
	if !info.HasAudio {
		return fmt.Errorf("input has no audio stream: %s", videoPath)
	}

	compileOpts := filtergraph.DefaultOptions()
	compileOpts.FrameRate = info.RawFrameRate

	script, err := filtergraph.Compile(segments, variant, compileOpts)
	if err != nil {
		return fmt.Errorf("failed to compile filter graph: %w", err)
	}

	logger.Infow("Compiled filter graph",
		"variant", string(variant),
		"segments", script.SegmentCount,
		"kept_duration", script.KeptDuration.String(),
		"source_duration", info.Duration.String(),
	)

	if scriptPath != "" {
		if err := os.WriteFile(scriptPath, []byte(script.FilterGraph), 0644); err != nil {
			return fmt.Errorf("failed to write filter script: %w", err)
		}
		absScript, _ := filepath.Abs(scriptPath)
		fmt.Printf("Filter graph written: %s\n", absScript)
		fmt.Printf("  Segments: %d\n", script.SegmentCount)
		return nil
	}

	if outputPath == "" {
		outputPath = strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + "_cut.mp4"
	}

	encodeOpts := engine.DefaultOptions()
	encodeOpts.Codec, _ = cmd.Flags().GetString("codec")
	encodeOpts.Preset, _ = cmd.Flags().GetString("preset")
	encodeOpts.Bitrate, _ = cmd.Flags().GetString("bitrate")
	encodeOpts.ConstantQuality, _ = cmd.Flags().GetInt("cq")
	encodeOpts.OutputFrameRate, _ = cmd.Flags().GetInt("fps")
	if vbr, _ := cmd.Flags().GetBool("vbr"); vbr {
		encodeOpts.RateControl = engine.RateControlVBR
	}

	logger.Infow("Encoding",
		"input", videoPath,
		"output", outputPath,
		"codec", encodeOpts.Codec,
		"rate_control", string(encodeOpts.RateControl),
	)

	if err := engine.Cut(ctx, videoPath, script, outputPath, encodeOpts); err != nil {
		return fmt.Errorf("cut failed: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Video cut successfully: %s\n", absOutput)
	fmt.Printf("  Segments: %d\n", script.SegmentCount)
	fmt.Printf("  Duration: %s (was %s)\n",
		script.KeptDuration.Round(time.Millisecond),
		info.Duration.Round(time.Millisecond))

	return nil
}

// openSubtitle parses a subtitle file and reports cue blocks that had to
// be skipped.
func openSubtitle(path string) (subtitle.File, error) {
	file, err := subtitle.Open(path)
	if err != nil {
		return nil, err
	}
	if file.Skipped() > 0 {
		logger.Warnw("Skipped malformed cues",
			"file", path,
			"count", file.Skipped(),
		)
	}
	return file, nil
}
