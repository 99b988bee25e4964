package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"subcut/internal/segment"
	"subcut/internal/subtitle"
)

var syncCmd = &cobra.Command{
	Use:   "sync [subtitle_file]",
	Short: "Remap subtitle timestamps onto the cut timeline",
	Long: `Rewrite a subtitle file so its timestamps match the video after cutting.

The same merge logic as "cut" determines which time ranges survive; every
removed gap is subtracted from the timestamps behind it. Use the same
--gap value as the cut, or the subtitles will drift. Cues that fall
entirely inside a removed gap are dropped, cues straddling a cut boundary
are clipped to it.

Examples:
  subcut sync video.srt
  subcut sync video.srt -o video_synced.srt
  subcut sync video.srt --gap 0.3
  subcut sync video.srt --inplace`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().
		Bool("inplace", false, "Overwrite the input file")
}

func runSync(cmd *cobra.Command, args []string) error {
	subtitlePath := args[0]

	gapSeconds, _ := cmd.Flags().GetFloat64("gap")
	outputPath, _ := cmd.Flags().GetString("output")
	inplace, _ := cmd.Flags().GetBool("inplace")

	file, err := openSubtitle(subtitlePath)
	if err != nil {
		return err
	}
	entries := file.Subtitle().Entries

	cfg := segment.DefaultConfig()
	cfg.MergeGap = time.Duration(gapSeconds * float64(time.Second))

	segments, err := segment.Merge(entries, cfg)
	if err != nil {
		return err
	}

	remapped, result := segment.Remap(entries, segments)

	if result.Dropped > 0 {
		logger.Warnw("Dropped cues inside removed gaps",
			"count", result.Dropped,
		)
	}
	if result.Clipped > 0 {
		logger.Infow("Clipped cues at cut boundaries",
			"count", result.Clipped,
		)
	}

	saved := trackEnd(entries) - trackEnd(remapped)
	logger.Infow("Remapped subtitle timestamps",
		"cues", len(remapped),
		"saved", saved.Round(time.Millisecond).String(),
	)

	switch {
	case inplace:
		outputPath = subtitlePath
	case outputPath == "":
		outputPath = derivedPath(subtitlePath, "_cut")
	}

	writer, err := subtitle.NewWriter(file.Format())
	if err != nil {
		return err
	}

	out := &subtitle.Subtitle{
		Entries: remapped,
		Format:  string(file.Format()),
	}
	if err := writer.Write(out, outputPath); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Subtitles synced: %s\n", absOutput)
	fmt.Printf("  Cues: %d (dropped %d, clipped %d)\n",
		len(remapped), result.Dropped, result.Clipped)

	return nil
}

// trackEnd returns the latest end time of any cue.
func trackEnd(entries []subtitle.Entry) time.Duration {
	var end time.Duration
	for _, entry := range entries {
		if entry.EndTime > end {
			end = entry.EndTime
		}
	}
	return end
}
