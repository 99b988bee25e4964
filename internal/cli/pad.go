package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"subcut/internal/subtitle"
)

var padCmd = &cobra.Command{
	Use:   "pad [subtitle_file]",
	Short: "Widen cue time ranges by a fixed padding",
	Long: `Add padding before and after every cue's time range.

Machine-generated timestamps tend to hug the speech too closely, cutting
off sentence boundaries when the subtitles drive a cut. Padding is clamped
so cues never overlap their neighbours or start before zero.

Examples:
  subcut pad video.srt
  subcut pad video.srt -o padded.srt --pad 0.2
  subcut pad video.srt --inplace`,
	Args: cobra.ExactArgs(1),
	RunE: runPad,
}

func init() {
	rootCmd.AddCommand(padCmd)

	padCmd.Flags().
		Float64("pad", 0.1, "Padding in seconds added at each cue boundary")
	padCmd.Flags().
		Bool("inplace", false, "Overwrite the input file (a .back copy is kept)")
}

func runPad(cmd *cobra.Command, args []string) error {
	subtitlePath := args[0]

	padSeconds, _ := cmd.Flags().GetFloat64("pad")
	outputPath, _ := cmd.Flags().GetString("output")
	inplace, _ := cmd.Flags().GetBool("inplace")

	file, err := openSubtitle(subtitlePath)
	if err != nil {
		return err
	}

	pad := time.Duration(padSeconds * float64(time.Second))
	padded := subtitle.Pad(file.Subtitle().Entries, pad)

	switch {
	case inplace:
		backupPath := backupName(subtitlePath)
		if err := copyFile(subtitlePath, backupPath); err != nil {
			return fmt.Errorf("failed to back up input: %w", err)
		}
		logger.Infow("Backed up original", "path", backupPath)
		outputPath = subtitlePath
	case outputPath == "":
		outputPath = derivedPath(subtitlePath, "_pad")
	}

	writer, err := subtitle.NewWriter(file.Format())
	if err != nil {
		return err
	}

	out := &subtitle.Subtitle{
		Entries: padded,
		Format:  string(file.Format()),
	}
	if err := writer.Write(out, outputPath); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Subtitles padded: %s\n", absOutput)
	fmt.Printf("  Cues: %d\n", len(padded))

	return nil
}

// backupName inserts ".back" before the extension, e.g.
// "video.srt" -> "video.back.srt".
func backupName(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".back" + ext
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}
