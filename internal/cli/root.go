package cli

import (
	"github.com/spf13/cobra"

	"subcut/internal/logging"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "subcut",
	Short: "Subtitle-driven video trimmer",
	Long: `Subcut cuts a video down to the moments where people speak.

It reads subtitle timings, merges nearby cues into kept segments, compiles
an ffmpeg filter graph for them and hands the encoding to ffmpeg. Companion
commands remap subtitle timestamps onto the cut timeline and pad tight cues.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		Float64P("gap", "g", 0.5, "Maximum gap in seconds between cues merged into one segment")
}
