package cmd

import (
	"fmt"
	"os"

	"github.com/killallgit/labeler-api/pkg/config"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "labeler-api",
	Short: "RTTM Labeler API server",
	Long: `RTTM Labeler API - a diarization labeling engine and dataset builder

The server owns labeling sessions for audio files in a library directory:
region drafting, speaker assignment, loop playback coordination, and RTTM
import/export. Finished files are written out as dataset pairs
(dataset/audio + dataset/rttm) ready for diarization training.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

// loadConfig initializes configuration for commands that need it
func loadConfig() error {
	if err := config.Init(); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
