// Package cli implements the firetap command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/firetap-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	configPath  string
	verboseFlag bool
)

// rootCmd is the base command all subcommands attach to.
var rootCmd = &cobra.Command{
	Use:   "firetap",
	Short: "Extract Firestore collections as a replayable record stream",
	Long: `firetap extracts documents from Cloud Firestore collections and writes
them to stdout as JSON-line RECORD messages, interleaved with STATE
checkpoints so interrupted runs resume without skipping documents.

Collections with a replication key are extracted incrementally; the rest
are re-extracted in full on every run. All diagnostics go to stderr.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "firetap.toml",
		"path to the TOML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"enable verbose logging to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
