package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X whisper-server/cmd/whisper-server/cmd/version.version=..."
var (
	version = "v0.1.0"
	commit  = "unknown"
)

// Cmd represents the version command
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of whisper-server",
	RunE: func(cmd *cobra.Command, args []string) error {
		printVersion(cmd)
		return nil
	},
}

func printVersion(cmd *cobra.Command) {
	fmt.Fprintf(cmd.OutOrStdout(), "whisper-server %s (commit %s, %s)\n", version, commit, runtime.Version())
}
