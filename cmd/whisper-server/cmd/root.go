package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"whisper-server/cmd/whisper-server/cmd/serve"
	"whisper-server/cmd/whisper-server/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "whisper-server",
	Short: "HTTP speech-to-text server",
	Long: `An HTTP server that transcribes uploaded audio files.

- POST an audio file to /transcribe as multipart field "file"
- The model is loaded once at startup (local whisper.cpp or the OpenAI API)
- The transcript comes back as JSON`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().StringVarP(&serve.ConfigFile, "config", "c", "", "YAML config file (optional)")
	rootCmd.PersistentFlags().BoolVarP(&serve.Verbose, "verbose", "V", false, "verbose output (debug logging)")
}
