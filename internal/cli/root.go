package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "recollect",
	Short: "Topic suggestions for voice journaling",
	Long:  "Recollect serves recording-topic suggestions from a local cache of the catalog service, avoiding repeats and working offline.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(usedCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(clearCmd)
}
