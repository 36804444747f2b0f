package main

import (
	"os"

	"github.com/spf13/cobra"

	"n8nharden/internal/commands"
)

var rootCmd = &cobra.Command{
	Use:   "n8nharden",
	Short: "Add timeouts, retries and error handling to n8n HTTP Request nodes",
	Long: "Rewrites every n8n workflow in the workflows directory so that its HTTP Request nodes carry\n" +
		"timeouts, retry policies, default headers and non-fatal error handling, appends error\n" +
		"handling Code nodes, and writes a markdown report of the changes.",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return commands.RunEnhance()
	},
}

func init() {
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
