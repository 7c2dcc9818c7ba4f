package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command for the secondchance binary.
var rootCmd = &cobra.Command{
	Use:   "secondchance",
	Short: "SecondChance gift catalog API server",
}

// Execute runs the root command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
