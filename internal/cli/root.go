// Package cli wires the lems-server commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lems-server",
	Short: "Session insights backend for the LEMS dashboard",
	Long: `lems-server stores user activity sessions and serves aggregated
dashboard insights: weekly and monthly duration rollups per segment plus
sentiment and keyword analysis of session feedback.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
