// Package main provides the taskrank CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "taskrank",
		Short: "Explainable task prioritization",
		Long: `Taskrank scores a batch of tasks by urgency, importance, effort and
dependency position, ranks them under a weighting strategy and explains
every score.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newSuggestCmd(),
		newStrategiesCmd(),
		newFeedbackCmd(),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
