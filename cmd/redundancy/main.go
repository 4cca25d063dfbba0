package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "redundancy",
		Short: "Test-case redundancy analyzer",
		Long: `redundancy flags likely-duplicate test cases in a suite by comparing
their titles textually: TF-IDF vectors, k-means similarity clusters,
and intra-cluster cosine scores against explicit thresholds. Flagged
pairs are written as a CSV report for human review.`,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file")

	// Add subcommands
	rootCmd.AddCommand(
		newVersionCmd(),
		newParseCmd(),
		newAnalyzeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
