package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_testcase_redundancy/internal/config"
	"github.com/baditaflorin/go_testcase_redundancy/pkg/analyzer"
	"github.com/baditaflorin/go_testcase_redundancy/pkg/ingest"
	"github.com/baditaflorin/go_testcase_redundancy/pkg/report"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		output            string
		numClusters       int
		seed              int64
		primaryThreshold  float64
		priorityThreshold float64
	)

	cmd := &cobra.Command{
		Use:   "analyze <cases.xml|cases.csv>",
		Short: "Run the redundancy analysis and write a review report",
		Long: `Reads test cases from an XML export or a parsed CSV, runs the
redundancy analysis, and writes flagged pairs as a CSV report.
Flags override values from the config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srcPath := args[0]
			if output == "" {
				output = defaultReportName(srcPath)
			}

			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("clusters") {
				cfg.Analysis.NumClusters = numClusters
			}
			if cmd.Flags().Changed("seed") {
				cfg.Analysis.Seed = seed
			}
			if cmd.Flags().Changed("threshold") {
				cfg.Analysis.SimilarityThresholdPrimary = primaryThreshold
			}
			if cmd.Flags().Changed("priority-threshold") {
				cfg.Analysis.SimilarityThresholdPriority = priorityThreshold
			}

			reader, err := ingest.New()
			if err != nil {
				return err
			}
			cases, err := reader.ReadFile(cmd.Context(), srcPath)
			if err != nil {
				return err
			}

			a, err := analyzer.New(analyzer.WithPipelineConfig(cfg.Pipeline()))
			if err != nil {
				return err
			}
			candidates, err := a.Analyze(cmd.Context(), cases)
			if err != nil {
				return err
			}

			writer, err := report.New()
			if err != nil {
				return err
			}
			if err := writer.WriteFile(cmd.Context(), output, candidates); err != nil {
				return err
			}

			fmt.Printf("Found %d potential redundancies across %d test cases\n", len(candidates), len(cases))
			fmt.Printf("Results saved to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Report CSV path (default redundancy_analysis_<base>.csv)")
	cmd.Flags().IntVar(&numClusters, "clusters", 5, "Number of k-means clusters")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Clustering seed")
	cmd.Flags().Float64Var(&primaryThreshold, "threshold", 0.75, "Primary similarity threshold")
	cmd.Flags().Float64Var(&priorityThreshold, "priority-threshold", 0.80, "Similarity threshold for top-priority pairs")
	return cmd
}

func defaultReportName(srcPath string) string {
	base := filepath.Base(srcPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("redundancy_analysis_%s.csv", base)
}
