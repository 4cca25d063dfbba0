package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_testcase_redundancy/pkg/ingest"
)

func newParseCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "parse <export.xml>",
		Short: "Parse a test-management XML export into a test-case CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			xmlPath := args[0]
			if output == "" {
				output = defaultParsedName(xmlPath)
			}

			reader, err := ingest.New()
			if err != nil {
				return err
			}

			cases, err := reader.ReadFile(cmd.Context(), xmlPath)
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			defer f.Close()

			if err := reader.WriteCSV(cmd.Context(), f, cases); err != nil {
				return err
			}

			fmt.Printf("Parsed %d test cases into %s\n", len(cases), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output CSV path (default <export>-parsed.csv)")
	return cmd
}

// defaultParsedName mirrors the conventional "<base>-parsed.csv" output
// name for parsed exports.
func defaultParsedName(xmlPath string) string {
	base := filepath.Base(xmlPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + "-parsed.csv"
}
