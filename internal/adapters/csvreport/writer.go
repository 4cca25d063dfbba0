// Package csvreport writes redundancy candidates as a flat tabular CSV
// report for manual review in a spreadsheet.
package csvreport

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/baditaflorin/go_testcase_redundancy/internal/core/domain"
	"github.com/baditaflorin/go_testcase_redundancy/internal/ports"
)

// Header is the column layout of the redundancy report.
var Header = []string{
	"Cluster ID",
	"Review Status",
	"Test Case 1 ID",
	"Test Case 2 ID",
	"Test Case 1 Title",
	"Test Case 2 Title",
	"Test Case 1 Priority",
	"Test Case 2 Priority",
	"Test Case 1 Core Dependency",
	"Test Case 2 Core Dependency",
	"Test Case 1 Labels",
	"Test Case 2 Labels",
	"Test Case 1 Testing Level",
	"Test Case 2 Testing Level",
	"Similarity Score",
	"Reason for Redundancy",
	"Resolution",
	"To Remove",
}

// Writer emits redundancy candidates as CSV rows.
type Writer struct {
	logger ports.Logger
}

// NewWriter creates a new report writer.
func NewWriter(logger ports.Logger) *Writer {
	return &Writer{logger: logger}
}

// Write emits the candidates in the given order, header first.
func (rw *Writer) Write(ctx context.Context, w io.Writer, candidates []domain.Candidate) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("csvreport: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("csvreport: write header: %w", err)
	}
	for _, c := range candidates {
		if err := writer.Write(toRow(c)); err != nil {
			return fmt.Errorf("csvreport: write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("csvreport: flush: %w", err)
	}

	rw.logger.Info("Wrote redundancy report", "candidates", len(candidates))
	return nil
}

func toRow(c domain.Candidate) []string {
	return []string{
		strconv.Itoa(c.ClusterID),
		c.ReviewStatus,
		c.Case1.ID,
		c.Case2.ID,
		c.Case1.Title,
		c.Case2.Title,
		c.Case1.Priority,
		c.Case2.Priority,
		c.Case1.CoreDependency,
		c.Case2.CoreDependency,
		c.Case1.Labels,
		c.Case2.Labels,
		c.Case1.TestingLevel,
		c.Case2.TestingLevel,
		strconv.FormatFloat(c.Score, 'f', -1, 64),
		c.Reason,
		c.Resolution,
		c.ToRemove,
	}
}
