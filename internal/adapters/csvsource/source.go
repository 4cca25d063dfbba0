// Package csvsource reads and writes the parsed test-case CSV
// interchange format: one row per record with columns priority, id,
// title, core_dependency, labels, testing level. Reading streams row by
// row so large suite exports do not have to be fully buffered twice.
package csvsource

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/baditaflorin/go_testcase_redundancy/internal/core/domain"
	"github.com/baditaflorin/go_testcase_redundancy/internal/ports"
)

// Header is the column layout of the parsed test-case CSV.
var Header = []string{"priority", "id", "title", "core_dependency", "labels", "testing level"}

const testingLevelNA = "N/A"

// Source reads test cases from parsed CSV files.
type Source struct {
	logger ports.Logger
}

// New creates a new CSV source.
func New(logger ports.Logger) *Source {
	return &Source{logger: logger}
}

// Read consumes the reader and returns the test cases in row order.
// The first row is expected to be the header. Missing optional columns
// degrade gracefully: an absent core dependency stays empty and an
// absent testing level becomes "N/A".
func (s *Source) Read(ctx context.Context, r io.Reader) ([]domain.TestCase, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("csvsource: read header: %w", err)
	}

	var cases []domain.TestCase
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("csvsource: %w", err)
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csvsource: read row: %w", err)
		}
		cases = append(cases, fromRow(row))
	}

	s.logger.Info("Read test cases from CSV", "records", len(cases))
	return cases, nil
}

// WriteCases emits the records as a parsed test-case CSV, header first.
func (s *Source) WriteCases(ctx context.Context, w io.Writer, cases []domain.TestCase) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("csvsource: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("csvsource: write header: %w", err)
	}
	for _, tc := range cases {
		row := []string{tc.Priority, tc.ID, tc.Title, tc.CoreDependency, tc.Labels, tc.TestingLevel}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("csvsource: write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("csvsource: flush: %w", err)
	}

	s.logger.Info("Wrote test cases to CSV", "records", len(cases))
	return nil
}

func fromRow(row []string) domain.TestCase {
	col := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	tc := domain.TestCase{
		Priority:       col(0),
		ID:             col(1),
		Title:          col(2),
		CoreDependency: col(3),
		Labels:         col(4),
		TestingLevel:   col(5),
	}
	if tc.TestingLevel == "" {
		tc.TestingLevel = testingLevelNA
	}
	return tc
}
