package ports

import (
	"context"
	"io"

	"github.com/baditaflorin/go_testcase_redundancy/internal/core/domain"
)

// RecordSource defines the interface for reading test-case records from
// an external representation.
type RecordSource interface {
	// Read consumes the reader and returns the records in source order.
	Read(ctx context.Context, r io.Reader) ([]domain.TestCase, error)
}

// RecordSink defines the interface for writing test-case records to an
// external representation.
type RecordSink interface {
	// WriteCases emits the records in the given order.
	WriteCases(ctx context.Context, w io.Writer, cases []domain.TestCase) error
}

// ReportWriter defines the interface for emitting redundancy candidates
// to an external representation.
type ReportWriter interface {
	// Write emits the candidates in the given order.
	Write(ctx context.Context, w io.Writer, candidates []domain.Candidate) error
}
