// Package report provides the structured API for writing redundancy
// reports.
package report

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/baditaflorin/l"

	"github.com/baditaflorin/go_testcase_redundancy/internal/adapters/csvreport"
	"github.com/baditaflorin/go_testcase_redundancy/internal/adapters/logger"
	"github.com/baditaflorin/go_testcase_redundancy/internal/core/domain"
	"github.com/baditaflorin/go_testcase_redundancy/internal/ports"
)

// Writer writes redundancy candidates as a flat tabular CSV report.
type Writer struct {
	logger ports.Logger
	csv    ports.ReportWriter
}

// Option defines a functional option for configuring the Writer.
type Option func(*writerConfig)

type writerConfig struct {
	Logger ports.Logger
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *writerConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithPortLogger sets a custom ports.Logger directly.
func WithPortLogger(lg ports.Logger) Option {
	return func(cfg *writerConfig) {
		cfg.Logger = lg
	}
}

// New creates a new Writer instance.
func New(opts ...Option) (*Writer, error) {
	config := &writerConfig{}
	for _, opt := range opts {
		opt(config)
	}
	if config.Logger == nil {
		var err error
		config.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}
	return &Writer{
		logger: config.Logger,
		csv:    csvreport.NewWriter(config.Logger),
	}, nil
}

// Write emits the candidates to the writer in order.
func (w *Writer) Write(ctx context.Context, dst io.Writer, candidates []domain.Candidate) error {
	return w.csv.Write(ctx, dst, candidates)
}

// WriteFile emits the candidates to a CSV file at path.
func (w *Writer) WriteFile(ctx context.Context, path string, candidates []domain.Candidate) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	if err := w.Write(ctx, f, candidates); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("report: close %s: %w", path, err)
	}
	return nil
}
