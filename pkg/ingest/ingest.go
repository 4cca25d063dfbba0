// Package ingest provides the structured API for reading test-case
// records from XML exports and parsed CSV files.
package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/baditaflorin/l"

	"github.com/baditaflorin/go_testcase_redundancy/internal/adapters/csvsource"
	"github.com/baditaflorin/go_testcase_redundancy/internal/adapters/logger"
	"github.com/baditaflorin/go_testcase_redundancy/internal/adapters/xmlsource"
	"github.com/baditaflorin/go_testcase_redundancy/internal/core/domain"
	"github.com/baditaflorin/go_testcase_redundancy/internal/ports"
)

// Reader reads test-case records from supported source formats.
type Reader struct {
	logger ports.Logger
	xml    ports.RecordSource
	csv    ports.RecordSource
	sink   ports.RecordSink
}

// Option defines a functional option for configuring the Reader.
type Option func(*readerConfig)

type readerConfig struct {
	Logger ports.Logger
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *readerConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithPortLogger sets a custom ports.Logger directly.
func WithPortLogger(lg ports.Logger) Option {
	return func(cfg *readerConfig) {
		cfg.Logger = lg
	}
}

// New creates a new Reader instance.
func New(opts ...Option) (*Reader, error) {
	config := &readerConfig{}
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
	csv := csvsource.New(config.Logger)
	return &Reader{
		logger: config.Logger,
		xml:    xmlsource.New(config.Logger),
		csv:    csv,
		sink:   csv,
	}, nil
}

// ReadXML reads test cases from a test-management XML export.
func (r *Reader) ReadXML(ctx context.Context, src io.Reader) ([]domain.TestCase, error) {
	return r.xml.Read(ctx, src)
}

// ReadCSV reads test cases from a parsed CSV file.
func (r *Reader) ReadCSV(ctx context.Context, src io.Reader) ([]domain.TestCase, error) {
	return r.csv.Read(ctx, src)
}

// WriteCSV writes test cases as a parsed CSV file.
func (r *Reader) WriteCSV(ctx context.Context, dst io.Writer, cases []domain.TestCase) error {
	return r.sink.WriteCases(ctx, dst, cases)
}

// ReadFile reads test cases from a path, picking the source format by
// file extension (.xml or .csv).
func (r *Reader) ReadFile(ctx context.Context, path string) ([]domain.TestCase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return r.ReadXML(ctx, f)
	case ".csv":
		return r.ReadCSV(ctx, f)
	default:
		return nil, fmt.Errorf("ingest: unsupported source format %q", filepath.Ext(path))
	}
}
