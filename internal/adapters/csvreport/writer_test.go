package csvreport

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_testcase_redundancy/internal/core/domain"
)

type noopLogger struct{}

func (noopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Close() error                                   { return nil }

func TestWriteReport(t *testing.T) {
	candidates := []domain.Candidate{
		{
			ClusterID: 2,
			Case1: domain.TestCase{
				ID: "MPH-1", Title: "login fails", Priority: "1 - Critical",
				CoreDependency: "Yes", Labels: "auth", TestingLevel: "System",
			},
			Case2: domain.TestCase{
				ID: "MPH-2", Title: "login fails", Priority: "2 - High",
				TestingLevel: "N/A",
			},
			Score:        1,
			Reason:       domain.DefaultReason,
			ReviewStatus: domain.DefaultReviewStatus,
			Resolution:   domain.DefaultResolution,
		},
	}

	w := NewWriter(noopLogger{})
	var buf bytes.Buffer
	require.NoError(t, w.Write(context.Background(), &buf, candidates))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{
		"2", "Not Started",
		"MPH-1", "MPH-2",
		"login fails", "login fails",
		"1 - Critical", "2 - High",
		"Yes", "",
		"auth", "",
		"System", "N/A",
		"1", "Functional overlap", "Keep both", "",
	}, rows[1])
}

func TestWriteEmptyReport(t *testing.T) {
	w := NewWriter(noopLogger{})
	var buf bytes.Buffer
	require.NoError(t, w.Write(context.Background(), &buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
	assert.Equal(t, Header, rows[0])
}

func TestWriteCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := NewWriter(noopLogger{})
	var buf bytes.Buffer
	err := w.Write(ctx, &buf, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
