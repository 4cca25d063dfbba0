package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_testcase_redundancy/internal/adapters/csvreport"
	"github.com/baditaflorin/go_testcase_redundancy/internal/core/domain"
)

type noopLogger struct{}

func (noopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Close() error                                   { return nil }

func sampleCandidates() []domain.Candidate {
	return []domain.Candidate{
		{
			ClusterID:    0,
			Case1:        domain.TestCase{ID: "TC-1", Title: "login fails", Priority: "1 - Critical", Labels: "auth", TestingLevel: "N/A"},
			Case2:        domain.TestCase{ID: "TC-2", Title: "login fails", Priority: "2 - High", Labels: "auth", TestingLevel: "N/A"},
			Score:        1,
			Reason:       domain.DefaultReason,
			ReviewStatus: domain.DefaultReviewStatus,
			Resolution:   domain.DefaultResolution,
		},
	}
}

func TestWrite(t *testing.T) {
	w, err := New(WithPortLogger(noopLogger{}))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, w.Write(context.Background(), &buf, sampleCandidates()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, csvreport.Header, rows[0])
	assert.Equal(t, "TC-1", rows[1][2])
	assert.Equal(t, "TC-2", rows[1][3])
	assert.Equal(t, "1", rows[1][14])
}

func TestWriteFile(t *testing.T) {
	w, err := New(WithPortLogger(noopLogger{}))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, w.WriteFile(context.Background(), path, sampleCandidates()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Similarity Score")
	assert.Contains(t, string(raw), "TC-1")
}
