// Package xmlsource reads test-case records from test-management XML
// exports. Each <testCase> element carries the record id in its key
// attribute, the title in <name>, and optional custom fields for core
// dependency and testing level. Exports in the wild often contain bare
// ampersands, so the raw document is escaped before decoding.
package xmlsource

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/baditaflorin/go_testcase_redundancy/internal/core/domain"
	"github.com/baditaflorin/go_testcase_redundancy/internal/ports"
)

// Custom field names recognized in <customFields>.
const (
	coreDependentField = "Core Dependent"
	testingLevelField  = "Testing level"

	// testingLevelNA is the sentinel for records without a testing
	// level.
	testingLevelNA = "N/A"
)

// bareAmp matches '&' characters that do not start a known entity.
var bareAmp = regexp.MustCompile(`&(?:amp;|lt;|gt;|quot;|apos;)?`)

// Source reads test cases from XML exports.
type Source struct {
	logger ports.Logger
}

// New creates a new XML source.
func New(logger ports.Logger) *Source {
	return &Source{logger: logger}
}

type xmlCustomField struct {
	Name   string   `xml:"name,attr"`
	Values []string `xml:"value"`
}

type xmlTestCase struct {
	Key          string           `xml:"key,attr"`
	Name         string           `xml:"name"`
	Priority     string           `xml:"priority"`
	Labels       []string         `xml:"labels>label"`
	CustomFields []xmlCustomField `xml:"customFields>customField"`
}

// Read consumes the reader and returns the test cases in document
// order. Missing optional fields degrade gracefully: an absent core
// dependency stays empty and an absent testing level becomes "N/A".
func (s *Source) Read(ctx context.Context, r io.Reader) ([]domain.TestCase, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("xmlsource: read input: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("xmlsource: %w", err)
	}

	decoder := xml.NewDecoder(bytes.NewReader(escapeBareAmpersands(raw)))

	var cases []domain.TestCase
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xmlsource: parse: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "testCase" {
			continue
		}
		var tc xmlTestCase
		if err := decoder.DecodeElement(&tc, &start); err != nil {
			return nil, fmt.Errorf("xmlsource: decode testCase: %w", err)
		}
		cases = append(cases, toDomain(tc))
	}

	s.logger.Info("Parsed test cases from XML", "records", len(cases))
	return cases, nil
}

func toDomain(tc xmlTestCase) domain.TestCase {
	out := domain.TestCase{
		ID:           tc.Key,
		Title:        tc.Name,
		Priority:     tc.Priority,
		Labels:       strings.Join(tc.Labels, ","),
		TestingLevel: testingLevelNA,
	}
	for _, cf := range tc.CustomFields {
		switch cf.Name {
		case coreDependentField:
			if len(cf.Values) > 0 {
				out.CoreDependency = cf.Values[0]
			}
		case testingLevelField:
			if len(cf.Values) > 0 {
				out.TestingLevel = strings.Join(cf.Values, ", ")
			}
		}
	}
	return out
}

// escapeBareAmpersands rewrites '&' to '&amp;' unless it already starts
// one of the five predefined entities.
func escapeBareAmpersands(raw []byte) []byte {
	return bareAmp.ReplaceAllFunc(raw, func(m []byte) []byte {
		if len(m) > 1 {
			return m
		}
		return []byte("&amp;")
	})
}
