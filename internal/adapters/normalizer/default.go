package normalizer

import (
	"strings"
	"unicode"

	"github.com/baditaflorin/go_testcase_redundancy/internal/ports"
)

// DefaultNormalizer implements the default title normalization
// strategy: lower-case the title and replace punctuation with spaces so
// that punctuation does not glue terms together.
type DefaultNormalizer struct{}

// NewDefaultNormalizer creates a new default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{}
}

// Normalize converts the title to lower case and replaces punctuation
// with spaces.
func (n *DefaultNormalizer) Normalize(text string) string {
	text = strings.ToLower(text)
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if unicode.IsPunct(r) {
			sb.WriteRune(' ')
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
