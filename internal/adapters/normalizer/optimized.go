package normalizer

import (
	"unicode"

	"github.com/baditaflorin/go_testcase_redundancy/internal/pool"
	"github.com/baditaflorin/go_testcase_redundancy/internal/ports"
)

// OptimizedNormalizer is a title normalizer with a precomputed ASCII
// decision table and pooled buffers. Test-case titles are almost always
// short ASCII strings, so the fast path covers nearly every record.
type OptimizedNormalizer struct {
	// asciiTable maps each ASCII byte to an action:
	// 0 = keep, 1 = replace with space, 2 = lower-case.
	asciiTable [128]byte
	bytePool   *pool.BufferPool
}

// NewOptimizedNormalizer creates a new optimized normalizer.
func NewOptimizedNormalizer() ports.Normalizer {
	n := &OptimizedNormalizer{
		bytePool: pool.NewBufferPool(256),
	}
	for i := 0; i < 128; i++ {
		r := rune(i)
		switch {
		case unicode.IsPunct(r):
			n.asciiTable[i] = 1
		case unicode.IsUpper(r):
			n.asciiTable[i] = 2
		}
	}
	return n
}

// Normalize converts the title to lower case and replaces punctuation
// with spaces, avoiding allocations for ASCII-only titles.
func (n *OptimizedNormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}

	asciiOnly := true
	for i := 0; i < len(text); i++ {
		if text[i] >= 128 {
			asciiOnly = false
			break
		}
	}

	buffer := n.bytePool.Get()
	defer n.bytePool.Put(buffer)
	if cap(*buffer) < len(text) {
		*buffer = make([]byte, 0, len(text))
	}

	if asciiOnly {
		for i := 0; i < len(text); i++ {
			b := text[i]
			switch n.asciiTable[b] {
			case 0:
				*buffer = append(*buffer, b)
			case 1:
				*buffer = append(*buffer, ' ')
			case 2:
				*buffer = append(*buffer, b+('a'-'A'))
			}
		}
		return string(*buffer)
	}

	for _, r := range text {
		switch {
		case r < 128 && n.asciiTable[r] == 1:
			*buffer = append(*buffer, ' ')
		case r < 128 && n.asciiTable[r] == 2:
			*buffer = append(*buffer, byte(r)+('a'-'A'))
		case r < 128:
			*buffer = append(*buffer, byte(r))
		case unicode.IsPunct(r):
			*buffer = append(*buffer, ' ')
		default:
			*buffer = append(*buffer, []byte(string(unicode.ToLower(r)))...)
		}
	}
	return string(*buffer)
}
