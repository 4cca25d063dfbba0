package vectorizer

import "unicode"

// Tokenize splits a normalized title into terms: maximal runs of
// letters, digits and underscores. Single-character runs are dropped,
// matching the reference tokenizer the thresholds were tuned against.
func Tokenize(title string) []string {
	var terms []string
	start := -1
	for i, r := range title {
		if isTermRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if term := title[start:i]; len([]rune(term)) >= 2 {
				terms = append(terms, term)
			}
			start = -1
		}
	}
	if start >= 0 {
		if term := title[start:]; len([]rune(term)) >= 2 {
			terms = append(terms, term)
		}
	}
	return terms
}

func isTermRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
