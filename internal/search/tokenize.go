package search

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
)

// minTermLength drops single-character noise from queries.
const minTermLength = 2

// Tokenize splits a query into lowercase search terms using Unicode word
// segmentation. Punctuation-only segments and terms shorter than two
// characters are dropped.
func Tokenize(query string) []string {
	var terms []string

	tokens := words.FromString(strings.ToLower(query))
	for tokens.Next() {
		term := strings.TrimSpace(tokens.Value())
		if len(term) < minTermLength || !hasAlnum(term) {
			continue
		}
		terms = append(terms, term)
	}

	return terms
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
