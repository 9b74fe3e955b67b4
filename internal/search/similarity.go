package search

import (
	"strings"
)

// Similarity scores how alike two strings are, in [0, 1]. Case-insensitive.
// Exact equality scores 1, containment 0.9, word-level overlap lands in
// [0.7, 0.9], and anything else falls through to edit distance.
func Similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 0.9
	}

	aWords := strings.Fields(a)
	bWords := strings.Fields(b)

	matches := 0
	for _, bw := range bWords {
		for _, aw := range aWords {
			if strings.Contains(aw, bw) || strings.Contains(bw, aw) {
				matches++
				break
			}
		}
	}
	if matches > 0 {
		return 0.7 + 0.2*float64(matches)/float64(len(bWords))
	}

	maxLen := max(len(a), len(b))
	score := 1 - float64(levenshtein(a, b))/float64(maxLen)
	if score < 0 {
		return 0
	}
	return score
}

// levenshtein computes edit distance with two rolling rows.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j-1]+cost, curr[j-1]+1, prev[j]+1)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
