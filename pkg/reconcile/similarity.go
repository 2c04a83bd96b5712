package reconcile

import (
	"math"
	"strings"
)

// Score returns a 0-100 similarity between two free-text strings.
//
// Exact matches score 100 and containment scores 80. Otherwise each query word
// counts as matched when it contains, or is contained by, any target word, and
// the matched share of the longer word list is scaled to 70. The result is a
// ranking heuristic only: it is not symmetric and ignores punctuation.
func Score(query, target string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	t := strings.ToLower(strings.TrimSpace(target))

	if q == t {
		return 100
	}
	if q == "" || t == "" {
		return 0
	}
	if strings.Contains(q, t) || strings.Contains(t, q) {
		return 80
	}

	queryWords := strings.Fields(q)
	targetWords := strings.Fields(t)

	matched := 0
	for _, qw := range queryWords {
		for _, tw := range targetWords {
			if strings.Contains(tw, qw) || strings.Contains(qw, tw) {
				matched++
				break
			}
		}
	}
	if matched == 0 {
		return 0
	}

	longest := len(queryWords)
	if len(targetWords) > longest {
		longest = len(targetWords)
	}
	return int(math.Round(float64(matched) / float64(longest) * 70))
}
