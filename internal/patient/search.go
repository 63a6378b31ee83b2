package patient

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// suggestionCutoff matches the similarity ratio a name must reach before it
// is offered as a "did you mean" suggestion.
const suggestionCutoff = 0.6

// closestName returns the single best approximate match for query among
// names, or "" when nothing clears the cutoff. Comparison is
// case-insensitive; the returned name keeps its stored casing.
func closestName(query string, names []string) string {
	q := strings.ToLower(query)

	best := ""
	bestScore := suggestionCutoff
	for _, name := range names {
		score := similarity(q, strings.ToLower(name))
		if score > bestScore || (score == bestScore && best == "") {
			best = name
			bestScore = score
		}
	}
	return best
}

// similarity maps edit distance onto a 0..1 ratio, 1 meaning equal.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
