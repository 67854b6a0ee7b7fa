package match

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// MinSuggestionScore is the similarity a known name needs to be suggested.
const MinSuggestionScore = 0.5

// NormalizeIdent folds an identifier for fuzzy comparison: Unicode case
// folded, no underscores, dashes or spaces. "Household_ID" and "householdId" normalize
// to the same string.
func NormalizeIdent(s string) string {
	var sb strings.Builder

	sb.Grow(len(s))

	for _, r := range cases.Fold().String(s) {
		switch r {
		case '_', '-', ' ':
			continue
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

// Levenshtein computes the edit distance between a and b over runes.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}

	// Single row over the shorter string.
	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		diag := row[0]
		row[0] = i

		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			next := min(row[j]+1, row[j-1]+1, diag+cost)
			diag = row[j]
			row[j] = next
		}
	}

	return row[len(rb)]
}

// Similarity returns 1 - distance/maxLen over normalized identifiers, so 1.0
// means equal after normalization.
func Similarity(a, b string) float64 {
	na, nb := NormalizeIdent(a), NormalizeIdent(b)

	longest := max(len([]rune(na)), len([]rune(nb)))
	if longest == 0 {
		return 1.0
	}

	return 1.0 - float64(Levenshtein(na, nb))/float64(longest)
}

// Suggest returns up to limit names from known that resemble name, best
// first. Ties are broken alphabetically so the output is deterministic.
func Suggest(name string, known []string, limit int) []string {
	type scored struct {
		name  string
		score float64
	}

	seen := make(map[string]bool, len(known))

	var candidates []scored

	for _, k := range known {
		if seen[k] || k == name {
			continue
		}

		seen[k] = true

		if s := Similarity(name, k); s >= MinSuggestionScore {
			candidates = append(candidates, scored{name: k, score: s})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}

		return candidates[i].name < candidates[j].name
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.name
	}

	return out
}
