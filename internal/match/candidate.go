package match

import (
	"cmp"
	"slices"
)

// SuggestThreshold is the minimum similarity for a name to be suggested.
const SuggestThreshold = 0.5

// Candidate is a known name scored against a requested one.
type Candidate struct {
	Name  string
	Score float64
}

// Rank scores every known name against target, best first. Equal scores
// are ordered by name.
func Rank(target string, known []string) []Candidate {
	norm := Normalize(target)

	ranked := make([]Candidate, 0, len(known))
	for _, name := range known {
		ranked = append(ranked, Candidate{Name: name, Score: Similarity(norm, Normalize(name))})
	}

	slices.SortFunc(ranked, func(a, b Candidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	return ranked
}

// Suggest returns up to limit known names scoring at least
// SuggestThreshold against target, best first.
func Suggest(target string, known []string, limit int) []string {
	var names []string

	for _, c := range Rank(target, known) {
		if c.Score < SuggestThreshold || len(names) == limit {
			break
		}

		names = append(names, c.Name)
	}

	return names
}
