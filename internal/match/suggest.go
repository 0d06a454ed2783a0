package match

import (
	"cmp"
	"slices"
)

const (
	// DefaultThreshold is the minimum similarity for a suggestion.
	DefaultThreshold = 0.6
	// DefaultLimit caps the number of suggestions.
	DefaultLimit = 3
)

// Candidate is a key with its similarity to the wanted name.
type Candidate struct {
	Key   string
	Score float64
}

// Rank scores every candidate against name, best first. Ties keep the
// lexical order of the keys.
func Rank(name string, keys []string) []Candidate {
	out := make([]Candidate, 0, len(keys))
	for _, k := range keys {
		out = append(out, Candidate{Key: k, Score: KeySimilarity(name, k)})
	}

	slices.SortFunc(out, func(a, b Candidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		return cmp.Compare(a.Key, b.Key)
	})

	return out
}

// Suggest returns up to limit keys whose similarity to name is at least
// threshold. Keys that normalize to the same string as name are included.
func Suggest(name string, keys []string, limit int, threshold float64) []string {
	if limit <= 0 || len(keys) == 0 {
		return nil
	}

	var out []string

	for _, c := range Rank(name, keys) {
		if c.Score < threshold || len(out) == limit {
			break
		}

		out = append(out, c.Key)
	}

	return out
}
