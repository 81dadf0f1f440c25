package errors

import (
	"fmt"
	"slices"
)

// SuggestName suggests the closest of candidates to an unknown name, or
// returns "" when nothing is close enough.
func SuggestName(unknown string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}

	sorted := slices.Clone(candidates)
	slices.Sort(sorted)

	minDistance := len(unknown) + 1
	var bestMatch string
	for _, name := range sorted {
		if dist := levenshteinDistance(unknown, name); dist < minDistance {
			minDistance = dist
			bestMatch = name
		}
	}

	// Single-letter names are all one edit apart.
	limit := 2
	if len(unknown) <= 2 {
		limit = 1
	}
	if minDistance <= limit && bestMatch != unknown {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}
	return ""
}

// levenshteinDistance computes the edit distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(s2)]
}
