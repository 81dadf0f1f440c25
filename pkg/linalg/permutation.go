package linalg

import "fmt"

// IsPermutation reports whether p contains every index in [0, len(p))
// exactly once.
func IsPermutation(p []int) bool {
	seen := make([]bool, len(p))
	for _, v := range p {
		if v < 0 || v >= len(p) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// Permute builds the len(p)×len(p) permutation matrix with a 1 at (p[j], j),
// so that basis vector j is mapped to basis vector p[j].
func Permute(p []int) (*Matrix, error) {
	if len(p) == 0 || !IsPermutation(p) {
		return nil, fmt.Errorf("invalid permutation %v", p)
	}
	n := len(p)
	m := Zeros(n, n)
	for j, target := range p {
		m.cells[target*n+j] = One
	}
	return m, nil
}

// InversePermutation returns q such that q[p[j]] == j for every j.
func InversePermutation(p []int) []int {
	q := make([]int, len(p))
	for j, target := range p {
		q[target] = j
	}
	return q
}
