package distance

import "github.com/HaiderBassem/mediadedupe/internal/hash/bitvec"

// dtw computes the Dynamic Time Warping distance between two frame
// hash sequences, using two reusable rows swapped each step (O(n) space) in the
// style of a rolling-row edit-distance implementation, generalized
// from edit-distance-on-bytes to DTW-on-frame-cost: cost between two
// frames is 1 - Hamming similarity instead of a character mismatch.
func dtw(a, b []bitvec.Vector) float64 {
	m, n := len(a), len(b)
	if m == 0 || n == 0 {
		return float64(max(m, n))
	}

	const inf = 1e18
	row := make([]float64, n+1)
	prevRow := make([]float64, n+1)

	row[0] = 0
	for j := 1; j <= n; j++ {
		row[j] = inf
	}

	for i := 1; i <= m; i++ {
		row, prevRow = prevRow, row
		row[0] = inf
		for j := 1; j <= n; j++ {
			cost := 1 - a[i-1].Similarity(b[j-1])
			best := prevRow[j] // insertion
			if prevRow[j-1] < best {
				best = prevRow[j-1] // match
			}
			if row[j-1] < best {
				best = row[j-1] // deletion
			}
			row[j] = cost + best
		}
	}

	return row[n]
}

// sequenceSimilarity returns 1 - DTW(m,n)/max(m,n), spec.md §4.4's
// DTW-based sequence similarity.
func sequenceSimilarity(a, b []bitvec.Vector) float64 {
	m, n := len(a), len(b)
	if m == 0 && n == 0 {
		return 1
	}
	denom := max(m, n)
	if denom == 0 {
		return 1
	}
	return 1 - dtw(a, b)/float64(denom)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
