package service

import "math"

const (
	pageRankDamping   = 0.85
	pageRankTolerance = 1e-6
	pageRankMaxIter   = 100
)

// pageRank runs weighted power iteration over a square weight matrix. Each row is normalized by its
// total weight; rows without weight spread their mass uniformly. Iteration stops once the L1 change
// drops below n*tolerance, otherwise the last iterate is returned.
func pageRank(weights [][]float64, damping, tolerance float64, maxIter int) []float64 {
	n := len(weights)
	if n == 0 {
		return nil
	}

	outWeight := make([]float64, n)
	for i, row := range weights {
		for _, w := range row {
			outWeight[i] += w
		}
	}

	uniform := 1 / float64(n)
	rank := make([]float64, n)
	for i := range rank {
		rank[i] = uniform
	}

	for iter := 0; iter < maxIter; iter++ {
		next := make([]float64, n)
		dangling := 0.0
		for i, row := range weights {
			if outWeight[i] == 0 {
				dangling += rank[i]
				continue
			}
			share := damping * rank[i] / outWeight[i]
			for j, w := range row {
				if w != 0 {
					next[j] += share * w
				}
			}
		}

		base := damping*dangling*uniform + (1-damping)*uniform
		delta := 0.0
		for j := range next {
			next[j] += base
			delta += math.Abs(next[j] - rank[j])
		}
		rank = next
		if delta < float64(n)*tolerance {
			break
		}
	}
	return rank
}
