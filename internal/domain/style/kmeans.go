package style

import (
	"math"
	"math/rand"
)

// Clustering constants.
const (
	// kmeansMaxIter caps the assign/update loop.
	kmeansMaxIter = 100

	// kmeansTolerance is the largest per-coordinate centroid movement
	// still considered converged.
	kmeansTolerance = 1e-8
)

// KMeans clusters the given points with Lloyd's algorithm. It is a pure
// function of (points, k, seed): identical inputs always produce
// identical labels and centroids. No ambient random state is consulted.
//
// Initial centroids are k distinct points sampled without replacement
// using the seed. If k exceeds the number of points it is clamped down.
// A centroid left with zero assigned points keeps its previous position;
// re-seeding would make convergence dependent on iteration history.
func KMeans(points [][]float64, k int, seed int64) (labels []int, centroids [][]float64, err error) {
	if len(points) == 0 {
		return nil, nil, ErrEmptyPopulation
	}
	if k <= 0 {
		return nil, nil, ErrInvalidClusterCount
	}
	if k > len(points) {
		k = len(points)
	}

	dim := len(points[0])
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic seed for reproducible clustering

	centroids = make([][]float64, k)
	for i, idx := range rng.Perm(len(points))[:k] {
		centroids[i] = make([]float64, dim)
		copy(centroids[i], points[idx])
	}

	labels = make([]int, len(points))
	sums := make([][]float64, k)
	counts := make([]int, k)
	for i := range sums {
		sums[i] = make([]float64, dim)
	}

	for iter := 0; iter < kmeansMaxIter; iter++ {
		// Assignment step: nearest centroid by squared distance.
		for i, p := range points {
			best, bestDist := 0, math.Inf(1)
			for c, cent := range centroids {
				if d := squaredDistance(p, cent); d < bestDist {
					best, bestDist = c, d
				}
			}
			labels[i] = best
		}

		// Update step: centroid = mean of assigned points.
		for c := range sums {
			counts[c] = 0
			for j := range sums[c] {
				sums[c][j] = 0
			}
		}
		for i, p := range points {
			c := labels[i]
			counts[c]++
			for j, x := range p {
				sums[c][j] += x
			}
		}

		moved := 0.0
		for c := range centroids {
			if counts[c] == 0 {
				continue // empty cluster: centroid stays put
			}
			for j := range centroids[c] {
				next := sums[c][j] / float64(counts[c])
				if d := math.Abs(next - centroids[c][j]); d > moved {
					moved = d
				}
				centroids[c][j] = next
			}
		}
		if moved <= kmeansTolerance {
			break
		}
	}

	return labels, centroids, nil
}

// squaredDistance is the squared Euclidean distance between two points
// of equal dimension.
func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
