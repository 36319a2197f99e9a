package style

import (
	"math"
	"sort"

	"github.com/shatranj-dev/shatranj/internal/domain/model"
)

// Model is the fitted style-space model over the reference population:
// the scaler, the standardized reference vectors, and the cluster
// assignment. Fit once at startup, immutable thereafter; every request
// path only reads it.
type Model struct {
	vectors      []model.StyleVector
	standardized [][]float64
	scaler       *Scaler
	labels       []int
	centroids    [][]float64
}

// Fit standardizes the reference vectors and clusters them. The cluster
// labels are population-level diagnostic output; nearest-neighbor search
// deliberately ignores them and always scans the full reference set.
func Fit(vectors []model.StyleVector, clusters int, seed int64) (*Model, error) {
	if len(vectors) == 0 {
		return nil, ErrEmptyPopulation
	}

	rows := make([][]float64, len(vectors))
	for i, v := range vectors {
		rows[i] = v.Values()
	}

	scaler, err := FitScaler(rows)
	if err != nil {
		return nil, err
	}
	standardized := scaler.TransformAll(rows)

	labels, centroids, err := KMeans(standardized, clusters, seed)
	if err != nil {
		return nil, err
	}

	return &Model{
		vectors:      vectors,
		standardized: standardized,
		scaler:       scaler,
		labels:       labels,
		centroids:    centroids,
	}, nil
}

// Size returns the reference population size.
func (m *Model) Size() int {
	return len(m.vectors)
}

// Clusters returns the number of fitted centroids.
func (m *Model) Clusters() int {
	return len(m.centroids)
}

// Labels returns the cluster label per reference player, aligned with
// the fit-time vector order.
func (m *Model) Labels() []int {
	out := make([]int, len(m.labels))
	copy(out, m.labels)
	return out
}

// Scaler returns the fitted scaler.
func (m *Model) Scaler() *Scaler {
	return m.scaler
}

// Neighbor is one reference player ranked by style distance.
type Neighbor struct {
	Player   string  `json:"player"`
	Distance float64 `json:"distance"`
}

// Neighbors standardizes the query with the already-fitted scaler (it
// never refits) and returns the n reference players closest in Euclidean
// distance, ascending. Ties keep the original reference ordering. If n
// exceeds the population, the whole population is returned.
func (m *Model) Neighbors(query model.StyleVector, n int) []Neighbor {
	if n <= 0 {
		return nil
	}

	q := m.scaler.Transform(query.Values())
	ranked := make([]Neighbor, len(m.vectors))
	for i, ref := range m.standardized {
		ranked[i] = Neighbor{
			Player:   m.vectors[i].Player,
			Distance: math.Sqrt(squaredDistance(q, ref)),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
