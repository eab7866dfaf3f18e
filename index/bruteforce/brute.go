package bruteforce

import (
	"fmt"
	"sort"

	"github.com/viant/mlnotes/index"
	"github.com/viant/mlnotes/vector"
)

// Index is a brute-force Euclidean kNN index.
type Index struct {
	vecs [][]float64
	dim  int
}

// New returns an empty index.
func New() *Index { return &Index{} }

// Build loads vectors and validates that they share one arity.
func (i *Index) Build(vectors [][]float64) error {
	if len(vectors) == 0 {
		i.vecs, i.dim = nil, 0
		return nil
	}
	dim := len(vectors[0])
	for j := range vectors {
		if len(vectors[j]) != dim {
			return fmt.Errorf("bruteforce: vector %d: %w", j, vector.Mismatch(len(vectors[j]), dim))
		}
	}
	i.vecs = append([][]float64(nil), vectors...)
	i.dim = dim
	return nil
}

// Len implements index.Index.
func (i *Index) Len() int { return len(i.vecs) }

// Query returns the top-k vectors by ascending Euclidean distance.
func (i *Index) Query(query []float64, k int) ([]index.Neighbor, error) {
	if len(i.vecs) == 0 {
		return nil, nil
	}
	if len(query) != i.dim {
		return nil, fmt.Errorf("bruteforce: query: %w", vector.Mismatch(len(query), i.dim))
	}
	return Rank(i.vecs, query, k)
}

// Rank scores every vector against query and returns the k nearest. The sort
// is stable: vectors at equal distance keep their relative order.
func Rank(vectors [][]float64, query []float64, k int) ([]index.Neighbor, error) {
	scored := make([]index.Neighbor, 0, len(vectors))
	for j := range vectors {
		d, err := vector.Euclidean(query, vectors[j])
		if err != nil {
			return nil, fmt.Errorf("bruteforce: vector %d: %w", j, err)
		}
		scored = append(scored, index.Neighbor{Position: j, Distance: d})
	}
	sort.SliceStable(scored, func(a, b int) bool { return scored[a].Distance < scored[b].Distance })
	if k <= 0 || k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

var _ index.Index = (*Index)(nil)
