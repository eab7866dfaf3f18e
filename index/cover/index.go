package cover

import (
	"fmt"
	"math"
	"sort"

	"github.com/viant/mlnotes/index"
	"github.com/viant/mlnotes/internal/cover/tree"
	"github.com/viant/mlnotes/vector"
)

// DefaultBase is the cover tree expansion base.
const DefaultBase float32 = 1.3

// wideLimit is the largest float64 distance kept in the float32 tree without
// its squared terms overflowing.
var wideLimit = math.Sqrt(math.MaxFloat32) / 4

// Index implements a Euclidean kNN index using a cover tree. The tree works in
// float32; answers are re-scored in float64 over a band wide enough to hold
// every point the float32 rounding could have misordered.
type Index struct {
	base    float32
	vecs    [][]float64
	dim     int
	maxNorm float64
	tree    *tree.Tree[int]
}

// Option configures an Index.
type Option func(*Index)

// WithBase sets the cover tree base; values <= 1 fall back to DefaultBase.
func WithBase(base float32) Option {
	return func(i *Index) {
		if base > 1 {
			i.base = base
		}
	}
}

// New returns an empty cover index.
func New(opts ...Option) *Index {
	i := &Index{base: DefaultBase}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Build inserts every vector into a fresh cover tree.
func (i *Index) Build(vectors [][]float64) error {
	i.tree = tree.NewTree[int](i.base)
	i.vecs, i.dim, i.maxNorm = nil, 0, 0
	if len(vectors) == 0 {
		return nil
	}
	dim := len(vectors[0])
	maxNorm := 0.0
	for j := range vectors {
		if len(vectors[j]) != dim {
			return fmt.Errorf("cover: vector %d: %w", j, vector.Mismatch(len(vectors[j]), dim))
		}
		if err := vector.Finite(vectors[j]); err != nil {
			return fmt.Errorf("cover: vector %d: %w", j, err)
		}
		maxNorm = math.Max(maxNorm, norm(vectors[j]))
	}
	for j := range vectors {
		i.tree.Insert(j, tree.NewPoint(toFloat32(vectors[j])...))
	}
	i.vecs = append([][]float64(nil), vectors...)
	i.dim = dim
	i.maxNorm = maxNorm
	return nil
}

// Len implements index.Index.
func (i *Index) Len() int { return len(i.vecs) }

// Query returns up to k nearest vectors by ascending Euclidean distance.
func (i *Index) Query(query []float64, k int) ([]index.Neighbor, error) {
	if len(i.vecs) == 0 {
		return nil, nil
	}
	if len(query) != i.dim {
		return nil, fmt.Errorf("cover: query: %w", vector.Mismatch(len(query), i.dim))
	}
	if err := vector.Finite(query); err != nil {
		return nil, fmt.Errorf("cover: query: %w", err)
	}
	if k <= 0 || k > len(i.vecs) {
		k = len(i.vecs)
	}
	positions, ok := i.band(query, k)
	if !ok {
		positions = make([]int, len(i.vecs))
		for j := range positions {
			positions[j] = j
		}
	}
	out := make([]index.Neighbor, 0, len(positions))
	for _, pos := range positions {
		d, err := vector.Euclidean(query, i.vecs[pos])
		if err != nil {
			return nil, err
		}
		out = append(out, index.Neighbor{Position: pos, Distance: d})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Distance != out[b].Distance {
			return out[a].Distance < out[b].Distance
		}
		return out[a].Position < out[b].Position
	})
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}

// band returns the positions whose float32 distance lies within the
// rounding error of the k-th float32 candidate. Any point in the float64
// top k is among them. It reports false when float32 cannot represent the
// distances involved and the caller has to score every vector.
func (i *Index) band(query []float64, k int) ([]int, bool) {
	qNorm := norm(query)
	if i.maxNorm+qNorm >= wideLimit {
		return nil, false
	}
	q := tree.NewPoint(toFloat32(query)...)
	candidates := i.tree.KNearestNeighbors(q, k)
	if len(candidates) == 0 {
		return nil, false
	}
	worst := float64(candidates[len(candidates)-1].Distance)
	// float32 coordinate rounding moves a distance by at most 2^-24 of the
	// norms, and float32 summation by about (dim+2)*2^-24 of the distance
	e := (i.maxNorm + qNorm + worst) * float64(i.dim+2) * 0x1p-23
	r := worst + 2*e
	if !(r < wideLimit) {
		return nil, false
	}
	within := i.tree.Within(q, math.Nextafter32(float32(r), float32(math.Inf(1))))
	positions := make([]int, len(within))
	for j, n := range within {
		positions[j] = i.tree.Value(n.Point)
	}
	return positions, len(positions) >= k
}

func norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for j, x := range v {
		out[j] = float32(x)
	}
	return out
}

var _ index.Index = (*Index)(nil)
