package cover

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/viant/mlnotes/index/bruteforce"
	"github.com/viant/mlnotes/vector"
)

func TestIndex_AgreesWithBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	vecs := make([][]float64, 300)
	for j := range vecs {
		vecs[j] = []float64{rng.Float64() * 10, rng.Float64() * 10, rng.Float64() * 10, rng.Float64() * 10}
	}
	idx := New()
	if err := idx.Build(vecs); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	bf := bruteforce.New()
	if err := bf.Build(vecs); err != nil {
		t.Fatalf("bruteforce Build failed: %v", err)
	}
	for q := 0; q < 25; q++ {
		query := []float64{rng.Float64() * 10, rng.Float64() * 10, rng.Float64() * 10, rng.Float64() * 10}
		got, err := idx.Query(query, 5)
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		want, err := bf.Query(query, 5)
		if err != nil {
			t.Fatalf("bruteforce Query failed: %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("Query returned %d, want %d", len(got), len(want))
		}
		for j := range want {
			if got[j].Position != want[j].Position {
				t.Fatalf("query %d rank %d = %d (d=%v), want %d (d=%v)", q, j, got[j].Position, got[j].Distance, want[j].Position, want[j].Distance)
			}
		}
	}
}

func agreeWithBruteForce(t *testing.T, vecs, queries [][]float64, k int) {
	t.Helper()
	idx := New()
	if err := idx.Build(vecs); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	bf := bruteforce.New()
	if err := bf.Build(vecs); err != nil {
		t.Fatalf("bruteforce Build failed: %v", err)
	}
	for q, query := range queries {
		got, err := idx.Query(query, k)
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		want, err := bf.Query(query, k)
		if err != nil {
			t.Fatalf("bruteforce Query failed: %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("query %d returned %d, want %d", q, len(got), len(want))
		}
		for j := range want {
			if got[j].Position != want[j].Position || got[j].Distance != want[j].Distance {
				t.Fatalf("query %d rank %d = %d (d=%v), want %d (d=%v)", q, j, got[j].Position, got[j].Distance, want[j].Position, want[j].Distance)
			}
		}
	}
}

// Both points round to the same float32, so the tree alone cannot tell
// them apart and would keep the lower insertion index.
func TestIndex_Float32CollisionKeepsNearest(t *testing.T) {
	idx := New()
	if err := idx.Build([][]float64{{1e8 + 3}, {1e8 + 1}}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	got, err := idx.Query([]float64{0}, 1)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 1 || got[0].Position != 1 {
		t.Fatalf("Query = %+v, want position 1", got)
	}
}

func TestIndex_LargeOffsetAgreesWithBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	point := func() []float64 {
		return []float64{1e6 + rng.Float64()*0.5, -2e6 + rng.Float64()*0.5, 3e6 + rng.Float64()*0.5}
	}
	vecs := make([][]float64, 200)
	for j := range vecs {
		vecs[j] = point()
	}
	queries := make([][]float64, 20)
	for j := range queries {
		queries[j] = point()
	}
	agreeWithBruteForce(t, vecs, queries, 3)
}

func TestIndex_BeyondFloat32AgreesWithBruteForce(t *testing.T) {
	vecs := [][]float64{{1e30, 0}, {1e30 + 1e15, 0}, {-1e30, 5}, {2, 3}}
	agreeWithBruteForce(t, vecs, [][]float64{{1e30 + 4e14, 0}, {0, 0}}, 2)
}

func TestIndex_Ingredients(t *testing.T) {
	idx := New(WithBase(2))
	if err := idx.Build([][]float64{{3, 7}, {8, 5}, {3, 6}, {7, 3}}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	got, err := idx.Query([]float64{6, 4}, 0)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	wantOrder := []int{3, 1, 2, 0}
	for j, pos := range wantOrder {
		if got[j].Position != pos {
			t.Fatalf("rank %d = %d, want %d", j, got[j].Position, pos)
		}
	}
}

func TestIndex_Errors(t *testing.T) {
	idx := New()
	if err := idx.Build([][]float64{{1, 2}, {3}}); !errors.Is(err, vector.ErrDimensionMismatch) {
		t.Fatalf("Build error = %v, want ErrDimensionMismatch", err)
	}
	if err := idx.Build([][]float64{{1, 2}}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, err := idx.Query([]float64{1}, 1); !errors.Is(err, vector.ErrDimensionMismatch) {
		t.Fatalf("Query error = %v, want ErrDimensionMismatch", err)
	}
	if _, err := idx.Query([]float64{math.NaN(), 2}, 1); !errors.Is(err, vector.ErrNonFinite) {
		t.Fatalf("Query error = %v, want ErrNonFinite", err)
	}
	if err := idx.Build([][]float64{{1, 2}, {math.Inf(1), 2}}); !errors.Is(err, vector.ErrNonFinite) {
		t.Fatalf("Build error = %v, want ErrNonFinite", err)
	}
}
