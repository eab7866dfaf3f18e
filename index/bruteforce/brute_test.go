package bruteforce

import (
	"errors"
	"testing"

	"github.com/viant/mlnotes/vector"
)

func TestIndex_Query(t *testing.T) {
	idx := New()
	vecs := [][]float64{{3, 7}, {8, 5}, {3, 6}, {7, 3}}
	if err := idx.Build(vecs); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	got, err := idx.Query([]float64{6, 4}, 2)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Query returned %d neighbors, want 2", len(got))
	}
	if got[0].Position != 3 || got[1].Position != 1 {
		t.Fatalf("Query order = [%d, %d], want [3, 1]", got[0].Position, got[1].Position)
	}

	all, err := idx.Query([]float64{6, 4}, 0)
	if err != nil {
		t.Fatalf("Query(k=0) failed: %v", err)
	}
	if len(all) != len(vecs) {
		t.Fatalf("Query(k=0) returned %d neighbors, want %d", len(all), len(vecs))
	}
	for j := 1; j < len(all); j++ {
		if all[j-1].Distance > all[j].Distance {
			t.Fatalf("distances not ascending at %d: %v", j, all)
		}
	}
}

func TestRank_StableTies(t *testing.T) {
	vecs := [][]float64{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	for run := 0; run < 10; run++ {
		got, err := Rank(vecs, []float64{0, 0}, 0)
		if err != nil {
			t.Fatalf("Rank failed: %v", err)
		}
		for j, n := range got {
			if n.Position != j {
				t.Fatalf("run %d: position[%d] = %d, want %d", run, j, n.Position, j)
			}
		}
	}
}

func TestIndex_DimensionMismatch(t *testing.T) {
	idx := New()
	if err := idx.Build([][]float64{{1, 2}, {1}}); !errors.Is(err, vector.ErrDimensionMismatch) {
		t.Fatalf("Build error = %v, want ErrDimensionMismatch", err)
	}
	if err := idx.Build([][]float64{{1, 2}}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, err := idx.Query([]float64{1, 2, 3}, 1); !errors.Is(err, vector.ErrDimensionMismatch) {
		t.Fatalf("Query error = %v, want ErrDimensionMismatch", err)
	}
}

func TestIndex_Empty(t *testing.T) {
	idx := New()
	if err := idx.Build(nil); err != nil {
		t.Fatalf("Build(nil) failed: %v", err)
	}
	got, err := idx.Query([]float64{1}, 1)
	if err != nil || got != nil {
		t.Fatalf("Query on empty = %v, %v; want nil, nil", got, err)
	}
}
