package engine

import (
	"database/sql"
	"math"
	"testing"

	"github.com/viant/mlnotes/vector"
)

func TestKnnL2(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer db.Close()

	// Registering again is a no-op.
	if err := RegisterFunctions(); err != nil {
		t.Fatalf("RegisterFunctions failed: %v", err)
	}

	zero := vector.EncodeFeatures([]float64{0, 0})
	threeFour := vector.EncodeFeatures([]float64{3, 4})

	var dist float64
	if err := db.QueryRow(`SELECT knn_l2(?, ?)`, zero, threeFour).Scan(&dist); err != nil {
		t.Fatalf("knn_l2 query failed: %v", err)
	}
	if math.Abs(dist-5) > 1e-9 {
		t.Fatalf("knn_l2 = %v, want 5", dist)
	}

	var null sql.NullFloat64
	if err := db.QueryRow(`SELECT knn_l2(NULL, ?)`, zero).Scan(&null); err != nil {
		t.Fatalf("knn_l2(NULL) query failed: %v", err)
	}
	if null.Valid {
		t.Fatalf("knn_l2(NULL, b) = %v, want NULL", null.Float64)
	}

	short := vector.EncodeFeatures([]float64{1})
	if err := db.QueryRow(`SELECT knn_l2(?, ?)`, short, threeFour).Scan(&dist); err == nil {
		t.Fatalf("knn_l2 with mismatched dims: expected error")
	}

	nan := vector.EncodeFeatures([]float64{math.NaN(), 4})
	if err := db.QueryRow(`SELECT knn_l2(?, ?)`, nan, threeFour).Scan(&dist); err == nil {
		t.Fatalf("knn_l2 with a NaN feature = %v, want error", dist)
	}
}
