package engine

import (
	"path/filepath"
	"testing"

	"github.com/viant/mlnotes/vector"
)

// TestOpenInMemoryPinsOneConnection checks that a table created by one
// statement is still visible to later statements, which only holds when the
// pool never opens a second (empty) in-memory database.
func TestOpenInMemoryPinsOneConnection(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer db.Close()

	if got := db.Stats().MaxOpenConnections; got != 1 {
		t.Fatalf("MaxOpenConnections = %d, want 1", got)
	}
	if _, err := db.Exec(`CREATE TABLE ingredients(name TEXT, features BLOB)`); err != nil {
		t.Fatalf("CREATE TABLE failed: %v", err)
	}
	for _, row := range []struct {
		name string
		vec  []float64
	}{
		{"green_bean", []float64{3, 7}},
		{"grape", []float64{8, 5}},
		{"nuts", []float64{3, 6}},
		{"orange", []float64{7, 3}},
	} {
		if _, err := db.Exec(`INSERT INTO ingredients(name, features) VALUES (?, ?)`, row.name, vector.EncodeFeatures(row.vec)); err != nil {
			t.Fatalf("INSERT %s failed: %v", row.name, err)
		}
	}

	for _, c := range []struct {
		query []float64
		want  string
	}{
		{[]float64{6, 4}, "orange"},
		{[]float64{8, 6}, "grape"},
	} {
		var name string
		err := db.QueryRow(`SELECT name FROM ingredients ORDER BY knn_l2(features, ?) LIMIT 1`, vector.EncodeFeatures(c.query)).Scan(&name)
		if err != nil {
			t.Fatalf("nearest query failed: %v", err)
		}
		if name != c.want {
			t.Fatalf("nearest(%v) = %q, want %q", c.query, name, c.want)
		}
	}
}

func TestOpenFileLeavesPoolUncapped(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "train.sqlite"))
	if err != nil {
		t.Fatalf("Open(file) failed: %v", err)
	}
	defer db.Close()
	if got := db.Stats().MaxOpenConnections; got != 0 {
		t.Fatalf("MaxOpenConnections = %d, want 0 (unlimited)", got)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
}
