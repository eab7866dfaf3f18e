package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/viant/mlnotes/feature"
	"github.com/viant/mlnotes/knn"
	"github.com/viant/mlnotes/vector"
)

// ErrSetNotFound is returned when a named training set does not exist.
var ErrSetNotFound = errors.New("store: training set not found")

// SQLiteStore persists training sets in a SQLite database opened with
// engine.Open.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a store and ensures the schema exists.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("store: db is nil")
	}
	if err := EnsureSchema(ctx, db); err != nil {
		return nil, errors.Wrap(err, "store: cannot create schema")
	}
	return &SQLiteStore{db: db}, nil
}

// Save replaces the named training set with schema and examples in a single
// transaction. Examples keep their order.
func (s *SQLiteStore) Save(ctx context.Context, set string, schema feature.Set, examples []feature.Example) error {
	if set == "" {
		return errors.New("store: Save called with empty set name")
	}
	for i, ex := range examples {
		if len(ex.Features) != schema.Len() {
			return errors.Wrapf(vector.Mismatch(len(ex.Features), schema.Len()), "store: example %d", i)
		}
		if err := vector.Finite(ex.Features); err != nil {
			return errors.Wrapf(err, "store: example %d", i)
		}
	}
	names, err := json.Marshal(schema.Strings())
	if err != nil {
		return errors.Wrap(err, "store: cannot encode schema")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM examples WHERE set_name = ?`, set); err != nil {
		return errors.Wrapf(err, "store: cannot clear %s", set)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO training_sets(name, features) VALUES(?, ?)
ON CONFLICT(name) DO UPDATE SET features = excluded.features`, set, string(names)); err != nil {
		return errors.Wrapf(err, "store: cannot save %s", set)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO examples(set_name, seq, name, label, features) VALUES(?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, ex := range examples {
		if _, err := stmt.ExecContext(ctx, set, i, ex.Name, ex.Label, vector.EncodeFeatures(ex.Features)); err != nil {
			return errors.Wrapf(err, "store: cannot insert example %d", i)
		}
	}
	return tx.Commit()
}

// Schema returns the feature schema of a stored set.
func (s *SQLiteStore) Schema(ctx context.Context, set string) (feature.Set, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT features FROM training_sets WHERE name = ?`, set).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(ErrSetNotFound, "%q", set)
	}
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		return nil, errors.Wrapf(err, "store: invalid schema for %s", set)
	}
	return feature.NewSet(names...), nil
}

// Load reads a training set in insertion order.
func (s *SQLiteStore) Load(ctx context.Context, set string) (*knn.NeighborSet, error) {
	schema, err := s.Schema(ctx, set)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT name, label, features FROM examples WHERE set_name = ? ORDER BY seq`, set)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var examples []feature.Example
	for rows.Next() {
		ex, err := scanExample(rows)
		if err != nil {
			return nil, err
		}
		examples = append(examples, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return knn.NewNeighborSet(schema, examples)
}

// Sets lists stored training set names.
func (s *SQLiteStore) Sets(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM training_sets ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// Remove deletes a training set and its examples.
func (s *SQLiteStore) Remove(ctx context.Context, set string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM training_sets WHERE name = ?`, set)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.Wrapf(ErrSetNotFound, "%q", set)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM examples WHERE set_name = ?`, set); err != nil {
		return err
	}
	return tx.Commit()
}

// Nearest ranks the examples of a stored set by knn_l2 distance to query
// inside SQLite. Equal distances are ordered by insertion, matching
// knn.NeighborSet.Nearest.
func (s *SQLiteStore) Nearest(ctx context.Context, set string, query []float64, k int) ([]knn.Neighbor, error) {
	schema, err := s.Schema(ctx, set)
	if err != nil {
		return nil, err
	}
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM examples WHERE set_name = ?`, set).Scan(&count); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, knn.ErrEmptyNeighborSet
	}
	if k < 1 || k > count {
		return nil, errors.Wrapf(knn.ErrInvalidK, "%d (want 1..%d)", k, count)
	}
	if len(query) != schema.Len() {
		return nil, errors.Wrap(vector.Mismatch(len(query), schema.Len()), "store: query")
	}
	if err := vector.Finite(query); err != nil {
		return nil, errors.Wrap(err, "store: query")
	}

	rows, err := s.db.QueryContext(ctx, `SELECT name, label, features, knn_l2(features, ?) AS distance
FROM examples WHERE set_name = ?
ORDER BY distance, seq
LIMIT ?`, vector.EncodeFeatures(query), set, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []knn.Neighbor
	for rows.Next() {
		var (
			name, label string
			blob        []byte
			distance    float64
		)
		if err := rows.Scan(&name, &label, &blob, &distance); err != nil {
			return nil, err
		}
		values, err := vector.DecodeFeatures(blob)
		if err != nil {
			return nil, err
		}
		out = append(out, knn.Neighbor{
			Example:  feature.Example{Name: name, Label: label, Features: values},
			Distance: distance,
		})
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanExample(row scanner) (feature.Example, error) {
	var (
		ex   feature.Example
		blob []byte
	)
	if err := row.Scan(&ex.Name, &ex.Label, &blob); err != nil {
		return ex, err
	}
	values, err := vector.DecodeFeatures(blob)
	if err != nil {
		return ex, err
	}
	ex.Features = values
	return ex, nil
}
