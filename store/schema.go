package store

import (
	"context"
	"database/sql"
)

var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS training_sets (
    name     TEXT PRIMARY KEY,
    features TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS examples (
    set_name TEXT NOT NULL,
    seq      INTEGER NOT NULL,
    name     TEXT,
    label    TEXT,
    features BLOB,
    PRIMARY KEY(set_name, seq)
)`,
}

// EnsureSchema creates the training set tables if they do not already exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return err
		}
	}
	return nil
}
