package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/viant/mlnotes/dataset"
	"github.com/viant/mlnotes/engine"
	"github.com/viant/mlnotes/store"
)

const importLockTimeout = 10 * time.Second

type importOptions struct {
	data string
	db   string
	set  string
}

func newImportCmd(a *app) *cobra.Command {
	o := &importOptions{}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Store a training CSV as a named set in a SQLite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runImport(cmd, o)
		},
	}
	cmd.Flags().StringVar(&o.data, "data", "", "training CSV: [name,]features...,label")
	cmd.Flags().StringVar(&o.db, "db", "", "SQLite database path")
	cmd.Flags().StringVar(&o.set, "set", "", "training set name")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func (a *app) runImport(cmd *cobra.Command, o *importOptions) error {
	if !cmd.Flags().Changed("db") {
		o.db = a.cfg.Database
	}
	if !cmd.Flags().Changed("set") {
		o.set = a.cfg.Set
	}
	if o.db == "" || o.set == "" {
		return fmt.Errorf("--db and --set are required")
	}
	schema, examples, err := dataset.ParseFile(o.data)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	unlock, err := acquireImportLock(ctx, o.db+".lock")
	if err != nil {
		return err
	}
	defer unlock()

	db, err := engine.Open(o.db)
	if err != nil {
		return err
	}
	defer db.Close()
	st, err := store.NewSQLiteStore(ctx, db)
	if err != nil {
		return err
	}
	if err := st.Save(ctx, o.set, schema, examples); err != nil {
		return err
	}
	a.log.Infow("training set imported", "db", o.db, "set", o.set, "examples", len(examples))
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d example(s) into %s\n", len(examples), o.set)
	return err
}

// acquireImportLock serializes writers of one database file.
func acquireImportLock(ctx context.Context, path string) (func(), error) {
	l := flock.New(path)
	ctx, cancel := context.WithTimeout(ctx, importLockTimeout)
	defer cancel()
	locked, err := l.TryLockContext(ctx, 200*time.Millisecond)
	if err != nil {
		return func() {}, fmt.Errorf("cannot acquire import lock %s: %w", path, err)
	}
	if !locked {
		return func() {}, fmt.Errorf("another import is in progress (lock: %s)", path)
	}
	return func() { _ = l.Unlock() }, nil
}
