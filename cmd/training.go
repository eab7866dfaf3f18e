package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viant/mlnotes/config"
	"github.com/viant/mlnotes/dataset"
	"github.com/viant/mlnotes/engine"
	"github.com/viant/mlnotes/feature"
	"github.com/viant/mlnotes/index"
	"github.com/viant/mlnotes/index/bruteforce"
	"github.com/viant/mlnotes/index/cover"
	"github.com/viant/mlnotes/knn"
	"github.com/viant/mlnotes/normalize"
	"github.com/viant/mlnotes/store"
)

// sourceFlags select where the training set comes from.
type sourceFlags struct {
	data string
	db   string
	set  string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.data, "data", "", "training CSV: [name,]features...,label")
	cmd.Flags().StringVar(&f.db, "db", "", "SQLite database holding imported training sets")
	cmd.Flags().StringVar(&f.set, "set", "", "training set name inside --db")
}

// normalizeFlags pick the rescaling applied before distances are computed.
type normalizeFlags struct {
	strategy       string
	features       []string
	skipDegenerate bool
}

func (f *normalizeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.strategy, "normalize", "none", "none, minmax or zscore")
	cmd.Flags().StringSliceVar(&f.features, "features", nil, "features to normalize (default all)")
	cmd.Flags().BoolVar(&f.skipDegenerate, "skip-degenerate", false, "leave constant features untouched instead of failing")
}

// resolve fills unset flags from the configuration.
func (f *normalizeFlags) resolve(cmd *cobra.Command, cfg *config.Config) (normalize.Strategy, []feature.Name, []normalize.Option, error) {
	if !cmd.Flags().Changed("normalize") {
		f.strategy = cfg.Normalize
	}
	if !cmd.Flags().Changed("features") {
		f.features = cfg.Features
	}
	if !cmd.Flags().Changed("skip-degenerate") {
		f.skipDegenerate = cfg.SkipDegenerate
	}
	strategy, err := normalize.ParseStrategy(f.strategy)
	if err != nil {
		return nil, nil, nil, err
	}
	names := make([]feature.Name, 0, len(f.features))
	for _, name := range f.features {
		names = append(names, feature.Name(strings.TrimSpace(name)))
	}
	var opts []normalize.Option
	if f.skipDegenerate {
		opts = append(opts, normalize.SkipDegenerate())
	}
	return strategy, names, opts, nil
}

// loadTraining reads the training set from --data, from --db/--set (or the
// configured database), or falls back to the built-in ingredients sample.
func (a *app) loadTraining(ctx context.Context, cmd *cobra.Command, f sourceFlags) (*knn.NeighborSet, error) {
	if !cmd.Flags().Changed("db") {
		f.db = a.cfg.Database
	}
	if !cmd.Flags().Changed("set") {
		f.set = a.cfg.Set
	}
	switch {
	case f.data != "":
		schema, examples, err := dataset.ParseFile(f.data)
		if err != nil {
			return nil, err
		}
		a.log.Debugw("training set loaded", "source", f.data, "examples", len(examples), "features", schema.Strings())
		return knn.NewNeighborSet(schema, examples)
	case f.db != "":
		if f.set == "" {
			return nil, fmt.Errorf("--set is required with --db")
		}
		db, err := engine.Open(f.db)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		st, err := store.NewSQLiteStore(ctx, db)
		if err != nil {
			return nil, err
		}
		set, err := st.Load(ctx, f.set)
		if err != nil {
			return nil, err
		}
		a.log.Debugw("training set loaded", "source", f.db, "set", f.set, "examples", set.Len())
		return set, nil
	}
	schema, examples := dataset.Ingredients()
	a.log.Debugw("training set loaded", "source", "built-in ingredients", "examples", len(examples))
	return knn.NewNeighborSet(schema, examples)
}

func newIndex(kind string) (index.Index, error) {
	switch strings.ToLower(kind) {
	case "", config.IndexBrute:
		return bruteforce.New(), nil
	case config.IndexCover:
		return cover.New(), nil
	}
	return nil, fmt.Errorf("unknown index %q (want brute or cover)", kind)
}
