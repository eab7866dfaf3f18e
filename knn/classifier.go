package knn

import (
	"fmt"

	"github.com/viant/mlnotes/feature"
	"github.com/viant/mlnotes/index"
	"github.com/viant/mlnotes/index/bruteforce"
	"github.com/viant/mlnotes/normalize"
)

// Classifier binds a NeighborSet to an index and an optional normalization.
// The training set is cloned, normalized once and indexed by New; Classify
// then rescales every query with the same fitted scales.
type Classifier struct {
	set    *NeighborSet
	idx    index.Index
	scales *normalize.Scales
}

// Option configures a Classifier.
type Option func(*classifierOptions)

type classifierOptions struct {
	idx        index.Index
	strategy   normalize.Strategy
	features   []feature.Name
	normalizes []normalize.Option
}

// WithIndex selects the kNN index; the default is the brute-force index.
func WithIndex(idx index.Index) Option {
	return func(o *classifierOptions) { o.idx = idx }
}

// WithNormalization rescales the named features (all when none are given)
// before indexing.
func WithNormalization(strategy normalize.Strategy, names []feature.Name, opts ...normalize.Option) Option {
	return func(o *classifierOptions) {
		o.strategy = strategy
		o.features = names
		o.normalizes = opts
	}
}

// New builds a classifier over a copy of set.
func New(set *NeighborSet, opts ...Option) (*Classifier, error) {
	if set == nil || set.Len() == 0 {
		return nil, ErrEmptyNeighborSet
	}
	o := classifierOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.idx == nil {
		o.idx = bruteforce.New()
	}
	c := &Classifier{set: set.Clone(), idx: o.idx}
	if o.strategy != nil {
		scales, err := c.set.Normalize(o.strategy, o.features, o.normalizes...)
		if err != nil {
			return nil, err
		}
		c.scales = scales
	}
	if err := c.idx.Build(c.set.vectors()); err != nil {
		return nil, err
	}
	return c, nil
}

// Set returns the (possibly normalized) training set.
func (c *Classifier) Set() *NeighborSet { return c.set }

// Scales returns the fitted normalization, or nil.
func (c *Classifier) Scales() *normalize.Scales { return c.scales }

// Nearest returns the k nearest (normalized) examples to query.
func (c *Classifier) Nearest(query []float64, k int) ([]Neighbor, error) {
	if err := c.set.validate(query, k); err != nil {
		return nil, err
	}
	scaled, err := c.scales.Apply(query)
	if err != nil {
		return nil, err
	}
	ranked, err := c.idx.Query(scaled, k)
	if err != nil {
		return nil, err
	}
	if len(ranked) != k {
		return nil, fmt.Errorf("knn: index returned %d neighbors, want %d", len(ranked), k)
	}
	return c.set.resolve(ranked), nil
}

// Classify returns the majority label among the k nearest examples.
func (c *Classifier) Classify(query []float64, k int) (Result, error) {
	neighbors, err := c.Nearest(query, k)
	if err != nil {
		return Result{}, err
	}
	return decide(neighbors), nil
}
