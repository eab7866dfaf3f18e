package knn

import (
	"fmt"

	"github.com/viant/mlnotes/feature"
	"github.com/viant/mlnotes/index"
	"github.com/viant/mlnotes/index/bruteforce"
	"github.com/viant/mlnotes/normalize"
	"github.com/viant/mlnotes/vector"
)

// NeighborSet is the collection of training examples sharing one feature
// schema. It is read-only once built, except through Normalize.
type NeighborSet struct {
	schema   feature.Set
	examples []feature.Example
}

// NewNeighborSet copies examples into a set and validates that every example
// follows schema. A nil schema is inferred as positional names from the first
// example. An empty set is valid; classifying against it fails.
func NewNeighborSet(schema feature.Set, examples []feature.Example) (*NeighborSet, error) {
	if schema == nil && len(examples) > 0 {
		schema = feature.Generic(len(examples[0].Features))
	}
	for i, ex := range examples {
		if len(ex.Features) != schema.Len() {
			return nil, fmt.Errorf("knn: example %d (%s): %w", i, ex.Name, vector.Mismatch(len(ex.Features), schema.Len()))
		}
		if err := vector.Finite(ex.Features); err != nil {
			return nil, fmt.Errorf("knn: example %d (%s): %w", i, ex.Name, err)
		}
	}
	return &NeighborSet{
		schema:   append(feature.Set(nil), schema...),
		examples: feature.CloneAll(examples),
	}, nil
}

// Len returns the number of examples.
func (s *NeighborSet) Len() int { return len(s.examples) }

// Schema returns the feature schema.
func (s *NeighborSet) Schema() feature.Set { return append(feature.Set(nil), s.schema...) }

// At returns a copy of the i-th example.
func (s *NeighborSet) At(i int) feature.Example { return s.examples[i].Clone() }

// Examples returns a deep copy of every example in insertion order.
func (s *NeighborSet) Examples() []feature.Example { return feature.CloneAll(s.examples) }

// Clone returns an independent copy of the set.
func (s *NeighborSet) Clone() *NeighborSet {
	return &NeighborSet{schema: s.Schema(), examples: s.Examples()}
}

// Normalize rescales the named feature columns (all columns when none are
// given) across every example in place. The returned scales must be applied
// to any query classified against the set afterwards.
func (s *NeighborSet) Normalize(strategy normalize.Strategy, names []feature.Name, opts ...normalize.Option) (*normalize.Scales, error) {
	return normalize.Features(strategy, s.schema, names, s.examples, opts...)
}

// Nearest returns the k examples closest to query, nearest first.
func (s *NeighborSet) Nearest(query []float64, k int) ([]Neighbor, error) {
	if err := s.validate(query, k); err != nil {
		return nil, err
	}
	ranked, err := bruteforce.Rank(s.vectors(), query, k)
	if err != nil {
		return nil, err
	}
	return s.resolve(ranked), nil
}

// Classify returns the majority label among the k nearest examples.
func (s *NeighborSet) Classify(query []float64, k int) (Result, error) {
	neighbors, err := s.Nearest(query, k)
	if err != nil {
		return Result{}, err
	}
	return decide(neighbors), nil
}

// Classify is a convenience wrapper returning only the predicted label.
func Classify(set *NeighborSet, query []float64, k int) (string, error) {
	if set == nil {
		return "", ErrEmptyNeighborSet
	}
	res, err := set.Classify(query, k)
	if err != nil {
		return "", err
	}
	return res.Label, nil
}

func (s *NeighborSet) validate(query []float64, k int) error {
	if len(s.examples) == 0 {
		return ErrEmptyNeighborSet
	}
	if k < 1 || k > len(s.examples) {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidK, k, len(s.examples))
	}
	if len(query) != s.schema.Len() {
		return fmt.Errorf("knn: query: %w", vector.Mismatch(len(query), s.schema.Len()))
	}
	if err := vector.Finite(query); err != nil {
		return fmt.Errorf("knn: query: %w", err)
	}
	return nil
}

func (s *NeighborSet) vectors() [][]float64 {
	out := make([][]float64, len(s.examples))
	for i := range s.examples {
		out[i] = s.examples[i].Features
	}
	return out
}

func (s *NeighborSet) resolve(ranked []index.Neighbor) []Neighbor {
	out := make([]Neighbor, len(ranked))
	for i, n := range ranked {
		out[i] = Neighbor{Example: s.examples[n.Position].Clone(), Distance: n.Distance}
	}
	return out
}
