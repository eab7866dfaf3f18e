package normalize

import (
	"errors"
	"fmt"

	"github.com/viant/mlnotes/feature"
	"github.com/viant/mlnotes/vector"
)

// Scales records every column transform fitted over a collection, so the
// same rescaling can be replayed on a query.
type Scales struct {
	Strategy string
	Arity    int
	Scales   []Scale
	// Skipped lists columns left untouched because they were constant.
	Skipped []int
}

// Apply returns a rescaled copy of query. A nil Scales returns a plain copy.
func (s *Scales) Apply(query []float64) ([]float64, error) {
	out := append([]float64(nil), query...)
	if s == nil {
		return out, nil
	}
	if len(query) != s.Arity {
		return nil, fmt.Errorf("normalize: query: %w", vector.Mismatch(len(query), s.Arity))
	}
	for _, sc := range s.Scales {
		out[sc.Column] = sc.Apply(out[sc.Column])
	}
	return out, nil
}

// Option adjusts Columns.
type Option func(*options)

type options struct {
	skipDegenerate bool
}

// SkipDegenerate leaves constant columns untouched instead of failing with
// ErrDegenerateRange or ErrZeroVariance. Skipped columns are reported in
// Scales.Skipped.
func SkipDegenerate() Option {
	return func(o *options) { o.skipDegenerate = true }
}

// Columns normalizes each requested column of examples independently with
// strategy. No columns means every column. Duplicate columns are fitted once.
// Every column is fitted before the caller computes any distance, and the
// returned Scales must be applied to the query.
func Columns(strategy Strategy, columns []int, examples []feature.Example, opts ...Option) (*Scales, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if strategy == nil {
		strategy = None{}
	}
	if len(examples) == 0 {
		return nil, ErrEmptyCollection
	}
	arity := len(examples[0].Features)
	for i, ex := range examples {
		if len(ex.Features) != arity {
			return nil, fmt.Errorf("normalize: example %d: %w", i, vector.Mismatch(len(ex.Features), arity))
		}
	}
	if len(columns) == 0 {
		columns = make([]int, arity)
		for i := range columns {
			columns[i] = i
		}
	}
	result := &Scales{Strategy: strategy.Name(), Arity: arity}
	seen := make(map[int]bool, len(columns))
	for _, col := range columns {
		if seen[col] {
			continue
		}
		seen[col] = true
		scale, err := strategy.Normalize(col, examples)
		if err != nil {
			if o.skipDegenerate && (errors.Is(err, ErrDegenerateRange) || errors.Is(err, ErrZeroVariance)) {
				result.Skipped = append(result.Skipped, col)
				continue
			}
			return nil, err
		}
		result.Scales = append(result.Scales, scale)
	}
	return result, nil
}

// Features resolves feature names against schema and normalizes those columns.
func Features(strategy Strategy, schema feature.Set, names []feature.Name, examples []feature.Example, opts ...Option) (*Scales, error) {
	columns, err := schema.Indexes(names...)
	if err != nil {
		return nil, err
	}
	return Columns(strategy, columns, examples, opts...)
}
