package normalize

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/viant/mlnotes/feature"
	"github.com/viant/mlnotes/vector"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrDegenerateRange is returned by MinMax for a constant column (max == min).
	ErrDegenerateRange = errors.New("normalize: degenerate range")
	// ErrZeroVariance is returned by ZScore when the sample standard deviation is zero.
	ErrZeroVariance = errors.New("normalize: zero variance")
	// ErrEmptyCollection is returned when there is nothing to fit a column on.
	ErrEmptyCollection = errors.New("normalize: empty collection")
	// ErrUnknownStrategy is returned by ParseStrategy.
	ErrUnknownStrategy = errors.New("normalize: unknown strategy")
)

// Strategy fits a transform for one column over the whole collection and
// rewrites that column of every example in place. On error the column is
// left untouched.
type Strategy interface {
	Name() string
	Normalize(column int, examples []feature.Example) (Scale, error)
}

// Scale is the affine transform fitted for one column: (v - Offset) / Divisor.
type Scale struct {
	Column  int
	Offset  float64
	Divisor float64
}

// Apply transforms a single value.
func (s Scale) Apply(v float64) float64 { return (v - s.Offset) / s.Divisor }

// MinMax maps a column onto [0, 1]: (v - min) / (max - min).
type MinMax struct{}

// ZScore centers a column on its mean and divides by the sample standard
// deviation: (v - mean) / stddev.
type ZScore struct{}

// None leaves every column untouched.
type None struct{}

func (MinMax) Name() string { return "minmax" }
func (ZScore) Name() string { return "zscore" }
func (None) Name() string   { return "none" }

// Normalize implements Strategy.
func (m MinMax) Normalize(column int, examples []feature.Example) (Scale, error) {
	values, err := columnValues(column, examples)
	if err != nil {
		return Scale{}, err
	}
	lo, hi := floats.Min(values), floats.Max(values)
	if hi == lo {
		return Scale{}, fmt.Errorf("%w: column %d is constant (%v)", ErrDegenerateRange, column, lo)
	}
	scale := Scale{Column: column, Offset: lo, Divisor: hi - lo}
	rewrite(scale, examples)
	return scale, nil
}

// Normalize implements Strategy.
func (z ZScore) Normalize(column int, examples []feature.Example) (Scale, error) {
	values, err := columnValues(column, examples)
	if err != nil {
		return Scale{}, err
	}
	if len(values) < 2 {
		return Scale{}, fmt.Errorf("%w: column %d has %d value(s)", ErrZeroVariance, column, len(values))
	}
	mean, std := stat.MeanStdDev(values, nil)
	if std == 0 || math.IsNaN(std) {
		return Scale{}, fmt.Errorf("%w: column %d is constant (%v)", ErrZeroVariance, column, mean)
	}
	scale := Scale{Column: column, Offset: mean, Divisor: std}
	rewrite(scale, examples)
	return scale, nil
}

// Normalize implements Strategy.
func (None) Normalize(column int, examples []feature.Example) (Scale, error) {
	if _, err := columnValues(column, examples); err != nil {
		return Scale{}, err
	}
	return Scale{Column: column, Offset: 0, Divisor: 1}, nil
}

// ParseStrategy resolves a strategy by name: none, minmax or zscore.
// An empty name selects None.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return None{}, nil
	case "minmax", "min-max", "min_max":
		return MinMax{}, nil
	case "zscore", "z-score", "z_score":
		return ZScore{}, nil
	}
	return nil, fmt.Errorf("%w: %q (want none, minmax or zscore)", ErrUnknownStrategy, name)
}

func columnValues(column int, examples []feature.Example) ([]float64, error) {
	if len(examples) == 0 {
		return nil, ErrEmptyCollection
	}
	values := make([]float64, len(examples))
	for i, ex := range examples {
		if column < 0 || column >= len(ex.Features) {
			return nil, fmt.Errorf("normalize: column %d of example %d: %w", column, i, vector.Mismatch(len(ex.Features), column+1))
		}
		values[i] = ex.Features[column]
	}
	return values, nil
}

func rewrite(scale Scale, examples []feature.Example) {
	for i := range examples {
		examples[i].Features[scale.Column] = scale.Apply(examples[i].Features[scale.Column])
	}
}
