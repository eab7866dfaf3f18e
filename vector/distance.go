package vector

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch reports that two feature vectors have different
// arity. Distances between such vectors are undefined, so nothing is ever
// truncated to make them fit.
var ErrDimensionMismatch = errors.New("vector: dimension mismatch")

// ErrNonFinite reports a NaN or infinite feature value or distance.
var ErrNonFinite = errors.New("vector: non-finite value")

// Finite returns an error wrapping ErrNonFinite for the first NaN or ±Inf in v.
func Finite(v []float64) error {
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: feature %d is %v", ErrNonFinite, i+1, x)
		}
	}
	return nil
}

// Mismatch wraps ErrDimensionMismatch with both lengths.
func Mismatch(got, want int) error {
	return fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, got, want)
}

// Euclidean computes the Euclidean (L2) distance between two vectors: the
// square root of the summed squared differences of paired features. It
// returns an error wrapping ErrDimensionMismatch if the vectors have
// different lengths, and one wrapping ErrNonFinite when an input is NaN or
// infinite or the sum overflows.
func Euclidean(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, Mismatch(len(a), len(b))
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	if math.IsNaN(sum) || math.IsInf(sum, 0) {
		return 0, fmt.Errorf("%w: distance is %v", ErrNonFinite, sum)
	}
	return math.Sqrt(sum), nil
}
