package regression

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/viant/mlnotes/vector"
)

var (
	// ErrTooFewPoints is returned when fewer than two points are given.
	ErrTooFewPoints = errors.New("regression: at least two points required")
	// ErrConstantInput is returned when x (or y, for correlation) has no spread.
	ErrConstantInput = errors.New("regression: constant input")
)

// Line is y = Intercept + Slope*x.
type Line struct {
	Intercept float64
	Slope     float64
}

// ORing relates launch temperature (F) to O-ring incidents.
var ORing = Line{Intercept: 3.70, Slope: -0.048}

// Predict evaluates the line at x.
func (l Line) Predict(x float64) float64 {
	return l.Intercept + l.Slope*x
}

func (l Line) String() string {
	return fmt.Sprintf("y = %g %+g*x", l.Intercept, l.Slope)
}

// SumSquaredErrors returns sum((y - Predict(x))^2).
func (l Line) SumSquaredErrors(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, vector.Mismatch(len(y), len(x))
	}
	var sse float64
	for i := range x {
		r := y[i] - l.Predict(x[i])
		sse += r * r
	}
	return sse, nil
}

func check(x, y []float64) error {
	if len(x) != len(y) {
		return vector.Mismatch(len(y), len(x))
	}
	if len(x) < 2 {
		return ErrTooFewPoints
	}
	return nil
}

// Fit returns the ordinary least squares line through (x, y).
func Fit(x, y []float64) (Line, error) {
	if err := check(x, y); err != nil {
		return Line{}, err
	}
	if floats.Max(x) == floats.Min(x) {
		return Line{}, fmt.Errorf("%w: x", ErrConstantInput)
	}
	alpha, beta := stat.LinearRegression(x, y, nil, false)
	return Line{Intercept: alpha, Slope: beta}, nil
}

// Correlation returns Pearson's r between x and y.
func Correlation(x, y []float64) (float64, error) {
	if err := check(x, y); err != nil {
		return 0, err
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0, ErrConstantInput
	}
	return r, nil
}
