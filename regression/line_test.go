package regression

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/mlnotes/vector"
)

func TestORing(t *testing.T) {
	assert.InDelta(t, 0.34, ORing.Predict(70), 1e-9)
	assert.InDelta(t, 3.70, ORing.Predict(0), 1e-12)
	assert.Equal(t, "y = 3.7 -0.048*x", ORing.String())
}

func TestFit(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{3, 5, 7, 9, 11}
	line, err := Fit(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 1, line.Intercept, 1e-9)
	assert.InDelta(t, 2, line.Slope, 1e-9)

	sse, err := line.SumSquaredErrors(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 0, sse, 1e-9)

	// least squares beats a perturbed line
	noisy := []float64{2.8, 5.3, 6.9, 9.2, 10.9}
	fit, err := Fit(x, noisy)
	require.NoError(t, err)
	best, _ := fit.SumSquaredErrors(x, noisy)
	other, _ := Line{fit.Intercept + 0.1, fit.Slope}.SumSquaredErrors(x, noisy)
	assert.Less(t, best, other)
}

func TestFit_Errors(t *testing.T) {
	_, err := Fit([]float64{1, 2}, []float64{1})
	assert.True(t, errors.Is(err, vector.ErrDimensionMismatch))
	_, err = Fit([]float64{1}, []float64{1})
	assert.True(t, errors.Is(err, ErrTooFewPoints))
	_, err = Fit([]float64{2, 2, 2}, []float64{1, 2, 3})
	assert.True(t, errors.Is(err, ErrConstantInput))
}

func TestCorrelation(t *testing.T) {
	r, err := Correlation([]float64{1, 2, 3}, []float64{2, 4, 6})
	require.NoError(t, err)
	assert.InDelta(t, 1, r, 1e-12)

	r, err = Correlation([]float64{1, 2, 3}, []float64{3, 2, 1})
	require.NoError(t, err)
	assert.InDelta(t, -1, r, 1e-12)

	_, err = Correlation([]float64{1, 2, 3}, []float64{5, 5, 5})
	assert.True(t, errors.Is(err, ErrConstantInput))
}
