package normalize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/mlnotes/feature"
	"github.com/viant/mlnotes/vector"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func ingredients() []feature.Example {
	return []feature.Example{
		feature.NewExample("green_bean", "vegetable", 3, 7),
		feature.NewExample("grape", "fruit", 8, 5),
		feature.NewExample("nuts", "protein", 3, 6),
		feature.NewExample("orange", "fruit", 7, 3),
	}
}

func column(examples []feature.Example, col int) []float64 {
	out := make([]float64, len(examples))
	for i, ex := range examples {
		out[i] = ex.Features[col]
	}
	return out
}

func TestMinMax_MapsToUnitRange(t *testing.T) {
	examples := ingredients()
	scale, err := MinMax{}.Normalize(0, examples)
	require.NoError(t, err)

	assert.Equal(t, Scale{Column: 0, Offset: 3, Divisor: 5}, scale)
	assert.Equal(t, []float64{0, 1, 0, 0.8}, column(examples, 0))
	// the other column is untouched
	assert.Equal(t, []float64{7, 5, 6, 3}, column(examples, 1))
}

func TestMinMax_Idempotent(t *testing.T) {
	examples := ingredients()
	_, err := Columns(MinMax{}, nil, examples)
	require.NoError(t, err)
	first := feature.CloneAll(examples)

	_, err = Columns(MinMax{}, nil, examples)
	require.NoError(t, err)
	for i := range examples {
		assert.InDeltaSlice(t, first[i].Features, examples[i].Features, 1e-12)
	}
}

func TestMinMax_DegenerateRange(t *testing.T) {
	examples := []feature.Example{
		feature.NewExample("a", "x", 1, 5),
		feature.NewExample("b", "y", 2, 5),
	}
	_, err := MinMax{}.Normalize(1, examples)
	assert.True(t, errors.Is(err, ErrDegenerateRange))
	assert.Equal(t, []float64{5, 5}, column(examples, 1), "column must be left untouched")
}

func TestZScore_MeanZero(t *testing.T) {
	examples := ingredients()
	scale, err := ZScore{}.Normalize(1, examples)
	require.NoError(t, err)

	values := column(examples, 1)
	assert.InDelta(t, 0, stat.Mean(values, nil), 1e-12)
	assert.InDelta(t, 1, stat.StdDev(values, nil), 1e-12)
	assert.InDelta(t, 5.25, scale.Offset, 1e-12)
	// the other column is untouched
	assert.Equal(t, []float64{3, 8, 3, 7}, column(examples, 0))
}

func TestZScore_ZeroVariance(t *testing.T) {
	examples := []feature.Example{
		feature.NewExample("a", "x", 4),
		feature.NewExample("b", "y", 4),
	}
	_, err := ZScore{}.Normalize(0, examples)
	assert.True(t, errors.Is(err, ErrZeroVariance))

	_, err = ZScore{}.Normalize(0, examples[:1])
	assert.True(t, errors.Is(err, ErrZeroVariance))
}

func TestNormalize_ColumnOutOfRange(t *testing.T) {
	for _, s := range []Strategy{MinMax{}, ZScore{}, None{}} {
		_, err := s.Normalize(2, ingredients())
		assert.True(t, errors.Is(err, vector.ErrDimensionMismatch), s.Name())

		_, err = s.Normalize(0, nil)
		assert.True(t, errors.Is(err, ErrEmptyCollection), s.Name())
	}
}

func TestColumns_SkipDegenerate(t *testing.T) {
	examples := []feature.Example{
		feature.NewExample("a", "x", 1, 5),
		feature.NewExample("b", "y", 3, 5),
	}
	_, err := Columns(MinMax{}, nil, feature.CloneAll(examples))
	assert.True(t, errors.Is(err, ErrDegenerateRange))

	scales, err := Columns(MinMax{}, nil, examples, SkipDegenerate())
	require.NoError(t, err)
	assert.Equal(t, []int{1}, scales.Skipped)
	assert.Equal(t, []float64{0, 1}, column(examples, 0))
	assert.Equal(t, []float64{5, 5}, column(examples, 1))
}

func TestScales_ApplyToQuery(t *testing.T) {
	examples := ingredients()
	scales, err := Features(MinMax{}, feature.NewSet("sweetness", "crunchiness"), []feature.Name{"sweetness"}, examples)
	require.NoError(t, err)

	query := []float64{6, 4}
	got, err := scales.Apply(query)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.6, 4}, got)
	assert.Equal(t, []float64{6, 4}, query, "query must not be mutated")

	_, err = scales.Apply([]float64{1})
	assert.True(t, errors.Is(err, vector.ErrDimensionMismatch))

	var none *Scales
	got, err = none.Apply(query)
	require.NoError(t, err)
	assert.Equal(t, query, got)
}

func TestColumns_Independent(t *testing.T) {
	examples := []feature.Example{
		feature.NewExample("a", "x", 1, 1000000),
		feature.NewExample("b", "y", 5, 0),
		feature.NewExample("c", "y", 3, 500000),
	}
	_, err := Columns(MinMax{}, []int{0, 1}, examples)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0.5}, column(examples, 0))
	assert.Equal(t, []float64{1, 0, 0.5}, column(examples, 1))
	assert.Equal(t, 1.0, floats.Max(column(examples, 1)))
}

func TestParseStrategy(t *testing.T) {
	for name, want := range map[string]string{"": "none", "none": "none", "MinMax": "minmax", "z-score": "zscore"} {
		s, err := ParseStrategy(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, s.Name())
	}
	_, err := ParseStrategy("robust")
	assert.True(t, errors.Is(err, ErrUnknownStrategy))
}
