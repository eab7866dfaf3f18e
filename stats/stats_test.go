package stats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosterior_Spam(t *testing.T) {
	got, err := Posterior(Ratio{4, 20}, Ratio{20, 100}, Ratio{5, 100})
	require.NoError(t, err)
	assert.InDelta(t, 0.8, got, 1e-12)

	_, err = Posterior(Ratio{4, 0}, Ratio{20, 100}, Ratio{5, 100})
	assert.True(t, errors.Is(err, ErrZeroDenominator))
	_, err = Posterior(Ratio{4, 20}, Ratio{20, 100}, Ratio{0, 100})
	assert.True(t, errors.Is(err, ErrZeroDenominator))
}

func TestParseRatio(t *testing.T) {
	r, err := ParseRatio("4/20")
	require.NoError(t, err)
	assert.Equal(t, Ratio{4, 20}, r)

	r, err = ParseRatio(" 0.25 ")
	require.NoError(t, err)
	assert.Equal(t, Ratio{0.25, 1}, r)

	_, err = ParseRatio("a/b")
	assert.Error(t, err)
	_, err = ParseRatio("1/x")
	assert.Error(t, err)
}

func TestEntropy(t *testing.T) {
	cases := []struct {
		p    []float64
		want float64
	}{
		{[]float64{0.5, 0.5}, 1},
		{[]float64{0.6, 0.4}, 0.970951},
		{[]float64{0.7, 0.3}, 0.881291},
		{[]float64{0.8, 0.2}, 0.721928},
		{[]float64{1, 0}, 0},
	}
	prev := 2.0
	for _, c := range cases {
		got, err := Entropy(c.p)
		require.NoError(t, err)
		assert.InDelta(t, c.want, got, 1e-6, "%v", c.p)
		// entropy falls as one class dominates
		assert.Less(t, got, prev)
		prev = got
	}

	_, err := Entropy([]float64{0.5, 0.6})
	assert.True(t, errors.Is(err, ErrInvalidDistribution))
	_, err = Entropy([]float64{-0.5, 1.5})
	assert.True(t, errors.Is(err, ErrInvalidDistribution))
	_, err = Entropy(nil)
	assert.True(t, errors.Is(err, ErrInvalidDistribution))
}

func TestInformationGain(t *testing.T) {
	parent := []string{"red", "red", "red", "white", "white", "white"}

	perfect, err := InformationGain(parent, parent[:3], parent[3:])
	require.NoError(t, err)
	assert.InDelta(t, 1, perfect, 1e-12)

	useless, err := InformationGain(parent, []string{"red", "white"}, []string{"red", "white", "red", "white"})
	require.NoError(t, err)
	assert.InDelta(t, 0, useless, 1e-12)

	_, err = InformationGain(parent, parent[:2])
	assert.True(t, errors.Is(err, ErrInvalidDistribution))
}

func TestDistribution(t *testing.T) {
	keys, p := Distribution([]string{"b", "a", "b", "b"})
	assert.Equal(t, []string{"a", "b"}, keys)
	assert.Equal(t, []float64{0.25, 0.75}, p)
}
