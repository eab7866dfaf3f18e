package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrInvalidDistribution is returned for probabilities outside [0, 1] or not
// summing to one.
var ErrInvalidDistribution = errors.New("stats: invalid distribution")

const distributionTolerance = 1e-9

// Entropy returns the Shannon entropy, in bits, of a class distribution:
// -sum(p * log2 p). A 50/50 split gives 1; a pure set gives 0.
func Entropy(p []float64) (float64, error) {
	if len(p) == 0 {
		return 0, fmt.Errorf("%w: empty", ErrInvalidDistribution)
	}
	for _, v := range p {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return 0, fmt.Errorf("%w: probability %v", ErrInvalidDistribution, v)
		}
	}
	if sum := floats.Sum(p); math.Abs(sum-1) > distributionTolerance {
		return 0, fmt.Errorf("%w: sums to %v", ErrInvalidDistribution, sum)
	}
	// stat.Entropy is in nats; Max also turns -0 from a pure set into 0
	return math.Max(0, stat.Entropy(p)/math.Ln2), nil
}

// Distribution returns the labels in sorted order with their proportions.
func Distribution(labels []string) ([]string, []float64) {
	counts := make(map[string]int)
	for _, l := range labels {
		counts[l]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	p := make([]float64, len(keys))
	for i, k := range keys {
		p[i] = float64(counts[k]) / float64(len(labels))
	}
	return keys, p
}

// EntropyOfLabels returns the entropy of the label frequencies.
func EntropyOfLabels(labels []string) (float64, error) {
	if len(labels) == 0 {
		return 0, fmt.Errorf("%w: no labels", ErrInvalidDistribution)
	}
	_, p := Distribution(labels)
	return Entropy(p)
}

// InformationGain returns the drop in entropy obtained by splitting parent
// into partitions, each weighted by its share of the parent.
func InformationGain(parent []string, partitions ...[]string) (float64, error) {
	before, err := EntropyOfLabels(parent)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, part := range partitions {
		total += len(part)
	}
	if total != len(parent) {
		return 0, fmt.Errorf("%w: partitions hold %d labels, parent %d", ErrInvalidDistribution, total, len(parent))
	}
	var after float64
	for _, part := range partitions {
		if len(part) == 0 {
			continue
		}
		e, err := EntropyOfLabels(part)
		if err != nil {
			return 0, err
		}
		after += float64(len(part)) / float64(len(parent)) * e
	}
	return before - after, nil
}
