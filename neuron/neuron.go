// Package neuron implements a single artificial neuron with threshold and
// sigmoid activations.
package neuron

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/viant/mlnotes/vector"
)

// Activation maps a weighted sum to the neuron output.
type Activation func(x float64) float64

// Step fires 1 when x >= 0 and 0 otherwise.
func Step(x float64) float64 {
	if x >= 0 {
		return 1
	}
	return 0
}

// Sigmoid returns 1 / (1 + e^-x).
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// ParseActivation resolves "step" or "sigmoid".
func ParseActivation(name string) (Activation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "step", "threshold":
		return Step, nil
	case "sigmoid", "logistic":
		return Sigmoid, nil
	}
	return nil, fmt.Errorf("neuron: unknown activation %q", name)
}

// Fire sums weights*inputs plus bias and applies fn.
func Fire(weights, inputs []float64, bias float64, fn Activation) (float64, error) {
	if len(weights) != len(inputs) {
		return 0, vector.Mismatch(len(inputs), len(weights))
	}
	if fn == nil {
		fn = Step
	}
	sum := bias
	if len(weights) > 0 {
		sum += floats.Dot(weights, inputs)
	}
	return fn(sum), nil
}
