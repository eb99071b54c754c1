package nn

import (
	"fmt"
	"math"
)

// Cost is a cost (loss) function over one example's outputs. Like
// Activation it is a stateless value type and safe for concurrent use.
type Cost int

// Supported cost functions.
const (
	// MeanSquaredError is 0.5 * Σ (predicted - expected)².
	MeanSquaredError Cost = iota
	// CrossEntropy is the binary cross-entropy summed over outputs. It
	// expects predictions in (0, 1), e.g. from Sigmoid or Softmax layers.
	CrossEntropy
)

// String implements fmt.Stringer.
func (c Cost) String() string {
	switch c {
	case MeanSquaredError:
		return "mse"
	case CrossEntropy:
		return "cross_entropy"
	default:
		return fmt.Sprintf("Cost(%d)", int(c))
	}
}

// Derivative returns ∂Cost/∂predicted for a single output.
func (c Cost) Derivative(predicted, expected float64) float64 {
	switch c {
	case CrossEntropy:
		if predicted == 0 || predicted == 1 {
			return 0
		}
		return (predicted - expected) / (predicted * (1 - predicted))
	default:
		return predicted - expected
	}
}

// Value returns the total cost of one example. Panics with
// ErrDimensionMismatch when the slices differ in length.
func (c Cost) Value(predicted, expected []float64) float64 {
	mustMatch("Cost.Value", len(expected), len(predicted))

	var total float64
	switch c {
	case CrossEntropy:
		for i, p := range predicted {
			e := expected[i]
			v := -(e*math.Log(p) + (1-e)*math.Log(1-p))
			// Saturated outputs give NaN or ±Inf terms; they contribute nothing.
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				total += v
			}
		}
	default:
		for i, p := range predicted {
			diff := p - expected[i]
			total += diff * diff
		}
		total *= 0.5
	}
	return total
}
