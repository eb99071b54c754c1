package nn

import (
	"fmt"
	"math"
	"strings"
)

// ActivationType identifies one of the supported activation functions.
type ActivationType int

// Supported activation types. The zero value is Sigmoid, which is also the
// fallback for unknown values.
const (
	ActivationSigmoid ActivationType = iota
	ActivationReLU
	ActivationSoftmax
)

// String returns the lower-case name used by the editing UI.
func (t ActivationType) String() string {
	switch t {
	case ActivationSigmoid:
		return "sigmoid"
	case ActivationReLU:
		return "relu"
	case ActivationSoftmax:
		return "softmax"
	default:
		return fmt.Sprintf("ActivationType(%d)", int(t))
	}
}

// ParseActivationType maps a case-insensitive name ("relu", "sigmoid",
// "softmax") to its ActivationType.
func ParseActivationType(name string) (ActivationType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sigmoid":
		return ActivationSigmoid, nil
	case "relu":
		return ActivationReLU, nil
	case "softmax":
		return ActivationSoftmax, nil
	default:
		return ActivationSigmoid, fmt.Errorf("unknown activation %q", name)
	}
}

// Activation is an activation function. It is a small value type with
// switch dispatch, so it is cheap to copy and safe to share between
// goroutines.
//
// Activate and Derivative both take the whole pre-activation vector and an
// index: Softmax normalizes over every element of v, the element-wise
// functions only read v[i].
type Activation struct {
	typ ActivationType
}

// Predefined activations.
var (
	Sigmoid = Activation{typ: ActivationSigmoid}
	ReLU    = Activation{typ: ActivationReLU}
	Softmax = Activation{typ: ActivationSoftmax}
)

// GetActivation returns the activation for t. Unrecognized types fall back
// to Sigmoid.
func GetActivation(t ActivationType) Activation {
	switch t {
	case ActivationReLU:
		return ReLU
	case ActivationSoftmax:
		return Softmax
	default:
		return Sigmoid
	}
}

// Type returns the activation's type.
func (a Activation) Type() ActivationType {
	return a.typ
}

// String implements fmt.Stringer.
func (a Activation) String() string {
	return a.typ.String()
}

// Activate returns the activation of v[i].
func (a Activation) Activate(v []float64, i int) float64 {
	switch a.typ {
	case ActivationReLU:
		return math.Max(0, v[i])
	case ActivationSoftmax:
		shift := maxOf(v)
		return math.Exp(v[i]-shift) / expSum(v, shift)
	default:
		return sigmoid(v[i])
	}
}

// Derivative returns the derivative of the activation at v[i] with respect
// to v[i].
func (a Activation) Derivative(v []float64, i int) float64 {
	switch a.typ {
	case ActivationReLU:
		if v[i] > 0 {
			return 1
		}
		return 0
	case ActivationSoftmax:
		// Diagonal term of the softmax Jacobian: (e*sum - e*e) / sum² = p(1-p).
		shift := maxOf(v)
		sum := expSum(v, shift)
		e := math.Exp(v[i] - shift)
		return (e*sum - e*e) / (sum * sum)
	default:
		s := sigmoid(v[i])
		return s * (1 - s)
	}
}

// ActivateAll writes the activation of every element of pre into out. For
// Softmax the normalizer is computed once instead of once per element. The
// result matches calling Activate for each index.
func (a Activation) ActivateAll(pre, out []float64) {
	mustMatch("Activation.ActivateAll", len(out), len(pre))

	if a.typ != ActivationSoftmax {
		for i := range pre {
			out[i] = a.Activate(pre, i)
		}
		return
	}

	shift := maxOf(pre)
	sum := expSum(pre, shift)
	for i, v := range pre {
		out[i] = math.Exp(v-shift) / sum
	}
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// maxOf returns the largest element of v, or 0 for an empty slice.
//
// Shifting every exponent by the max keeps exp finite for large inputs and
// cancels out in the softmax ratio.
func maxOf(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	m := v[0]
	for _, x := range v[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func expSum(v []float64, shift float64) float64 {
	var sum float64
	for _, x := range v {
		sum += math.Exp(x - shift)
	}
	return sum
}
