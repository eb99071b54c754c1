package nn_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnvis/nnvis/internal/nn"
)

const epsilon = 1e-6

func TestReLU_Activate(t *testing.T) {
	inputs := []float64{5.0, 3.2, 0.1, 0.0, -0.1, -3.2, -5.0}

	for i, v := range inputs {
		assert.Equal(t, math.Max(0, v), nn.ReLU.Activate(inputs, i), "input %v", v)
	}
}

func TestReLU_Derivative(t *testing.T) {
	inputs := []float64{5.0, 0.1, 1e-300, 0.0, -1e-300, -0.1, -5.0}
	want := []float64{1, 1, 1, 0, 0, 0, 0}

	for i := range inputs {
		assert.Equal(t, want[i], nn.ReLU.Derivative(inputs, i), "input %v", inputs[i])
	}
}

func TestReLU_ExtremeValues(t *testing.T) {
	inputs := []float64{1e10, 1e100, -1e10, -1e100}

	assert.Equal(t, 1e10, nn.ReLU.Activate(inputs, 0))
	assert.Equal(t, 1e100, nn.ReLU.Activate(inputs, 1))
	assert.Equal(t, 0.0, nn.ReLU.Activate(inputs, 2))
	assert.Equal(t, 0.0, nn.ReLU.Activate(inputs, 3))
}

func TestSigmoid_KnownValues(t *testing.T) {
	inputs := []float64{0.0, 2.0}

	assert.Equal(t, 0.5, nn.Sigmoid.Activate(inputs, 0))
	assert.InDelta(t, 0.8807970779778823, nn.Sigmoid.Activate(inputs, 1), epsilon)
	assert.Equal(t, 0.25, nn.Sigmoid.Derivative(inputs, 0))
}

func TestSigmoid_Monotonic(t *testing.T) {
	inputs := []float64{-5.0, -2.0, -1.0, 1.0, 2.0, 5.0}

	prev := 0.0
	for i := range inputs {
		got := nn.Sigmoid.Activate(inputs, i)
		assert.Greater(t, got, prev)
		prev = got
	}
	assert.Less(t, nn.Sigmoid.Activate(inputs, 2), 0.5)
	assert.Greater(t, nn.Sigmoid.Activate(inputs, 3), 0.5)
}

func TestSigmoid_DerivativeMatchesFormula(t *testing.T) {
	inputs := []float64{1.0, -2.0, 0.3, 7.5, -40}

	for i := range inputs {
		a := nn.Sigmoid.Activate(inputs, i)
		assert.Equal(t, a*(1-a), nn.Sigmoid.Derivative(inputs, i))
	}
}

func TestSigmoid_Saturates(t *testing.T) {
	inputs := []float64{100, -100, 1000, -1000}

	for i, v := range inputs {
		a := nn.Sigmoid.Activate(inputs, i)
		d := nn.Sigmoid.Derivative(inputs, i)
		require.False(t, math.IsNaN(a) || math.IsInf(a, 0), "activate(%v) = %v", v, a)
		require.False(t, math.IsNaN(d) || math.IsInf(d, 0), "derivative(%v) = %v", v, d)
		assert.GreaterOrEqual(t, a, 0.0)
		assert.LessOrEqual(t, a, 1.0)
	}
	assert.Greater(t, nn.Sigmoid.Activate(inputs, 0), 0.999)
	assert.Less(t, nn.Sigmoid.Activate(inputs, 1), 0.001)
}

func softmaxSum(v []float64) float64 {
	var sum float64
	for i := range v {
		sum += nn.Softmax.Activate(v, i)
	}
	return sum
}

func TestSoftmax_SumsToOne(t *testing.T) {
	cases := [][]float64{
		{1.0, 2.0, 3.0, 4.0},
		{-1.0, -2.0, -3.0},
		{0},
		{1000.0, 1001.0, 1002.0},
		{-1000.0, 0, 1000.0},
	}

	for _, v := range cases {
		assert.InDelta(t, 1.0, softmaxSum(v), epsilon, "inputs %v", v)
	}
}

func TestSoftmax_EqualInputs(t *testing.T) {
	inputs := []float64{2.0, 2.0, 2.0, 2.0}

	for i := range inputs {
		assert.Equal(t, 0.25, nn.Softmax.Activate(inputs, i))
	}
}

func TestSoftmax_KnownValues(t *testing.T) {
	inputs := []float64{1.0, 2.0, 3.0}
	sum := math.Exp(1) + math.Exp(2) + math.Exp(3)

	for i, v := range inputs {
		assert.InDelta(t, math.Exp(v)/sum, nn.Softmax.Activate(inputs, i), epsilon)
	}
}

func TestSoftmax_Monotonic(t *testing.T) {
	inputs := []float64{1.0, 2.0, 3.0}

	assert.Less(t, nn.Softmax.Activate(inputs, 0), nn.Softmax.Activate(inputs, 1))
	assert.Less(t, nn.Softmax.Activate(inputs, 1), nn.Softmax.Activate(inputs, 2))
}

func TestSoftmax_LargeValuesStayFinite(t *testing.T) {
	inputs := []float64{1000.0, 1001.0, 1002.0}

	for i := range inputs {
		a := nn.Softmax.Activate(inputs, i)
		d := nn.Softmax.Derivative(inputs, i)
		require.False(t, math.IsNaN(a) || math.IsInf(a, 0), "output %d = %v", i, a)
		require.False(t, math.IsNaN(d) || math.IsInf(d, 0), "derivative %d = %v", i, d)
	}

	// A uniform shift leaves softmax unchanged.
	small := []float64{0, 1, 2}
	for i := range inputs {
		assert.InDelta(t, nn.Softmax.Activate(small, i), nn.Softmax.Activate(inputs, i), 1e-12)
	}
}

func TestSoftmax_Derivative(t *testing.T) {
	inputs := []float64{1.0, 2.0, 3.0}

	for i := range inputs {
		p := nn.Softmax.Activate(inputs, i)
		d := nn.Softmax.Derivative(inputs, i)
		assert.Greater(t, d, 0.0)
		assert.InDelta(t, p*(1-p), d, 1e-12)
	}
}

func TestActivateAll_MatchesActivate(t *testing.T) {
	pre := []float64{-3.5, -0.2, 0, 0.7, 4.1}

	for _, a := range []nn.Activation{nn.Sigmoid, nn.ReLU, nn.Softmax} {
		out := make([]float64, len(pre))
		a.ActivateAll(pre, out)
		for i := range pre {
			assert.InDelta(t, a.Activate(pre, i), out[i], 1e-15, "%v[%d]", a, i)
		}
	}
}

func TestActivateAll_LengthMismatch(t *testing.T) {
	err := recoverError(func() {
		nn.Sigmoid.ActivateAll(make([]float64, 3), make([]float64, 2))
	})
	assert.ErrorIs(t, err, nn.ErrDimensionMismatch)
}

func TestGetActivation(t *testing.T) {
	assert.Equal(t, nn.ReLU, nn.GetActivation(nn.ActivationReLU))
	assert.Equal(t, nn.Sigmoid, nn.GetActivation(nn.ActivationSigmoid))
	assert.Equal(t, nn.Softmax, nn.GetActivation(nn.ActivationSoftmax))

	// Unknown types fall back to Sigmoid.
	assert.Equal(t, nn.Sigmoid, nn.GetActivation(nn.ActivationType(42)))
	assert.Equal(t, nn.ActivationSigmoid, nn.GetActivation(-1).Type())
}

func TestParseActivationType(t *testing.T) {
	tests := []struct {
		name string
		want nn.ActivationType
	}{
		{"relu", nn.ActivationReLU},
		{"ReLU", nn.ActivationReLU},
		{" sigmoid ", nn.ActivationSigmoid},
		{"Softmax", nn.ActivationSoftmax},
	}

	for _, tt := range tests {
		got, err := nn.ParseActivationType(tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, got, mustParse(t, got.String()))
	}

	_, err := nn.ParseActivationType("tanh")
	assert.Error(t, err)
}

func mustParse(t *testing.T, name string) nn.ActivationType {
	t.Helper()
	typ, err := nn.ParseActivationType(name)
	require.NoError(t, err)
	return typ
}
