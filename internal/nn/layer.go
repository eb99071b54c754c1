// Package nn implements the training core of a feed-forward network at the
// level of a single layer: activations, costs, the dense Layer with its
// gradient accumulators and momentum state, and the per-example LearnTrace.
//
// Chaining layers into a network is left to the caller; see the package
// example in github.com/nnvis/nnvis/nn.
package nn

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"gonum.org/v1/gonum/floats"
)

// Layer is a dense layer followed by an activation function.
//
// Computes: out[o] = activation(bias[o] + Σ_i in[i] * weight(i, o))
//
// Weights are stored flat, row-major by output node:
// weights[out*fanIn + in]. Row o is therefore the contiguous slice of the
// weights feeding output node o.
//
// Training runs in two phases per batch:
//   - accumulate: ForwardTrace, the node value calculations and
//     UpdateGradients (or a GradientBuffer) for every example, possibly
//     from many goroutines, each with its own LearnTrace;
//   - update: a single ApplyGradients call.
//
// The caller must not overlap the phases on the same layer.
//
// Example:
//
//	rng := rand.New(rand.NewSource(1))
//	hidden := nn.NewLayer(3, 4, rng)
//	output := nn.NewLayer(4, 2, rng)
//
//	th, to := nn.NewLearnTrace(hidden), nn.NewLearnTrace(output)
//	output.ForwardTrace(hidden.ForwardTrace(x, th), to)
//	output.CalculateOutputLayerNodeValues(to, y, nn.MeanSquaredError)
//	hidden.CalculateHiddenLayerNodeValues(th, output, to.NodeValues)
//	output.UpdateGradients(to)
//	hidden.UpdateGradients(th)
//
//	output.ApplyGradients(0.1, 0, 0.9)
//	hidden.ApplyGradients(0.1, 0, 0.9)
type Layer struct {
	fanIn  int
	fanOut int

	weights []float64 // [fanOut * fanIn]
	biases  []float64 // [fanOut]

	// Gradient accumulators, guarded separately so weight and bias
	// accumulation from different examples can proceed in parallel.
	muW   sync.Mutex
	gradW []float64
	muB   sync.Mutex
	gradB []float64

	velocityW []float64
	velocityB []float64

	activation Activation

	// stored is the editing UI's per-layer number. It takes no part in
	// training.
	stored atomic.Float64
}

// NewLayer creates a layer with fanIn inputs and fanOut outputs.
//
// The activation defaults to Sigmoid. Weights are drawn from rng with
// InitializeRandomWeights, biases start at zero.
func NewLayer(fanIn, fanOut int, rng Float64Source) *Layer {
	if fanIn <= 0 || fanOut <= 0 {
		panic(errors.Wrapf(ErrDimensionMismatch, "NewLayer: sizes must be positive, got %dx%d", fanIn, fanOut))
	}

	n := fanIn * fanOut
	l := &Layer{
		fanIn:      fanIn,
		fanOut:     fanOut,
		weights:    make([]float64, n),
		biases:     make([]float64, fanOut),
		gradW:      make([]float64, n),
		gradB:      make([]float64, fanOut),
		velocityW:  make([]float64, n),
		velocityB:  make([]float64, fanOut),
		activation: Sigmoid,
	}
	l.InitializeRandomWeights(rng)
	return l
}

// FanIn returns the number of input nodes.
func (l *Layer) FanIn() int { return l.fanIn }

// FanOut returns the number of output nodes.
func (l *Layer) FanOut() int { return l.fanOut }

// Weights returns the backing weight slice, indexed by FlatWeightIndex.
func (l *Layer) Weights() []float64 { return l.weights }

// Biases returns the backing bias slice.
func (l *Layer) Biases() []float64 { return l.biases }

// WeightGradients returns the accumulated weight gradients.
func (l *Layer) WeightGradients() []float64 { return l.gradW }

// BiasGradients returns the accumulated bias gradients.
func (l *Layer) BiasGradients() []float64 { return l.gradB }

// WeightVelocities returns the momentum state of the weights.
func (l *Layer) WeightVelocities() []float64 { return l.velocityW }

// BiasVelocities returns the momentum state of the biases.
func (l *Layer) BiasVelocities() []float64 { return l.velocityB }

// Activation returns the activation in effect.
func (l *Layer) Activation() Activation { return l.activation }

// SetActivation swaps the activation. It takes effect on the next forward
// or backward call.
func (l *Layer) SetActivation(a Activation) { l.activation = a }

// StoredNumber returns the number attached to this layer by the editing UI.
func (l *Layer) StoredNumber() float64 { return l.stored.Load() }

// SetStoredNumber attaches a number to this layer for the editing UI. It
// never affects weights, biases or gradients, and may be called while
// training runs.
func (l *Layer) SetStoredNumber(v float64) { l.stored.Store(v) }

// FlatWeightIndex returns the position of weight(in, out) in Weights.
func (l *Layer) FlatWeightIndex(in, out int) int {
	return out*l.fanIn + in
}

// Weight returns the weight connecting input node in to output node out.
func (l *Layer) Weight(in, out int) float64 {
	return l.weights[l.FlatWeightIndex(in, out)]
}

// row returns the weights feeding output node o.
func (l *Layer) row(w []float64, o int) []float64 {
	return w[o*l.fanIn : (o+1)*l.fanIn]
}

// Forward computes the layer's activations for inputs without touching any
// layer or trace state.
func (l *Layer) Forward(inputs []float64) []float64 {
	mustMatch("Layer.Forward: inputs", len(inputs), l.fanIn)

	pre := make([]float64, l.fanOut)
	l.weightedInputs(inputs, pre)

	out := make([]float64, l.fanOut)
	l.activation.ActivateAll(pre, out)
	return out
}

// ForwardTrace computes the same result as Forward and records inputs,
// pre-activations and activations in trace for backpropagation.
//
// The returned slice is trace.Activations; it is overwritten the next time
// trace is used.
func (l *Layer) ForwardTrace(inputs []float64, trace *LearnTrace) []float64 {
	mustMatch("Layer.ForwardTrace: inputs", len(inputs), l.fanIn)

	trace.resize(l.fanOut)
	trace.Inputs = inputs
	l.weightedInputs(inputs, trace.PreActivations)
	l.activation.ActivateAll(trace.PreActivations, trace.Activations)
	return trace.Activations
}

func (l *Layer) weightedInputs(inputs, pre []float64) {
	for o := range pre {
		pre[o] = l.biases[o] + floats.Dot(inputs, l.row(l.weights, o))
	}
}

// CalculateOutputLayerNodeValues seeds backpropagation at the output layer:
//
//	nodeValues[o] = cost'(activation[o], expected[o]) * activation'(pre, o)
//
// trace must come from a ForwardTrace call on this layer.
func (l *Layer) CalculateOutputLayerNodeValues(trace *LearnTrace, expected []float64, cost Cost) {
	mustMatch("Layer.CalculateOutputLayerNodeValues: expected outputs", len(expected), l.fanOut)

	for o := range trace.NodeValues {
		costDerivative := cost.Derivative(trace.Activations[o], expected[o])
		activationDerivative := l.activation.Derivative(trace.PreActivations, o)
		trace.NodeValues[o] = costDerivative * activationDerivative
	}
}

// CalculateHiddenLayerNodeValues propagates node values back from next, the
// layer that consumes this layer's activations:
//
//	nodeValues[o] = (Σ_k next.Weight(o, k) * nextNodeValues[k]) * activation'(pre, o)
func (l *Layer) CalculateHiddenLayerNodeValues(trace *LearnTrace, next *Layer, nextNodeValues []float64) {
	mustMatch("Layer.CalculateHiddenLayerNodeValues: next layer inputs", next.fanIn, l.fanOut)
	mustMatch("Layer.CalculateHiddenLayerNodeValues: next node values", len(nextNodeValues), next.fanOut)

	for o := 0; o < l.fanOut; o++ {
		var nodeValue float64
		for k, nextValue := range nextNodeValues {
			nodeValue += next.Weight(o, k) * nextValue
		}
		trace.NodeValues[o] = nodeValue * l.activation.Derivative(trace.PreActivations, o)
	}
}

// UpdateGradients adds the gradients of one example to the layer's
// accumulators:
//
//	gradW[idx(i, o)] += inputs[i] * nodeValues[o]
//	gradB[o]         += nodeValues[o]
//
// Safe for concurrent use by goroutines holding different traces.
func (l *Layer) UpdateGradients(trace *LearnTrace) {
	l.checkTrace("Layer.UpdateGradients", trace)

	l.muW.Lock()
	l.accumulateWeights(l.gradW, trace)
	l.muW.Unlock()

	l.muB.Lock()
	floats.Add(l.gradB, trace.NodeValues)
	l.muB.Unlock()
}

func (l *Layer) accumulateWeights(gradW []float64, trace *LearnTrace) {
	for o, nodeValue := range trace.NodeValues {
		floats.AddScaled(l.row(gradW, o), nodeValue, trace.Inputs)
	}
}

func (l *Layer) checkTrace(op string, trace *LearnTrace) {
	mustMatch(op+": trace inputs", len(trace.Inputs), l.fanIn)
	mustMatch(op+": trace node values", len(trace.NodeValues), l.fanOut)
}

// ApplyGradients performs one gradient descent step with momentum and L2
// weight decay, then zeroes the accumulators:
//
//	velocity = velocity*momentum - grad*learnRate
//	weight   = weight*(1 - regularization*learnRate) + velocity
//	bias     = bias + velocity
//
// Biases are not decayed. Call once per batch, after every example of the
// batch has been accumulated.
func (l *Layer) ApplyGradients(learnRate, regularization, momentum float64) {
	decay := 1 - regularization*learnRate

	floats.Scale(momentum, l.velocityW)
	floats.AddScaled(l.velocityW, -learnRate, l.gradW)
	floats.Scale(decay, l.weights)
	floats.Add(l.weights, l.velocityW)
	clear(l.gradW)

	floats.Scale(momentum, l.velocityB)
	floats.AddScaled(l.velocityB, -learnRate, l.gradB)
	floats.Add(l.biases, l.velocityB)
	clear(l.gradB)
}

// ZeroGradients discards the accumulated gradients without updating any
// parameter.
func (l *Layer) ZeroGradients() {
	l.muW.Lock()
	clear(l.gradW)
	l.muW.Unlock()

	l.muB.Lock()
	clear(l.gradB)
	l.muB.Unlock()
}
