package nn

import (
	"gonum.org/v1/gonum/floats"
)

// GradientBuffer accumulates gradients for one layer without locking.
//
// Give each worker its own buffer, accumulate every example the worker
// handles, then fold the buffers into the layer with MergeGradients once the
// parallel phase is over. Workers never contend; the only synchronization is
// the merge.
type GradientBuffer struct {
	layer   *Layer
	weights []float64
	biases  []float64
}

// NewGradientBuffer returns a zeroed buffer shaped like l's accumulators.
func (l *Layer) NewGradientBuffer() *GradientBuffer {
	return &GradientBuffer{
		layer:   l,
		weights: make([]float64, len(l.weights)),
		biases:  make([]float64, len(l.biases)),
	}
}

// Accumulate adds the gradients of one example, exactly as
// Layer.UpdateGradients would.
func (g *GradientBuffer) Accumulate(trace *LearnTrace) {
	g.layer.checkTrace("GradientBuffer.Accumulate", trace)
	g.layer.accumulateWeights(g.weights, trace)
	floats.Add(g.biases, trace.NodeValues)
}

// WeightGradients returns the buffered weight gradients.
func (g *GradientBuffer) WeightGradients() []float64 { return g.weights }

// BiasGradients returns the buffered bias gradients.
func (g *GradientBuffer) BiasGradients() []float64 { return g.biases }

// Reset zeroes the buffer.
func (g *GradientBuffer) Reset() {
	clear(g.weights)
	clear(g.biases)
}

// MergeGradients adds g into the layer's accumulators and resets g. It may
// run concurrently with other merges and with UpdateGradients.
func (l *Layer) MergeGradients(g *GradientBuffer) {
	if g.layer != l {
		mustMatch("Layer.MergeGradients: buffer inputs", g.layer.fanIn, l.fanIn)
		mustMatch("Layer.MergeGradients: buffer outputs", g.layer.fanOut, l.fanOut)
	}

	l.muW.Lock()
	floats.Add(l.gradW, g.weights)
	l.muW.Unlock()

	l.muB.Lock()
	floats.Add(l.gradB, g.biases)
	l.muB.Unlock()

	g.Reset()
}
