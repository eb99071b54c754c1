package nn

// LearnTrace is the scratch record of one layer for one training example.
//
// It keeps the transient values backpropagation needs (inputs,
// pre-activations, activations and node values) out of the Layer, so many
// examples can run through the same layer concurrently as long as each has
// its own trace. A trace may be reused for the next example: ForwardTrace
// overwrites it.
type LearnTrace struct {
	// Inputs aliases the slice passed to ForwardTrace.
	Inputs []float64
	// PreActivations holds bias + weighted sum per output node.
	PreActivations []float64
	// Activations holds the activation of each output node.
	Activations []float64
	// NodeValues holds ∂Cost/∂preActivation per output node.
	NodeValues []float64
}

// NewLearnTrace allocates a trace sized for l.
func NewLearnTrace(l *Layer) *LearnTrace {
	t := &LearnTrace{}
	t.resize(l.fanOut)
	return t
}

// NewLearnTraces allocates one trace per layer, in order.
func NewLearnTraces(layers []*Layer) []*LearnTrace {
	traces := make([]*LearnTrace, len(layers))
	for i, l := range layers {
		traces[i] = NewLearnTrace(l)
	}
	return traces
}

// Reset drops the input reference and zeroes every buffer.
func (t *LearnTrace) Reset() {
	t.Inputs = nil
	clear(t.PreActivations)
	clear(t.Activations)
	clear(t.NodeValues)
}

// resize makes sure the per-node buffers hold n values, reallocating only
// when the size changes.
func (t *LearnTrace) resize(n int) {
	if len(t.PreActivations) != n {
		t.PreActivations = make([]float64, n)
	}
	if len(t.Activations) != n {
		t.Activations = make([]float64, n)
	}
	if len(t.NodeValues) != n {
		t.NodeValues = make([]float64, n)
	}
}
