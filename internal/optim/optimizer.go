// Package optim applies accumulated gradients to layers.
//
// Layers own their parameters, momentum state and update rule; an optimizer
// only holds the hyperparameters and the set of layers it drives, so the
// training loop ends every batch with a single Step call.
//
// Example usage:
//
//	sgd := optim.NewSGD(layers, optim.SGDConfig{
//	    LearnRate: 0.05,
//	    Momentum:  0.9,
//	})
//
//	for epoch := range epochs {
//	    for _, batch := range batches {
//	        accumulate(layers, batch) // UpdateGradients per example
//	        sgd.Step()
//	    }
//	}
package optim

// Optimizer is the interface shared by optimizers.
type Optimizer interface {
	// Step applies the accumulated gradients of every layer and resets the
	// accumulators.
	Step()

	// ZeroGrad discards accumulated gradients without updating parameters.
	ZeroGrad()

	// LearnRate returns the current learning rate.
	LearnRate() float64
}
