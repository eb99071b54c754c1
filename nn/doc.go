// Copyright 2025 The nnvis Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the layer-level training core of nnvis.
//
// # Overview
//
// This package contains:
//   - Layer: dense layer with weights, biases, gradient accumulators and
//     momentum state
//   - LearnTrace: per-example scratch record used by backpropagation
//   - GradientBuffer: lock-free per-worker gradient accumulation
//   - Activations: Sigmoid, ReLU, Softmax
//   - Costs: MeanSquaredError, CrossEntropy
//
// There is no network type. The caller keeps an ordered slice of layers and
// drives them one example at a time, then applies the gradients once per
// batch.
//
// # Basic Usage
//
//	rng := rand.New(rand.NewSource(1))
//	layers := []*nn.Layer{nn.NewLayer(3, 4, rng), nn.NewLayer(4, 2, rng)}
//	traces := nn.NewLearnTraces(layers)
//
//	for _, ex := range batch {
//	    x := ex.Inputs
//	    for i, l := range layers {
//	        x = l.ForwardTrace(x, traces[i])
//	    }
//	    last := len(layers) - 1
//	    layers[last].CalculateOutputLayerNodeValues(traces[last], ex.Expected, nn.MeanSquaredError)
//	    for i := last - 1; i >= 0; i-- {
//	        layers[i].CalculateHiddenLayerNodeValues(traces[i], layers[i+1], traces[i+1].NodeValues)
//	    }
//	    for i, l := range layers {
//	        l.UpdateGradients(traces[i])
//	    }
//	}
//
//	for _, l := range layers {
//	    l.ApplyGradients(0.05, 0, 0.9)
//	}
//
// # Concurrency
//
// Examples of one batch may be processed in parallel as long as every
// goroutine uses its own traces. UpdateGradients locks the layer's
// accumulators; for large batches give each worker a GradientBuffer per
// layer and merge them with Layer.MergeGradients after the parallel phase.
// ApplyGradients must run after all workers have finished.
//
// # Errors
//
// Shape violations are programmer errors: the call panics with an error
// wrapping ErrDimensionMismatch.
package nn
