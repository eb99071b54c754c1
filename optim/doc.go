// Copyright 2025 The nnvis Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim applies accumulated layer gradients once per batch.
//
// # Basic Usage
//
//	import (
//	    "github.com/nnvis/nnvis/nn"
//	    "github.com/nnvis/nnvis/optim"
//	)
//
//	func main() {
//	    rng := rand.New(rand.NewSource(1))
//	    layers := []*nn.Layer{nn.NewLayer(3, 4, rng), nn.NewLayer(4, 2, rng)}
//
//	    sgd := optim.NewSGD(layers, optim.SGDConfig{
//	        LearnRate:      0.05,
//	        Regularization: 0.001,
//	        Momentum:       0.9,
//	    })
//
//	    for epoch := range epochs {
//	        // accumulate gradients for every example of the batch
//	        sgd.Step()
//	    }
//	}
package optim
