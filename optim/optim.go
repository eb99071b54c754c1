// Copyright 2025 The nnvis Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/nnvis/nnvis/internal/nn"
	"github.com/nnvis/nnvis/internal/optim"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// SGD is gradient descent with momentum and L2 weight decay.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD.
type SGDConfig = optim.SGDConfig

// DefaultSGDConfig returns the default SGD configuration.
func DefaultSGDConfig() SGDConfig {
	return optim.DefaultSGDConfig()
}

// NewSGD creates a new SGD optimizer over layers.
//
// Example:
//
//	optimizer := optim.NewSGD(layers, optim.SGDConfig{
//	    LearnRate: 0.05,
//	    Momentum:  0.9,
//	})
func NewSGD(layers []*nn.Layer, config SGDConfig) *SGD {
	return optim.NewSGD(layers, config)
}
