package optim

import (
	"fmt"

	"github.com/nnvis/nnvis/internal/nn"
)

// SGD is gradient descent with momentum and L2 weight decay.
//
// Update rule, per layer (see nn.Layer.ApplyGradients):
//
//	velocity = momentum * velocity - lr * gradient
//	weight   = weight * (1 - regularization * lr) + velocity
//	bias     = bias + velocity
//
// Gradients are applied as accumulated. To average over a batch, divide the
// learning rate by the batch size.
type SGD struct {
	layers []*nn.Layer
	config SGDConfig
}

// SGDConfig holds configuration for SGD.
type SGDConfig struct {
	LearnRate      float64 // Learning rate (default: 0.05)
	Regularization float64 // L2 weight decay strength (default: 0)
	Momentum       float64 // Momentum factor (default: 0.9, range: [0, 1))
}

// DefaultSGDConfig returns the configuration used when nothing is tuned.
func DefaultSGDConfig() SGDConfig {
	return SGDConfig{
		LearnRate:      0.05,
		Regularization: 0,
		Momentum:       0.9,
	}
}

// Validate reports hyperparameters that cannot produce a stable update.
func (c SGDConfig) Validate() error {
	if c.LearnRate <= 0 {
		return fmt.Errorf("sgd: learn rate must be positive, got %v", c.LearnRate)
	}
	if c.Regularization < 0 {
		return fmt.Errorf("sgd: regularization must be non-negative, got %v", c.Regularization)
	}
	if c.Momentum < 0 || c.Momentum >= 1 {
		return fmt.Errorf("sgd: momentum must be in [0, 1), got %v", c.Momentum)
	}
	return nil
}

// NewSGD creates an SGD optimizer over layers.
//
// A zero LearnRate is replaced by the default.
func NewSGD(layers []*nn.Layer, config SGDConfig) *SGD {
	if config.LearnRate == 0 {
		config.LearnRate = DefaultSGDConfig().LearnRate
	}

	return &SGD{
		layers: layers,
		config: config,
	}
}

// Step applies every layer's accumulated gradients.
func (s *SGD) Step() {
	for _, l := range s.layers {
		l.ApplyGradients(s.config.LearnRate, s.config.Regularization, s.config.Momentum)
	}
}

// ZeroGrad discards every layer's accumulated gradients.
func (s *SGD) ZeroGrad() {
	for _, l := range s.layers {
		l.ZeroGradients()
	}
}

// LearnRate returns the current learning rate.
func (s *SGD) LearnRate() float64 {
	return s.config.LearnRate
}

// SetLearnRate changes the learning rate used by subsequent steps.
func (s *SGD) SetLearnRate(lr float64) {
	s.config.LearnRate = lr
}

// Config returns the current configuration.
func (s *SGD) Config() SGDConfig {
	return s.config
}

var _ Optimizer = (*SGD)(nil)
