// Copyright 2025 The nnvis Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/nnvis/nnvis/internal/nn"
)

// Layer is a dense layer followed by an activation function.
type Layer = nn.Layer

// NewLayer creates a layer with fanIn inputs and fanOut outputs, weights
// drawn from rng and the Sigmoid activation.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	hidden := nn.NewLayer(3, 4, rng)
//	hidden.SetActivation(nn.ReLU)
func NewLayer(fanIn, fanOut int, rng Float64Source) *Layer {
	return nn.NewLayer(fanIn, fanOut, rng)
}

// Float64Source is a uniform random source on [0, 1).
type Float64Source = nn.Float64Source

// RandomNormal returns a sample from N(mean, stdDev²) using the Box-Muller
// transform.
func RandomNormal(rng Float64Source, mean, stdDev float64) float64 {
	return nn.RandomNormal(rng, mean, stdDev)
}

// LearnTrace is the per-example scratch record of one layer.
type LearnTrace = nn.LearnTrace

// NewLearnTrace allocates a trace sized for l.
func NewLearnTrace(l *Layer) *LearnTrace {
	return nn.NewLearnTrace(l)
}

// NewLearnTraces allocates one trace per layer.
func NewLearnTraces(layers []*Layer) []*LearnTrace {
	return nn.NewLearnTraces(layers)
}

// GradientBuffer accumulates one layer's gradients for a single worker.
type GradientBuffer = nn.GradientBuffer

// Activations

// ActivationType identifies an activation function.
type ActivationType = nn.ActivationType

// Activation types.
const (
	ActivationSigmoid = nn.ActivationSigmoid
	ActivationReLU    = nn.ActivationReLU
	ActivationSoftmax = nn.ActivationSoftmax
)

// Activation is an activation function.
type Activation = nn.Activation

// Predefined activations.
var (
	Sigmoid = nn.Sigmoid
	ReLU    = nn.ReLU
	Softmax = nn.Softmax
)

// GetActivation returns the activation for t, falling back to Sigmoid.
func GetActivation(t ActivationType) Activation {
	return nn.GetActivation(t)
}

// ParseActivationType maps "relu", "sigmoid" or "softmax" to its type.
func ParseActivationType(name string) (ActivationType, error) {
	return nn.ParseActivationType(name)
}

// Costs

// Cost is a cost function.
type Cost = nn.Cost

// Cost functions.
const (
	MeanSquaredError = nn.MeanSquaredError
	CrossEntropy     = nn.CrossEntropy
)

// Errors

// ErrDimensionMismatch is wrapped by every shape violation.
var ErrDimensionMismatch = nn.ErrDimensionMismatch

// CheckDimensions returns an error wrapping ErrDimensionMismatch when
// got != want.
func CheckDimensions(op string, got, want int) error {
	return nn.CheckDimensions(op, got, want)
}
