package nn

import (
	"math"
)

// Float64Source is a uniform random source on [0, 1). Both *math/rand.Rand
// and *math/rand/v2.Rand satisfy it.
type Float64Source interface {
	Float64() float64
}

// InitializeRandomWeights draws every weight from N(0, 1) scaled by
// 1/sqrt(fanIn) and sets every bias to zero.
//
// Samples are consumed from rng in weight order, two uniforms per weight,
// so a source seeded the same way always yields the same weights.
func (l *Layer) InitializeRandomWeights(rng Float64Source) {
	scale := 1 / math.Sqrt(float64(l.fanIn))
	for i := range l.weights {
		l.weights[i] = RandomNormal(rng, 0, 1) * scale
	}
	clear(l.biases)
}

// RandomNormal returns a sample from N(mean, stdDev²) using the Box-Muller
// transform.
func RandomNormal(rng Float64Source, mean, stdDev float64) float64 {
	// Map [0, 1) to (0, 1] so the logarithm stays finite.
	x1 := 1 - rng.Float64()
	x2 := 1 - rng.Float64()

	y := math.Sqrt(-2.0*math.Log(x1)) * math.Cos(2.0*math.Pi*x2)
	return y*stdDev + mean
}
