package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnvis/nnvis/internal/nn"
	"github.com/nnvis/nnvis/internal/optim"
	"github.com/nnvis/nnvis/internal/parallel"
)

// trainingSet is a fixed 3-input, 2-output dataset: the first output is
// "majority of inputs set", the second its complement.
var trainingSet = []sample{
	{x: []float64{0, 0, 0}, y: []float64{0, 1}},
	{x: []float64{0, 0, 1}, y: []float64{0, 1}},
	{x: []float64{0, 1, 0}, y: []float64{0, 1}},
	{x: []float64{1, 0, 0}, y: []float64{0, 1}},
	{x: []float64{0, 1, 1}, y: []float64{1, 0}},
	{x: []float64{1, 0, 1}, y: []float64{1, 0}},
	{x: []float64{1, 1, 0}, y: []float64{1, 0}},
	{x: []float64{1, 1, 1}, y: []float64{1, 0}},
}

func TestTraining_CostDecreasesMonotonically(t *testing.T) {
	const epochs = 300
	learnRate := 0.1

	net := newNetwork(1, 3, 4, 2)
	traces := nn.NewLearnTraces(net)

	prev := net.cost(trainingSet, nn.MeanSquaredError)
	initial := prev
	for epoch := 0; epoch < epochs; epoch++ {
		for _, s := range trainingSet {
			net.learn(traces, s, nn.MeanSquaredError)
		}
		// Full batch, averaged over the examples.
		net.apply(learnRate/float64(len(trainingSet)), 0, 0)

		cost := net.cost(trainingSet, nn.MeanSquaredError)
		require.LessOrEqual(t, cost, prev+1e-12, "epoch %d", epoch)
		prev = cost
	}

	assert.Less(t, prev, initial)
}

func TestTraining_ParallelWithOptimizerLearns(t *testing.T) {
	net := newNetwork(3, 3, 6, 2)
	net[0].SetActivation(nn.ReLU)

	sgd := optim.NewSGD(net, optim.SGDConfig{
		LearnRate: 0.5 / float64(len(trainingSet)),
		Momentum:  0.9,
	})
	require.NoError(t, sgd.Config().Validate())

	cfg := parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}
	workers := parallel.Workers(len(trainingSet), cfg)
	workerTraces := make([][]*nn.LearnTrace, workers)
	for w := range workerTraces {
		workerTraces[w] = nn.NewLearnTraces(net)
	}

	initial := net.cost(trainingSet, nn.MeanSquaredError)
	for epoch := 0; epoch < 2000; epoch++ {
		parallel.ForWorker(len(trainingSet), func(w, i int) {
			net.learn(workerTraces[w], trainingSet[i], nn.MeanSquaredError)
		}, cfg)
		sgd.Step()
	}
	final := net.cost(trainingSet, nn.MeanSquaredError)

	assert.Less(t, final, initial/4)
	for _, s := range trainingSet {
		out := net.predict(s.x)
		if s.y[0] == 1 {
			assert.Greater(t, out[0], out[1], "inputs %v", s.x)
		} else {
			assert.Less(t, out[0], out[1], "inputs %v", s.x)
		}
	}
}

func TestTraining_SoftmaxOutputStaysNormalized(t *testing.T) {
	net := newNetwork(4, 3, 4, 2)
	net[1].SetActivation(nn.Softmax)
	traces := nn.NewLearnTraces(net)

	for epoch := 0; epoch < 50; epoch++ {
		for _, s := range trainingSet {
			net.learn(traces, s, nn.MeanSquaredError)
		}
		net.apply(0.1, 0.001, 0.5)
	}

	for _, s := range trainingSet {
		out := net.predict(s.x)
		assert.InDelta(t, 1.0, out[0]+out[1], 1e-9)
	}
}
