package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"

	"github.com/nnvis/nnvis/internal/nn"
	"github.com/nnvis/nnvis/internal/optim"
	"github.com/nnvis/nnvis/internal/parallel"
)

type example struct {
	inputs, expected []float64
}

// majority maps three binary inputs to (majority, not majority).
func majority() []example {
	var data []example
	for i := 0; i < 8; i++ {
		x := []float64{float64(i & 1), float64(i >> 1 & 1), float64(i >> 2 & 1)}
		y := []float64{0, 1}
		if x[0]+x[1]+x[2] >= 2 {
			y = []float64{1, 0}
		}
		data = append(data, example{inputs: x, expected: y})
	}
	return data
}

type trainer struct {
	layers []*nn.Layer
	cost   nn.Cost
	cfg    parallel.Config

	// Per worker: one trace and one gradient buffer per layer.
	traces  [][]*nn.LearnTrace
	buffers [][]*nn.GradientBuffer
}

func newTrainer(layers []*nn.Layer, cost nn.Cost, cfg parallel.Config, batchSize int) *trainer {
	workers := parallel.Workers(batchSize, cfg)
	t := &trainer{
		layers:  layers,
		cost:    cost,
		cfg:     cfg,
		traces:  make([][]*nn.LearnTrace, workers),
		buffers: make([][]*nn.GradientBuffer, workers),
	}
	for w := range workers {
		t.traces[w] = nn.NewLearnTraces(layers)
		t.buffers[w] = make([]*nn.GradientBuffer, len(layers))
		for i, l := range layers {
			t.buffers[w][i] = l.NewGradientBuffer()
		}
	}
	return t
}

// accumulate runs backpropagation for every example of batch in parallel and
// leaves the summed gradients in the layers.
func (t *trainer) accumulate(batch []example) {
	parallel.ForWorker(len(batch), func(w, i int) {
		traces, buffers := t.traces[w], t.buffers[w]

		x := batch[i].inputs
		for li, l := range t.layers {
			x = l.ForwardTrace(x, traces[li])
		}

		last := len(t.layers) - 1
		t.layers[last].CalculateOutputLayerNodeValues(traces[last], batch[i].expected, t.cost)
		for li := last - 1; li >= 0; li-- {
			t.layers[li].CalculateHiddenLayerNodeValues(traces[li], t.layers[li+1], traces[li+1].NodeValues)
		}

		for li := range t.layers {
			buffers[li].Accumulate(traces[li])
		}
	}, t.cfg)

	for _, buffers := range t.buffers {
		for li, l := range t.layers {
			l.MergeGradients(buffers[li])
		}
	}
}

func (t *trainer) meanCost(data []example) float64 {
	var total float64
	for _, ex := range data {
		x := ex.inputs
		for _, l := range t.layers {
			x = l.Forward(x)
		}
		total += t.cost.Value(x, ex.expected)
	}
	return total / float64(len(data))
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	epochs := fs.Int("epochs", 500, "Number of training epochs")
	lr := fs.Float64("lr", 0.1, "Learning rate (applied to the batch-averaged gradient)")
	momentum := fs.Float64("momentum", 0.9, "Momentum factor in [0, 1)")
	reg := fs.Float64("reg", 0, "L2 regularization strength")
	seed := fs.Int64("seed", 1, "Seed for weight initialization")
	workers := fs.Int("workers", 0, "Worker goroutines (0 = one per CPU)")
	hidden := fs.String("hidden", "sigmoid", "Hidden layer activation: sigmoid, relu or softmax")
	logEvery := fs.Int("log-every", 50, "Log the cost every N epochs")
	if err := fs.Parse(args); err != nil {
		return err
	}

	hiddenType, err := nn.ParseActivationType(*hidden)
	if err != nil {
		return err
	}

	data := majority()
	config := optim.SGDConfig{
		LearnRate:      *lr / float64(len(data)),
		Regularization: *reg,
		Momentum:       *momentum,
	}
	if err := config.Validate(); err != nil {
		return err
	}

	pcfg := parallel.DefaultConfig()
	pcfg.MinChunkSize = 1
	if *workers > 0 {
		pcfg.NumWorkers = *workers
		pcfg.Enabled = *workers > 1
	}

	rng := rand.New(rand.NewSource(*seed))
	layers := []*nn.Layer{nn.NewLayer(3, 4, rng), nn.NewLayer(4, 2, rng)}
	layers[0].SetActivation(nn.GetActivation(hiddenType))
	for i, l := range layers {
		l.SetStoredNumber(float64(i))
	}

	t := newTrainer(layers, nn.MeanSquaredError, pcfg, len(data))
	sgd := optim.NewSGD(layers, config)

	log.Printf("training 3-%d-2 network (%s hidden) on %d examples with %d workers",
		layers[0].FanOut(), layers[0].Activation(), len(data), len(t.traces))

	for epoch := 1; epoch <= *epochs; epoch++ {
		t.accumulate(data)
		sgd.Step()

		if epoch%*logEvery == 0 || epoch == *epochs {
			log.Printf("epoch %4d  cost %.6f", epoch, t.meanCost(data))
		}
	}

	for _, ex := range data {
		x := ex.inputs
		for _, l := range layers {
			x = l.Forward(x)
		}
		fmt.Printf("%v -> [%.3f %.3f] want %v\n", ex.inputs, x[0], x[1], ex.expected)
	}
	return nil
}
