// Package parallel provides parallel execution utilities for training loops.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 4, // A training example is already a sizeable unit of work.
	}
}

// Workers returns how many workers For and ForWorker use for n items.
// It is at least 1.
func Workers(n int, cfg Config) int {
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n < 2*max(cfg.MinChunkSize, 1) {
		return 1
	}
	chunk := chunkSize(n, cfg)
	return (n + chunk - 1) / chunk
}

func chunkSize(n int, cfg Config) int {
	return max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1)
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	ForWorker(n, func(_, i int) { f(i) }, cfg)
}

// ForWorker executes f(worker, i) for i in [0, n). Each goroutine gets a
// distinct worker index in [0, Workers(n, cfg)), so f may use per-worker
// state (scratch traces, gradient buffers) without locking. Returns the
// number of workers used.
func ForWorker(n int, f func(worker, i int), cfg Config) int {
	workers := Workers(n, cfg)
	if workers == 1 {
		// Sequential fallback.
		for i := 0; i < n; i++ {
			f(0, i)
		}
		return 1
	}

	var wg sync.WaitGroup
	chunk := chunkSize(n, cfg)

	for w := 0; w < workers; w++ {
		start := w * chunk
		end := min(start+chunk, n)
		wg.Add(1)
		go func(w, s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(w, i)
			}
		}(w, start, end)
	}
	wg.Wait()

	return workers
}
