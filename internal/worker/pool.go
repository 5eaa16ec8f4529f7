// Package worker runs independent jobs over a bounded set of goroutines.
package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Task pairs an input with its outcome.
type Task[T any, R any] struct {
	Input  T
	Result R
	Err    error
}

// ProcessFunc handles one input. It must not share mutable state with other calls.
type ProcessFunc[T any, R any] func(ctx context.Context, input T) (R, error)

type Pool[T any, R any] struct {
	workers int
	process ProcessFunc[T, R]
}

func NewPool[T any, R any](workers int, fn ProcessFunc[T, R]) *Pool[T, R] {
	if workers < 1 {
		workers = 1
	}
	return &Pool[T, R]{
		workers: workers,
		process: fn,
	}
}

// Execute processes every input and returns the tasks in input order.
// Inputs not started before ctx is done carry ctx.Err().
func (p *Pool[T, R]) Execute(ctx context.Context, inputs []T) []Task[T, R] {
	results := make([]Task[T, R], len(inputs))
	for i, in := range inputs {
		results[i] = Task[T, R]{Input: in}
	}
	started := make([]bool, len(inputs))

	inputCh := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for idx := range inputCh {
				result, err := p.process(ctx, inputs[idx])
				results[idx].Result = result
				results[idx].Err = err
				if err != nil {
					log.Error().Err(err).Int("worker", workerID).Int("index", idx).Msg("Task failed")
				}
			}
		}(w)
	}

send:
	for i := range inputs {
		select {
		case <-ctx.Done():
			break send
		case inputCh <- i:
			started[i] = true
		}
	}
	close(inputCh)
	wg.Wait()

	for i := range results {
		if !started[i] {
			results[i].Err = ctx.Err()
		}
	}
	return results
}
