package pipeline

import (
	"context"
	"sync"
)

// runWorkers fans fn out over n items through at most workers goroutines.
// Each item's error lands at its own index in the returned slice. Dispatch
// stops once ctx is cancelled; items never dispatched carry ctx.Err(), and
// items already running finish.
func runWorkers(ctx context.Context, workers, n int, fn func(i int) error) []error {
	if workers < 1 {
		workers = 1
	}

	errs := make([]error, n)
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			errs[i] = err
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() {
				<-sem
				wg.Done()
			}()
			errs[i] = fn(i)
		}(i)
	}

	wg.Wait()
	return errs
}
