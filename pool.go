package dotfactory

import (
	"context"
	"sync"
)

// forEach calls fn(i) for every i in [0, n) on up to workers goroutines.
// Worker w handles indices w, w+workers, w+2*workers and so on, so
// results written by index need no locking. The context is checked
// before each call. The error returned is the one of the lowest index,
// which keeps failures reproducible whatever the scheduling.
func forEach(ctx context.Context, n, workers int, fn func(i int) error) error {
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	errs := make([]error, n)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(start int) {
			defer wg.Done()
			for i := start; i < n; i += workers {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					continue
				}
				errs[i] = fn(i)
			}
		}(w)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
