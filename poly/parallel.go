package poly

import (
	"fmt"
	"sync"
)

// runParallel calls task(i) for every i in [0, n) on a pool of workers goroutines.
// Each task must only write to memory owned by its index.
func runParallel(n, workers int, task func(i int)) {

	if workers < 1 {
		panic(fmt.Errorf("cannot runParallel: number of workers must be positive"))
	}

	if workers == 1 || n < 2 {
		for i := 0; i < n; i++ {
			task(i)
		}
		return
	}

	tasks := make(chan int)
	pool := &sync.WaitGroup{}
	pool.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			for i := range tasks {
				task(i)
			}
			pool.Done()
		}()
	}

	for i := 0; i < n; i++ {
		tasks <- i
	}

	close(tasks)
	pool.Wait()
}

func checkWorkers(op string, workers int) {
	if workers < 1 {
		panic(fmt.Errorf("cannot %s: number of workers must be positive", op))
	}
}
