// Package pipeline fans independent jobs out over a bounded set of workers.
package pipeline

import (
	"runtime"
	"sync"

	"ai_text_analyzer/internal/chunk"
)

// Task processes job i. Jobs must not depend on each other.
type Task func(i int) error

// Run calls fn for every index in [0, n) on up to workers goroutines and
// returns the errors in completion order. workers <= 0 means one per CPU.
func Run(n, workers int, fn Task) []error {
	if n <= 0 || fn == nil {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers < 1 {
			workers = 1
		}
	}
	if workers > n {
		workers = n
	}

	jobs := make(chan int)
	errs := make(chan error, n)
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := fn(i); err != nil {
					errs <- err
				}
			}
		}()
	}

	for i := range n {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	close(errs)

	out := make([]error, 0, len(errs))
	for err := range errs {
		out = append(out, err)
	}
	return out
}

// AnalyzeWindows runs fn over every window.
func AnalyzeWindows(windows []chunk.Window, workers int, fn func(chunk.Window) error) []error {
	if fn == nil {
		return nil
	}
	return Run(len(windows), workers, func(i int) error {
		return fn(windows[i])
	})
}
