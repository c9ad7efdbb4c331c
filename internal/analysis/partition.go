package analysis

import (
	"sync"

	"github.com/stacklens/stacklens/internal/domain"
)

// mapChunks splits the thread slice into at most workers contiguous chunks,
// runs fn on each chunk concurrently, and returns the partial results in
// chunk order. Keeping the merge order fixed makes aggregation results
// identical for any worker count, so callers reduce the partials
// sequentially with an associative combine.
func mapChunks[R any](threads []domain.Thread, workers int, fn func([]domain.Thread) R) []R {
	if workers <= 1 || len(threads) <= 1 {
		if len(threads) == 0 {
			return nil
		}
		return []R{fn(threads)}
	}
	if workers > len(threads) {
		workers = len(threads)
	}

	chunkSize := (len(threads) + workers - 1) / workers
	var bounds [][2]int
	for start := 0; start < len(threads); start += chunkSize {
		end := start + chunkSize
		if end > len(threads) {
			end = len(threads)
		}
		bounds = append(bounds, [2]int{start, end})
	}

	results := make([]R, len(bounds))
	var wg sync.WaitGroup
	for i, b := range bounds {
		wg.Add(1)
		go func(i int, b [2]int) {
			defer wg.Done()
			results[i] = fn(threads[b[0]:b[1]])
		}(i, b)
	}
	wg.Wait()

	return results
}
