package reconcile

import (
	"errors"
	"runtime"
	"sync"

	"conveyorhub/pkg/models"
)

// ErrNoExpectedData distinguishes "no manifest to check against" from a
// fully-matched manifest, which yields an empty missing list instead.
var ErrNoExpectedData = errors.New("no expected data available")

// FindMissing returns every expected pair with no exact match among the
// actual scanned pairs. The expected set is partitioned across workers;
// each worker probes the shared actual set read-only and collects misses
// into its own slice, so no locking is needed after the split. Result
// order across partitions is unspecified.
func FindMissing(expected []models.Pair, actual map[models.Pair]struct{}) ([]models.Pair, error) {
	return findMissing(expected, actual, runtime.NumCPU())
}

func findMissing(expected []models.Pair, actual map[models.Pair]struct{}, workers int) ([]models.Pair, error) {
	if len(expected) == 0 {
		return nil, ErrNoExpectedData
	}

	if workers > len(expected) {
		workers = len(expected)
	}
	if workers < 1 {
		workers = 1
	}

	// walk by chunk rather than by worker index: when len(expected) is not
	// a multiple of the chunk size the trailing partition is short, and a
	// per-worker start could land past the end of the slice
	chunk := (len(expected) + workers - 1) / workers
	parts := make([][]models.Pair, (len(expected)+chunk-1)/chunk)
	var wg sync.WaitGroup

	w := 0
	for start := 0; start < len(expected); start += chunk {
		end := start + chunk
		if end > len(expected) {
			end = len(expected)
		}

		wg.Add(1)
		go func(w int, part []models.Pair) {
			defer wg.Done()
			var missing []models.Pair
			for _, p := range part {
				if _, ok := actual[p]; !ok {
					missing = append(missing, p)
				}
			}
			parts[w] = missing
		}(w, expected[start:end])
		w++
	}
	wg.Wait()

	missing := make([]models.Pair, 0, len(expected))
	for _, part := range parts {
		missing = append(missing, part...)
	}
	return missing, nil
}
