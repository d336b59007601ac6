package database

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/climforge/forcingval/internal/cvs"
	"github.com/climforge/forcingval/internal/dataset"
	"github.com/climforge/forcingval/internal/inference"
)

// FileResult is the outcome of one per-file task. A batch never fails
// as a whole: one bad file yields one FileResult with Err set and the
// rest of the batch proceeds.
type FileResult struct {
	Path  string
	Entry *Entry
	Err   error
}

// runParallel fans fn out over the paths with nWorkers goroutines.
// Results come back indexed by input position regardless of completion
// order; nothing is surfaced until every task has finished. The CV
// store and the loader are the only values shared across tasks and
// both are read-only by contract.
func runParallel(
	ctx context.Context,
	paths []string,
	nWorkers int,
	fn func(ctx context.Context, path string) (*Entry, error),
) []FileResult {
	if nWorkers < 1 {
		nWorkers = 1
	}

	results := make([]FileResult, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < nWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				entry, err := fn(ctx, paths[i])
				results[i] = FileResult{Path: paths[i], Entry: entry, Err: err}
			}
		}()
	}

	for i := range paths {
		select {
		case <-ctx.Done():
			// Unfilled results carry the cancellation cause.
			close(jobs)
			wg.Wait()
			for j := range results {
				if results[j].Path == "" {
					results[j] = FileResult{Path: paths[j], Err: ctx.Err()}
				}
			}
			return results
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	return results
}

// CreateEntries builds one database entry per file, fanning the work
// out across nWorkers tasks.
func CreateEntries(
	ctx context.Context,
	loader dataset.Loader,
	paths []string,
	store *cvs.CVs,
	freqKeys inference.FrequencyMetadataKeys,
	timeDimension string,
	nWorkers int,
) []FileResult {
	log.Info().Int("files", len(paths)).Int("workers", nWorkers).Msg("creating database entries")
	return runParallel(ctx, paths, nWorkers, func(ctx context.Context, path string) (*Entry, error) {
		ds, err := loader.LoadDataset(ctx, path)
		if err != nil {
			return nil, err
		}
		return EntryFromDataset(ds, path, store, freqKeys, timeDimension)
	})
}
