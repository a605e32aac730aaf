package battlelog

import (
	"context"
	"runtime"
	"sync"
)

// maxDefaultWorkers caps the CPU-derived worker count; log reading is I/O bound.
const maxDefaultWorkers = 8

// ReadFunc reads a single log file. ok is false when the file is absent or invalid.
type ReadFunc func(path string) (record MatchRecord, ok bool)

// ReadParallel reads paths with at most workers concurrent reads, keeping
// only the records readFn reports as present. workers <= 0 uses
// DefaultWorkers. Once ctx is done no further files are read and the
// records gathered so far are returned; callers check ctx.Err.
func ReadParallel(ctx context.Context, paths []string, workers int, readFn ReadFunc) []MatchRecord {
	if len(paths) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	workers = min(workers, len(paths))

	jobs := make(chan string)
	found := make(chan MatchRecord, len(paths))

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for path := range jobs {
				if ctx.Err() != nil {
					continue
				}
				if record, ok := readFn(path); ok {
					found <- record
				}
			}
		}()
	}

dispatch:
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		select {
		case jobs <- path:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()
	close(found)

	var records []MatchRecord
	for record := range found {
		records = append(records, record)
	}
	return records
}

// DefaultWorkers is the worker count used when none is configured: the CPU
// count, capped. Explicit counts come from the run configuration.
func DefaultWorkers() int {
	return min(runtime.NumCPU(), maxDefaultWorkers)
}
