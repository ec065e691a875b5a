package trace

import (
	"context"
	"runtime"
	"sync"
)

// Job is one Generate call in a batch.
type Job struct {
	Algorithm string
	Input     []float64
	Target    *float64
}

// GenerateAll materializes every job concurrently. Results are in job order.
// Jobs not started before ctx is cancelled are skipped and ctx.Err is returned.
func (g *Generator) GenerateAll(ctx context.Context, jobs []Job) ([]*Trace, error) {
	results := make([]*Trace, len(jobs))
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))

	var wg sync.WaitGroup
	for i := range jobs {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()
			j := jobs[idx]
			results[idx] = g.Generate(j.Algorithm, j.Input, j.Target)
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
