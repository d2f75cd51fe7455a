package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Job is one scenario of a batch. Its System must not be shared with any
// other job.
type Job struct {
	Name   string
	System *System
	Config Config
}

// Batch runs independent scenarios side by side. Each job gets its own
// Simulator from newSim so metrics never see another job's world.
type Batch struct {
	newSim func() *Simulator
}

func NewBatch(newSim func() *Simulator) *Batch {
	return &Batch{newSim: newSim}
}

// Run returns one result per job in job order. Failed jobs keep whatever
// partial result they produced; their errors are joined.
func (b *Batch) Run(ctx context.Context, jobs []Job) ([]*Result, error) {
	results := make([]*Result, len(jobs))
	errs := make([]error, len(jobs))

	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(idx int, job Job) {
			defer wg.Done()
			res, err := b.newSim().Run(ctx, job.System, job.Config)
			results[idx] = res
			if err != nil {
				errs[idx] = fmt.Errorf("%s: %w", job.Name, err)
			}
		}(i, job)
	}

	wg.Wait()

	return results, errors.Join(errs...)
}
