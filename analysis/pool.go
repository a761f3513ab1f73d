package analysis

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// DefaultWorkers is the pool size used when Options.Workers is not positive.
const DefaultWorkers = 4

// Pool bounds the number of estimators running at once. A single Pool is
// shared by every request of an Engine, so concurrent requests queue for
// the same slots instead of oversubscribing the CPU.
type Pool struct {
	sem  *semaphore.Weighted
	size int
}

// NewPool creates a pool with the given number of slots.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = DefaultWorkers
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size)), size: size}
}

// Size returns the number of slots.
func (p *Pool) Size() int {
	return p.size
}

// Run executes the tasks on the pool and waits for all of them. It returns
// the first non-nil task error. Tasks are never cancelled once started.
func (p *Pool) Run(tasks ...func() error) error {
	var g errgroup.Group
	for _, task := range tasks {
		g.Go(func() error {
			if err := p.sem.Acquire(context.Background(), 1); err != nil {
				return err
			}
			defer p.sem.Release(1)
			return task()
		})
	}
	return g.Wait()
}
