package tarn

import "sync"

// TaskGroup collects tasks submitted incrementally to one pool and waits for
// them as a unit, returning results in group submission order.
type TaskGroup[R any] struct {
	pool    *Pool[R]
	mutex   sync.Mutex
	futures []*Future[R]
}

// Group creates an empty task group bound to this pool.
func (p *Pool[R]) Group() *TaskGroup[R] {
	return &TaskGroup[R]{pool: p}
}

// Submit enqueues tasks into the group's pool. It returns ErrPoolClosed if
// the pool has been shut down; tasks submitted before the error still run.
func (g *TaskGroup[R]) Submit(tasks ...any) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	for _, task := range tasks {
		future, err := g.pool.Submit(task)
		if err != nil {
			return err
		}
		g.futures = append(g.futures, future)
	}
	return nil
}

// Futures returns the pending futures accumulated so far, in submission
// order, without consuming them.
func (g *TaskGroup[R]) Futures() []*Future[R] {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	futures := make([]*Future[R], len(g.futures))
	copy(futures, g.futures)
	return futures
}

// Wait blocks until every task submitted to the group has completed and
// returns their results in submission order, along with the first error
// encountered. The group is reset and can be reused afterwards.
func (g *TaskGroup[R]) Wait() ([]Result[R], error) {
	g.mutex.Lock()
	futures := g.futures
	g.futures = nil
	g.mutex.Unlock()

	results := make([]Result[R], len(futures))
	var firstErr error

	for i, future := range futures {
		results[i] = future.Result()
		if firstErr == nil && results[i].Err != nil {
			firstErr = results[i].Err
		}
	}

	return results, firstErr
}
