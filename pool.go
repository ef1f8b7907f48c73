package tarn

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// defaultBatchSize is the number of queued tasks the dispatcher hands to the
// workers per batch. It also sizes the first queue segment.
const defaultBatchSize = 64

// taskEntry pairs a queued task with the future that will carry its result.
type taskEntry[R any] struct {
	task    any
	future  *Future[R]
	resolve resolver[R]
}

// Pool is a fixed-size worker pool producing results of type R.
//
// Tasks are any function matching TaskFunc. Submit enqueues a task without
// blocking on worker availability and returns a future for its result.
// Workers dequeue tasks in FIFO order and each task runs on exactly one
// worker. A task error or panic resolves only that task's future; sibling
// tasks and the pool itself are unaffected.
type Pool[R any] struct {
	ctx         context.Context
	logger      *slog.Logger
	workerCount int

	tasks      chan taskEntry[R]
	dispatcher *dispatcher[taskEntry[R]]

	nextIndex       atomic.Uint64
	workerWaitGroup sync.WaitGroup
	closed          atomic.Bool
	closeOnce       sync.Once
	terminated      chan struct{}

	runningWorkers      atomic.Int64
	successfulTaskCount atomic.Uint64
	failedTaskCount     atomic.Uint64
	cancelledTaskCount  atomic.Uint64
}

// New creates a pool with the given fixed number of workers. It returns
// ErrInvalidWorkerCount if workerCount is not positive.
func New[R any](workerCount int, opts ...Option) (*Pool[R], error) {
	if workerCount <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWorkerCount, workerCount)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	pool := &Pool[R]{
		ctx:         cfg.ctx,
		logger:      cfg.logger,
		workerCount: workerCount,
		tasks:       make(chan taskEntry[R]),
		terminated:  make(chan struct{}),
	}

	pool.dispatcher = newDispatcher(pool.ctx, pool.dispatch, defaultBatchSize)

	pool.workerWaitGroup.Add(workerCount)
	for id := 0; id < workerCount; id++ {
		go pool.worker(id)
	}

	pool.logger.Info("worker pool started", slog.Int("workers", workerCount))

	return pool, nil
}

// Context returns the context associated with this pool.
func (p *Pool[R]) Context() context.Context {
	return p.ctx
}

// WorkerCount returns the fixed number of workers in the pool.
func (p *Pool[R]) WorkerCount() int {
	return p.workerCount
}

// RunningWorkers returns the number of workers currently executing a task.
func (p *Pool[R]) RunningWorkers() int64 {
	return p.runningWorkers.Load()
}

// SubmittedTasks returns the total number of tasks submitted since the pool
// was created.
func (p *Pool[R]) SubmittedTasks() uint64 {
	return p.dispatcher.WriteCount()
}

// WaitingTasks returns the number of tasks queued and not yet handed to a
// worker.
func (p *Pool[R]) WaitingTasks() uint64 {
	return p.dispatcher.Len()
}

// SuccessfulTasks returns the number of tasks that completed without error.
func (p *Pool[R]) SuccessfulTasks() uint64 {
	return p.successfulTaskCount.Load()
}

// FailedTasks returns the number of tasks that completed with an error or a
// panic.
func (p *Pool[R]) FailedTasks() uint64 {
	return p.failedTaskCount.Load()
}

// CancelledTasks returns the number of tasks cancelled before they started.
func (p *Pool[R]) CancelledTasks() uint64 {
	return p.cancelledTaskCount.Load()
}

// CompletedTasks returns the number of tasks whose future has been resolved,
// whether successfully, with an error, or by cancellation.
func (p *Pool[R]) CompletedTasks() uint64 {
	return p.SuccessfulTasks() + p.FailedTasks() + p.CancelledTasks()
}

// Closed reports whether Shutdown has been called.
func (p *Pool[R]) Closed() bool {
	return p.closed.Load()
}

// Submit enqueues a task and returns a pending future for its result. The
// task must match one of the TaskFunc signatures; any other type panics.
// Submit never blocks waiting for an idle worker. It returns ErrPoolClosed
// after Shutdown has been called.
func (p *Pool[R]) Submit(task any) (*Future[R], error) {
	validateTask[R](task)

	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	index := p.nextIndex.Add(1) - 1
	future, resolve := newFuture[R](p.ctx, index)
	future.onCancel = func() {
		p.cancelledTaskCount.Add(1)
	}

	entry := taskEntry[R]{
		task:    task,
		future:  future,
		resolve: resolve,
	}

	if err := p.dispatcher.Write(entry); err != nil {
		return nil, ErrPoolClosed
	}

	return future, nil
}

// MapOrdered submits all tasks in order, waits for every one to complete and
// returns their results in submission order, regardless of the order in
// which they finished.
func (p *Pool[R]) MapOrdered(tasks ...any) ([]Result[R], error) {
	futures := make([]*Future[R], len(tasks))

	for i, task := range tasks {
		future, err := p.Submit(task)
		if err != nil {
			return nil, err
		}
		futures[i] = future
	}

	// Reading the futures back in submission order gives the ordered view
	// for free: each Result call blocks until that task is done.
	results := make([]Result[R], len(futures))
	for i, future := range futures {
		results[i] = future.Result()
	}

	return results, nil
}

// Shutdown stops the pool from accepting new tasks. If wait is true it
// blocks until all queued and in-flight tasks have completed; otherwise the
// remaining tasks drain in the background. Shutdown is idempotent, and a
// later call with wait=true still blocks until the drain completes.
func (p *Pool[R]) Shutdown(wait bool) {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		p.logger.Info("worker pool shutting down")

		go func() {
			p.dispatcher.CloseAndWait()
			close(p.tasks)
			p.workerWaitGroup.Wait()
			close(p.terminated)
			p.logger.Info("worker pool shutdown complete")
		}()
	})

	if wait {
		<-p.terminated
	}
}

// dispatch hands a batch of queued tasks to the workers in FIFO order.
func (p *Pool[R]) dispatch(entries []taskEntry[R]) {
	for _, entry := range entries {
		select {
		case p.tasks <- entry:
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *Pool[R]) worker(id int) {
	defer p.workerWaitGroup.Done()

	for {
		select {
		case <-p.ctx.Done():
			p.logger.Debug("worker context done", slog.Int("worker", id))
			return
		case entry, ok := <-p.tasks:
			if !ok {
				p.logger.Debug("worker exiting", slog.Int("worker", id))
				return
			}
			p.execute(entry)
		}
	}
}

// execute runs one task and resolves its future. Task errors and panics are
// captured into the result and never escape the worker.
func (p *Pool[R]) execute(entry taskEntry[R]) {
	if !entry.future.start() {
		// Cancelled before pickup; the future is already resolved
		return
	}

	p.runningWorkers.Add(1)
	value, err := invokeTask[R](entry.task, p.ctx)
	p.runningWorkers.Add(-1)

	entry.resolve(value, err)

	if err != nil {
		p.failedTaskCount.Add(1)
	} else {
		p.successfulTaskCount.Add(1)
	}
}

// Run creates a pool, passes it to fn and shuts it down with wait=true on
// every exit path, including an error return or a panic inside fn.
func Run[R any](workerCount int, fn func(*Pool[R]) error, opts ...Option) error {
	pool, err := New[R](workerCount, opts...)
	if err != nil {
		return err
	}
	defer pool.Shutdown(true)

	return fn(pool)
}
