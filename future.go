package tarn

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Result is the outcome of executing one task: a value or an error, tagged
// with the submission index of the task that produced it. Exactly one of
// Value and Err is meaningful.
type Result[R any] struct {
	Index uint64
	Value R
	Err   error
}

// Failed reports whether the task completed with an error.
func (r Result[R]) Failed() bool {
	return r.Err != nil
}

type resolver[R any] func(value R, err error)

// Future is the handle for the eventual result of one submitted task, bound
// to it by submission index. A future starts out pending and is resolved
// exactly once: when its task completes, fails, or is cancelled before
// starting. Cancelling the pool context resolves all pending futures with
// the context's error.
type Future[R any] struct {
	ctx      context.Context
	index    uint64
	started  atomic.Bool
	resolve  resolver[R]
	onCancel func()
}

func newFuture[R any](ctx context.Context, index uint64) (*Future[R], resolver[R]) {
	childCtx, cancel := context.WithCancelCause(ctx)

	future := &Future[R]{
		ctx:   childCtx,
		index: index,
	}

	resolve := func(value R, err error) {
		cancel(&resolution[R]{
			value: value,
			err:   err,
		})
	}
	future.resolve = resolve

	return future, resolve
}

// Index returns the submission index assigned to this future's task.
func (f *Future[R]) Index() uint64 {
	return f.index
}

// Done returns a channel that is closed when the future is resolved.
func (f *Future[R]) Done() <-chan struct{} {
	return f.ctx.Done()
}

// Get blocks until the future is resolved and returns the task's value and
// error. Calling Get again returns the same pair without re-running the task.
func (f *Future[R]) Get() (R, error) {
	<-f.ctx.Done()

	cause := context.Cause(f.ctx)
	if res, ok := cause.(*resolution[R]); ok {
		return res.value, res.err
	}

	var zero R
	return zero, cause
}

// Result blocks until the future is resolved and returns the outcome tagged
// with the submission index.
func (f *Future[R]) Result() Result[R] {
	value, err := f.Get()
	return Result[R]{
		Index: f.index,
		Value: value,
		Err:   err,
	}
}

// Cancel resolves the future with ErrCancelled if no worker has picked up
// its task yet and reports whether the task will be skipped. Cancelling a
// task that has already started has no effect and returns false.
func (f *Future[R]) Cancel() bool {
	if !f.started.CompareAndSwap(false, true) {
		return false
	}

	var zero R
	f.resolve(zero, ErrCancelled)

	if f.onCancel != nil {
		f.onCancel()
	}
	return true
}

// start claims the future for execution. It fails if the task was cancelled
// or a worker already claimed it.
func (f *Future[R]) start() bool {
	return f.started.CompareAndSwap(false, true)
}

// resolution carries a resolved value through context.WithCancelCause.
type resolution[R any] struct {
	value R
	err   error
}

func (r *resolution[R]) Error() string {
	if r.err != nil {
		return r.err.Error()
	}
	return fmt.Sprintf("future resolved: %v", r.value)
}
