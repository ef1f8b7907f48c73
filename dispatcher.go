package tarn

import (
	"context"
	"sync"
	"sync/atomic"
)

// dispatcher receives values from multiple goroutines without blocking them
// and hands batches to dispatchFunc from a single background goroutine.
type dispatcher[T any] struct {
	buffer       *queue[T]
	hasElements  chan struct{}
	dispatchFunc func([]T)
	waitGroup    sync.WaitGroup
	batchSize    int
	closed       atomic.Bool
}

func newDispatcher[T any](ctx context.Context, dispatchFunc func([]T), batchSize int) *dispatcher[T] {
	d := &dispatcher[T]{
		buffer:       newQueue[T](batchSize, 10*batchSize),
		hasElements:  make(chan struct{}, 1),
		dispatchFunc: dispatchFunc,
		batchSize:    batchSize,
	}

	d.waitGroup.Add(1)
	go d.run(ctx)

	return d
}

// Write enqueues values for dispatch. It never blocks on the dispatch side.
func (d *dispatcher[T]) Write(values ...T) error {
	if d.closed.Load() {
		return ErrQueueClosed
	}

	d.buffer.Write(values)

	// Wake up the dispatch loop
	select {
	case d.hasElements <- struct{}{}:
	default:
	}

	return nil
}

// WriteCount returns the number of elements written to the dispatcher.
func (d *dispatcher[T]) WriteCount() uint64 {
	return d.buffer.WriteCount()
}

// Len returns the number of elements waiting to be dispatched.
func (d *dispatcher[T]) Len() uint64 {
	return d.buffer.Len()
}

// Close stops the dispatcher from accepting new values. Values already
// buffered are still dispatched.
func (d *dispatcher[T]) Close() {
	if d.closed.CompareAndSwap(false, true) {
		close(d.hasElements)
	}
}

// CloseAndWait closes the dispatcher and blocks until every buffered value
// has been handed to dispatchFunc.
func (d *dispatcher[T]) CloseAndWait() {
	d.Close()
	d.waitGroup.Wait()
}

func (d *dispatcher[T]) run(ctx context.Context) {
	defer d.waitGroup.Done()

	batch := make([]T, d.batchSize)

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-d.hasElements:

			// Drain all pending elements
			for {
				n := d.buffer.Read(batch)
				if n == 0 {
					break
				}
				d.dispatchFunc(batch[:n])
			}

			if !ok {
				// Dispatcher was closed and fully drained
				return
			}
		}
	}
}
