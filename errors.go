package tarn

import "errors"

var (
	// ErrInvalidWorkerCount is returned by New when the requested number of
	// workers is zero or negative.
	ErrInvalidWorkerCount = errors.New("worker count must be greater than zero")

	// ErrPoolClosed is returned when attempting to submit a task to a pool
	// that has been shut down and is no longer accepting tasks.
	ErrPoolClosed = errors.New("worker pool has been shut down and is no longer accepting tasks")

	// ErrPanic wraps the value recovered from a panic raised while executing
	// a task. It is surfaced when the task's result is retrieved.
	ErrPanic = errors.New("task panicked")

	// ErrCancelled resolves a future whose task was cancelled before a
	// worker picked it up.
	ErrCancelled = errors.New("task was cancelled before it started")

	// ErrQueueClosed is returned when writing to a closed dispatcher.
	ErrQueueClosed = errors.New("submission queue has been closed")
)
