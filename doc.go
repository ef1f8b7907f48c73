// Package tarn implements a fixed-size worker pool with future-based result
// collection.
//
// A pool owns a set of worker goroutines draining a shared submission queue.
// Submitted tasks never block the caller waiting for an idle worker: excess
// tasks queue up and are dispatched in FIFO order. Results can be retrieved
// per task through a Future, in submission order through MapOrdered, or in
// completion order through AsCompleted.
package tarn
