package tarn

import (
	"sync"
	"sync/atomic"
)

// queue is an unbounded concurrent buffer built from a chain of
// fixed-capacity segments. Writers never block on readers: when the tail
// segment fills up, a larger one is linked after it.
type queue[T any] struct {
	readHead  *segment[T]
	writeTail *segment[T]

	maxSegmentCap int
	writeCount    atomic.Uint64
	readCount     atomic.Uint64
	mutex         sync.RWMutex
}

func newQueue[T any](initialCap, maxSegmentCap int) *queue[T] {
	first := newSegment[T](initialCap)
	return &queue[T]{
		readHead:      first,
		writeTail:     first,
		maxSegmentCap: maxSegmentCap,
	}
}

// Write appends values to the queue, growing it as needed.
func (q *queue[T]) Write(values []T) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	length := len(values)
	written := 0

	for written < length {
		n, err := q.writeTail.Write(values[written:])
		if err == errSegmentDone {
			// Tail is full, link a larger segment after it
			q.writeTail.next = newSegment[T](q.nextSegmentCap())
			q.writeTail = q.writeTail.next
			continue
		}
		written += n
	}

	q.writeCount.Add(uint64(length))
}

// nextSegmentCap doubles small segments and grows large ones by half, capped
// at maxSegmentCap.
func (q *queue[T]) nextSegmentCap() int {
	capacity := q.writeTail.Cap()
	if capacity < 1024 {
		capacity *= 2
	} else {
		capacity += capacity / 2
	}
	if capacity > q.maxSegmentCap {
		capacity = q.maxSegmentCap
	}
	return capacity
}

// Read copies up to cap(values) elements into values and returns the number
// read. It returns 0 when the queue is empty.
func (q *queue[T]) Read(values []T) int {
	for {
		q.mutex.RLock()
		head := q.readHead
		q.mutex.RUnlock()

		n, err := head.Read(values)

		if err == errSegmentDone {
			// Head segment consumed, advance to the next one
			q.mutex.Lock()
			if head.next == nil {
				q.mutex.Unlock()
				return n
			}
			if q.readHead == head {
				q.readHead = head.next
			}
			q.mutex.Unlock()
			continue
		}

		if n > 0 {
			q.readCount.Add(uint64(n))
		}
		return n
	}
}

// WriteCount returns the number of elements written since the queue was
// created.
func (q *queue[T]) WriteCount() uint64 {
	return q.writeCount.Load()
}

// ReadCount returns the number of elements read since the queue was created.
func (q *queue[T]) ReadCount() uint64 {
	return q.readCount.Load()
}

// Len returns the number of elements written but not yet read.
func (q *queue[T]) Len() uint64 {
	writeCount := q.writeCount.Load()
	readCount := q.readCount.Load()

	if writeCount < readCount {
		return 0
	}
	return writeCount - readCount
}
