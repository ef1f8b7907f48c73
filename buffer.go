package tarn

import (
	"errors"
	"sync/atomic"
)

// errSegmentDone signals that a segment has no room left to write or has been
// read to the end, and the caller should move on to the next segment.
var errSegmentDone = errors.New("segment exhausted")

// segment is a fixed-capacity slice written once from the front and read once
// from the front. Segments are chained by the queue to form an unbounded
// buffer.
type segment[T any] struct {
	items     []T
	writeNext atomic.Int64
	readNext  atomic.Int64
	next      *segment[T]
}

func newSegment[T any](capacity int) *segment[T] {
	return &segment[T]{
		items: make([]T, capacity),
	}
}

func (s *segment[T]) Cap() int {
	return cap(s.items)
}

// Write copies values into the remaining space of the segment and returns how
// many were written. It returns errSegmentDone when the segment is full.
func (s *segment[T]) Write(values []T) (int, error) {
	writeNext := s.writeNext.Load()
	if writeNext >= int64(s.Cap()) {
		return 0, errSegmentDone
	}

	n := len(values)
	if free := s.Cap() - int(writeNext); n > free {
		n = free
	}

	copy(s.items[writeNext:int(writeNext)+n], values[:n])
	s.writeNext.Add(int64(n))
	return n, nil
}

// Read copies up to cap(values) unread elements into values and returns how
// many were read. It returns errSegmentDone once the segment has been fully
// consumed.
func (s *segment[T]) Read(values []T) (int, error) {
	writeNext := s.writeNext.Load()
	n := int64(cap(values))

	readNext := s.readNext.Add(n) - n
	if readNext >= int64(s.Cap()) {
		return 0, errSegmentDone
	}

	unread := writeNext - readNext
	if unread <= 0 {
		// Nothing to read yet, give back the claimed range
		s.readNext.Add(-n)
		return 0, nil
	}
	if unread < n {
		s.readNext.Add(unread - n)
		n = unread
	}

	copy(values[:n], s.items[readNext:readNext+n])
	return int(n), nil
}
