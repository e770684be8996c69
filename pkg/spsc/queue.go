package spsc

import "sync/atomic"

// Queue is a bounded FIFO handing values from exactly one sender
// goroutine to exactly one receiver goroutine.
//
// Both TrySend and TryReceive are wait-free and allocation-free, so
// either end may live on a real-time thread (e.g. an audio callback)
// without risking a block or a heap allocation. Neither operation may
// be called from more than one goroutine at a time for its role.
type Queue[T any] struct {
	// head and tail are monotonically increasing positions into the
	// ring, masked on access. They sit on separate cache lines so the
	// sender and receiver do not false-share.
	tail atomic.Uint64
	_    [56]byte
	head atomic.Uint64
	_    [56]byte

	ring []T
	mask uint64
}

// New creates a queue holding at least capacity items. The ring is
// rounded up to the next power of two so positions can be masked
// instead of divided.
func New[T any](capacity int) *Queue[T] {
	if capacity < 1 {
		capacity = 1
	}
	size := 1
	for size < capacity {
		size <<= 1
	}
	return &Queue[T]{
		ring: make([]T, size),
		mask: uint64(size - 1),
	}
}

// Cap returns the number of items the queue can hold.
func (q *Queue[T]) Cap() int {
	return len(q.ring)
}

// Len returns the number of items currently queued. Only advisory when
// the other end is active.
func (q *Queue[T]) Len() int {
	return int(q.tail.Load() - q.head.Load())
}

// TrySend enqueues v, or reports false if the queue is full.
// Sender side only.
func (q *Queue[T]) TrySend(v T) bool {
	t := q.tail.Load()
	h := q.head.Load()
	if t-h == uint64(len(q.ring)) {
		return false
	}
	q.ring[t&q.mask] = v
	q.tail.Store(t + 1)
	return true
}

// TryReceive dequeues the oldest item, or reports false if the queue
// is empty. The slot is zeroed so the queue does not pin whatever the
// item references. Receiver side only.
func (q *Queue[T]) TryReceive() (T, bool) {
	var zero T
	h := q.head.Load()
	t := q.tail.Load()
	if h == t {
		return zero, false
	}
	v := q.ring[h&q.mask]
	q.ring[h&q.mask] = zero
	q.head.Store(h + 1)
	return v, true
}
