// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

import "code.hybscloud.com/atomix"

// SPSCIndex is a single-producer single-consumer bounded queue
// synchronised via two shared atomic indices with locally cached
// snapshots of the opposite side's counter.
//
// Based on Correct and Efficient Bounded FIFO Queues
// (https://www.irif.fr/~guatto/papers/sbac13.pdf), matching the original
// implementation's bounded_queue_spsc3. The producer caches the
// consumer's head index and vice versa, consulting the shared atomic only
// when the locally cached value indicates the fast path is not viable —
// this keeps cross-core traffic off the hot path entirely in the common
// case where the queue is neither nearly full nor nearly empty.
type SPSCIndex[T any] struct {
	_          pad
	head       atomix.Uint64 // consumer reads from here
	_          pad
	cachedTail uint64 // consumer's cached view of tail
	_          pad
	tail       atomix.Uint64 // producer writes here
	_          pad
	cachedHead uint64 // producer's cached view of head
	_          pad
	ring       *StaticStorage[PlainSlot[T]]
	mask       uint64
}

// NewSPSCIndex creates a new SPSCIndex queue.
// Capacity rounds up to the next power of 2. Panics if capacity < 2.
func NewSPSCIndex[T any](capacity int) *SPSCIndex[T] {
	if capacity < 2 {
		panic("lfq: capacity must be >= 2")
	}
	n := uint64(roundToPow2(capacity))
	return &SPSCIndex[T]{
		ring: NewStaticStorage[PlainSlot[T]](n),
		mask: n - 1,
	}
}

// Enqueue adds an element to the queue (producer only).
// Returns ErrWouldBlock if the queue is full.
func (q *SPSCIndex[T]) Enqueue(elem *T) error {
	tail := q.tail.LoadRelaxed()
	if tail-q.cachedHead > q.mask {
		q.cachedHead = q.head.LoadAcquire()
		if tail-q.cachedHead > q.mask {
			return ErrWouldBlock
		}
	}

	q.ring.Slot(tail & q.mask).value = *elem
	q.tail.StoreRelease(tail + 1)
	return nil
}

// Dequeue removes and returns an element (consumer only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *SPSCIndex[T]) Dequeue() (T, error) {
	head := q.head.LoadRelaxed()
	if head >= q.cachedTail {
		q.cachedTail = q.tail.LoadAcquire()
		if head >= q.cachedTail {
			var zero T
			return zero, ErrWouldBlock
		}
	}

	slot := q.ring.Slot(head & q.mask)
	elem := slot.value
	var zero T
	slot.value = zero
	q.head.StoreRelease(head + 1)
	return elem, nil
}

// PopBatch drains up to min(len(out), available) contiguous elements
// starting at head, refreshing the cached tail once via an acquire load
// and publishing the new head with a single release store.
// Returns the number of elements moved, which may be zero.
func (q *SPSCIndex[T]) PopBatch(out []T) int {
	if len(out) == 0 {
		return 0
	}
	head := q.head.LoadRelaxed()
	if head >= q.cachedTail {
		q.cachedTail = q.tail.LoadAcquire()
		if head >= q.cachedTail {
			return 0
		}
	}

	available := q.cachedTail - head
	n := uint64(len(out))
	if available < n {
		n = available
	}
	for i := uint64(0); i < n; i++ {
		slot := q.ring.Slot((head + i) & q.mask)
		out[i] = slot.value
		var zero T
		slot.value = zero
	}
	q.head.StoreRelease(head + n)
	return int(n)
}

// Empty reports whether the queue currently holds no elements. This is
// advisory: a concurrently in-flight Enqueue's release store of tail may
// not yet be visible to this read.
func (q *SPSCIndex[T]) Empty() bool {
	return q.head.LoadRelaxed() == q.tail.LoadRelaxed()
}

// Clear resets head and tail to zero. The caller must guarantee no
// concurrent Enqueue or Dequeue is in flight.
func (q *SPSCIndex[T]) Clear() {
	q.head.StoreRelaxed(0)
	q.tail.StoreRelaxed(0)
	q.cachedHead = 0
	q.cachedTail = 0
}

// Cap returns the queue capacity.
func (q *SPSCIndex[T]) Cap() int {
	return int(q.mask + 1)
}
