// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

// SPSCFlag is a single-producer single-consumer bounded queue synchronised
// via a per-slot readiness flag rather than shared head/tail counters.
//
// Each element has exactly one synchronization point: the flag on the slot
// it occupies. Producer and consumer never read each other's index, only
// the slot they are positioned on, which eliminates cross-core traffic on
// index counters entirely. This is the variant to reach for when empty()
// must be exact rather than advisory.
//
// Grounded on the original implementation's bounded_queue_spsc2.
type SPSCFlag[T any] struct {
	_      pad
	head   uint64 // consumer-owned, not shared
	_      pad
	tail   uint64 // producer-owned, not shared
	_      pad
	ring   *DynamicStorage[FlaggedSlot[T]]
	mask   uint64
}

// NewSPSCFlag creates a new SPSCFlag queue.
// Capacity rounds up to the next power of 2. Panics if capacity < 2.
func NewSPSCFlag[T any](capacity int) *SPSCFlag[T] {
	if capacity < 2 {
		panic("lfq: capacity must be >= 2")
	}
	n := uint64(roundToPow2(capacity))
	return &SPSCFlag[T]{
		ring: NewDynamicStorage[FlaggedSlot[T]](n),
		mask: n - 1,
	}
}

// Enqueue adds an element to the queue (producer only).
// Returns ErrWouldBlock if the slot at tail is still READY, i.e. the
// queue is full.
func (q *SPSCFlag[T]) Enqueue(elem *T) error {
	slot := q.ring.Slot(q.tail & q.mask)
	if slot.ready() {
		return ErrWouldBlock
	}
	slot.publish(*elem)
	q.tail++
	return nil
}

// Dequeue removes and returns an element (consumer only).
// Returns (zero-value, ErrWouldBlock) if the slot at head is still EMPTY,
// i.e. the queue is empty.
func (q *SPSCFlag[T]) Dequeue() (T, error) {
	slot := q.ring.Slot(q.head & q.mask)
	if !slot.ready() {
		var zero T
		return zero, ErrWouldBlock
	}
	elem := slot.retire()
	q.head++
	return elem, nil
}

// PopBatch drains up to len(out) contiguous READY slots starting at head.
//
// The first slot is probed with acquire ordering; subsequent slots in the
// same batch are probed with a relaxed load since missing a READY flag
// there only truncates the batch early, which PopBatch is already allowed
// to do. Each drained slot is released individually (see DESIGN.md for why
// this, rather than one trailing fence, is the Go-idiomatic rendering of
// the original's single release-fence-per-batch). Returns the number of
// elements moved, which may be zero.
func (q *SPSCFlag[T]) PopBatch(out []T) int {
	if len(out) == 0 {
		return 0
	}
	head := q.head
	first := q.ring.Slot(head & q.mask)
	if !first.ready() {
		return 0
	}
	out[0] = first.retire()
	n := 1
	for n < len(out) {
		slot := q.ring.Slot((head + uint64(n)) & q.mask)
		if !slot.readyRelaxed() {
			break
		}
		out[n] = slot.retire()
		n++
	}
	q.head = head + uint64(n)
	return n
}

// Empty reports whether the queue currently holds no elements. This is
// exact for SPSCFlag: the consumer observes the producer's publication
// atomically on the slot flag, with no advisory window.
func (q *SPSCFlag[T]) Empty() bool {
	return !q.ring.Slot(q.head & q.mask).ready()
}

// Clear resets head and tail to zero. The caller must guarantee no
// concurrent Enqueue or Dequeue is in flight; Clear does not reset slot
// flags, so it must only be called when every slot is already EMPTY.
func (q *SPSCFlag[T]) Clear() {
	q.head, q.tail = 0, 0
}

// Cap returns the queue capacity.
func (q *SPSCFlag[T]) Cap() int {
	return int(q.mask + 1)
}
