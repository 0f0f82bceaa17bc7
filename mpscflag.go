// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// MPSCFlag is a multi-producer single-consumer bounded queue. Producers
// reserve slots via an acquire-release fetch-and-add on tail; the per-slot READY
// flag is the sole ordering point between reservation and consumption.
//
// The fetch-and-add is the MPSC queue's only linearisation point: two
// producers that reserve adjacent slots then publish independently, so
// the queue is FIFO by slot, not strictly by reservation arrival order.
// Tail is unbounded (mod 2^64) and capacity is a power of two, so
// producers in flight hold distinct slot indices until the ring wraps
// around beneath them — at which point a producer whose reserved slot is
// still READY spins until the prior generation's consumer has drained it.
// That spin is the backpressure mechanism: the reservation cannot be
// rolled back, so a full MPSCFlag queue makes producers wait rather than
// fail outright once they have reserved a slot.
//
// Grounded on the original implementation's bounded_queue_mpsc2, carrying
// over the teacher's padding and spin.Wait idiom from its own (SCQ-based)
// MPSC — see DESIGN.md for why the simpler binary-flag protocol below
// replaces the teacher's cycle-counter scheme.
//
// MPSCFlag has no Clear: resetting it would also require resetting every
// slot's flag to EMPTY with no producer in the middle of a reservation.
type MPSCFlag[T any] struct {
	_    pad
	head uint64 // consumer-owned, not shared
	_    pad
	tail atomix.Uint64 // producers fetch-and-add here
	_    pad
	ring *DynamicStorage[FlaggedSlot[T]]
	mask uint64
}

// NewMPSCFlag creates a new MPSCFlag queue.
// Capacity rounds up to the next power of 2. Panics if capacity < 2.
func NewMPSCFlag[T any](capacity int) *MPSCFlag[T] {
	if capacity < 2 {
		panic("lfq: capacity must be >= 2")
	}
	n := uint64(roundToPow2(capacity))
	return &MPSCFlag[T]{
		ring: NewDynamicStorage[FlaggedSlot[T]](n),
		mask: n - 1,
	}
}

// Enqueue reserves a slot with an acquire-release fetch-and-add on tail, then waits
// for that slot's flag to return to EMPTY before publishing.
//
// Enqueue is safe to call from any number of producer goroutines
// concurrently. It never returns ErrWouldBlock by itself: once a slot is
// reserved the producer is committed to it and spins until it can
// publish. Backpressure is exerted through that spin, not through a
// false return, which is why callers that need a bounded wait must wrap
// Enqueue in their own deadline.
func (q *MPSCFlag[T]) Enqueue(elem *T) error {
	myTail := q.tail.AddAcqRel(1) - 1
	slot := q.ring.Slot(myTail & q.mask)

	sw := spin.Wait{}
	for slot.ready() {
		sw.Once()
	}
	slot.publish(*elem)
	return nil
}

// Dequeue removes and returns an element (single consumer only).
// Returns (zero-value, ErrWouldBlock) if the slot at head is still EMPTY.
func (q *MPSCFlag[T]) Dequeue() (T, error) {
	slot := q.ring.Slot(q.head & q.mask)
	if !slot.ready() {
		var zero T
		return zero, ErrWouldBlock
	}
	elem := slot.retire()
	q.head++
	return elem, nil
}

// PopBatch drains up to len(out) contiguous READY slots starting at head,
// identical in shape to SPSCFlag.PopBatch: at most one consumer exists in
// this variant, so contiguous inspection without further synchronization
// is safe. Returns the number of elements moved, which may be zero.
func (q *MPSCFlag[T]) PopBatch(out []T) int {
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

// Empty reports whether the queue appears to hold no elements. This is
// advisory, not exact: a producer may have completed its fetch-and-add
// reservation but not yet published the slot's flag, in which case
// head == tail is false-negative-free but a freshly reserved, unpublished
// slot is not yet readable either way — see spec's "Open question —
// emptiness semantics under concurrent reservation".
func (q *MPSCFlag[T]) Empty() bool {
	return q.head == q.tail.LoadRelaxed()
}

// Cap returns the queue capacity.
func (q *MPSCFlag[T]) Cap() int {
	return int(q.mask + 1)
}
