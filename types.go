// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

// Queue is the combined producer-consumer interface for a bounded FIFO queue.
//
// Queue provides Enqueue and Dequeue operations that return ErrWouldBlock
// when they cannot proceed (queue full or empty). The one exception is
// MPSCFlag's Enqueue, which never returns ErrWouldBlock: on a full queue it
// spins until its reserved slot is free.
//
// The interface intentionally excludes length because accurate counts in
// lock-free algorithms require expensive cross-core synchronization.
// Track counts in application logic when needed.
//
// Example:
//
//	q := lfq.NewSPSCIndex[int](1024)
//
//	// Enqueue
//	val := 42
//	if err := q.Enqueue(&val); err != nil {
//	    // Handle full queue
//	}
//
//	// Dequeue
//	elem, err := q.Dequeue()
//	if err == nil {
//	    fmt.Println(elem)
//	}
type Queue[T any] interface {
	Producer[T]
	Consumer[T]
	Cap() int
}

// Producer is the interface for enqueueing elements.
//
// Producer provides non-blocking enqueue operations. The element is passed
// by pointer to avoid copying large structs. The queue stores a copy of
// the pointed-to value, so the original can be modified after Enqueue returns.
type Producer[T any] interface {
	// Enqueue adds an element to the queue.
	// The element is copied into the queue's internal buffer.
	// Returns nil on success, ErrWouldBlock if the queue is full
	// (SPSCFlag, SPSCIndex). MPSCFlag's Enqueue never returns ErrWouldBlock;
	// it spins until its reserved slot is free.
	//
	// Thread safety depends on queue type:
	//   - SPSCFlag / SPSCIndex: single producer only
	//   - MPSCFlag: multiple producers safe
	Enqueue(elem *T) error
}

// Consumer is the interface for dequeueing elements.
//
// Consumer provides non-blocking dequeue operations. The element is returned
// by value (copied from the queue's internal buffer). The original slot is
// cleared to allow garbage collection of referenced objects.
type Consumer[T any] interface {
	// Dequeue removes and returns an element from the queue (non-blocking).
	// Returns the dequeued element on success.
	// Returns (zero-value, ErrWouldBlock) if the queue is empty.
	//
	// All four variants in this package allow exactly one consumer goroutine.
	Dequeue() (T, error)
}

// BatchConsumer is implemented by queue variants that support a non-blocking
// batch drain behind a single acquire edge.
//
// PopBatch moves between 0 and min(len(out), occupancy) contiguous elements
// into out and returns the count actually moved. It never blocks: it stops
// at the first slot that is not yet readable or when out is exhausted.
type BatchConsumer[T any] interface {
	PopBatch(out []T) int
}

// Clearer is implemented by queue variants where resetting head and tail to
// zero is well-defined. Clear requires the caller to guarantee no concurrent
// Enqueue or Dequeue is in flight. MPSCFlag does not implement this
// interface.
type Clearer interface {
	Clear()
}
