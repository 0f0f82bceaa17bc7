// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

// Options configures queue creation and algorithm selection.
type Options struct {
	singleProducer bool
	singleConsumer bool
	indexed        bool // prefer the cached-index protocol over the flag protocol
	capacity       int
}

// Builder creates queues with fluent configuration.
//
// Builder provides a fluent API for configuring and creating queues. The
// algorithm is selected from the producer/consumer constraints and the
// Indexed() hint.
//
// Example:
//
//	// SPSC queue, cached-index protocol
//	q := lfq.BuildSPSC[Event](lfq.New(1024).SingleProducer().SingleConsumer().Indexed())
//
//	// SPSC queue, per-slot flag protocol (exact Empty())
//	q := lfq.BuildSPSC[Event](lfq.New(1024).SingleProducer().SingleConsumer())
//
//	// MPSC queue
//	q := lfq.BuildMPSC[Request](lfq.New(4096).SingleConsumer())
type Builder struct {
	opts Options
}

// New creates a queue builder with the given capacity.
//
// Capacity rounds up to the next power of 2. Panics if capacity < 2.
func New(capacity int) *Builder {
	if capacity < 2 {
		panic("lfq: capacity must be >= 2")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// SingleProducer declares that only one goroutine will enqueue.
func (b *Builder) SingleProducer() *Builder {
	b.opts.singleProducer = true
	return b
}

// SingleConsumer declares that only one goroutine will dequeue.
func (b *Builder) SingleConsumer() *Builder {
	b.opts.singleConsumer = true
	return b
}

// Indexed selects the cached shared-index protocol (SPSCIndex) over the
// default per-slot flag protocol (SPSCFlag) for single-producer,
// single-consumer configurations. Ignored for MPSC, which has only one
// protocol in this package.
func (b *Builder) Indexed() *Builder {
	b.opts.indexed = true
	return b
}

// BuildSPSC creates an SPSC queue with compile-time type safety, choosing
// SPSCIndex or SPSCFlag per the Indexed() hint.
// Panics if builder is not configured with SingleProducer().SingleConsumer().
func BuildSPSC[T any](b *Builder) Queue[T] {
	if !b.opts.singleProducer || !b.opts.singleConsumer {
		panic("lfq: BuildSPSC requires SingleProducer().SingleConsumer()")
	}
	if b.opts.indexed {
		return NewSPSCIndex[T](b.opts.capacity)
	}
	return NewSPSCFlag[T](b.opts.capacity)
}

// BuildMPSC creates an MPSCFlag queue with compile-time type safety.
// Panics if builder is not configured with SingleConsumer() without
// SingleProducer().
func BuildMPSC[T any](b *Builder) Queue[T] {
	if b.opts.singleProducer || !b.opts.singleConsumer {
		panic("lfq: BuildMPSC requires SingleConsumer() without SingleProducer()")
	}
	return NewMPSCFlag[T](b.opts.capacity)
}

// roundToPow2 rounds n up to the next power of 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte

// padShort is padding to fill the remainder of a cache line behind a
// small fixed-size field (the slot's readiness flag). It is a heuristic,
// not an exact fit for every element type T, matching the same looseness
// in the teacher's own per-slot padding.
type padShort [64 - 4]byte
