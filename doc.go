// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lfq provides bounded, in-process FIFO queues for transferring
// values between one or more producer goroutines and a single consumer
// goroutine without locks.
//
// The package offers four variants, each a different synchronization
// discipline over the same ring-buffer shape:
//
//   - NonSync: single-threaded baseline, no atomics at all
//   - SPSCFlag: single-producer single-consumer, per-slot readiness flag
//   - SPSCIndex: single-producer single-consumer, cached shared indices
//   - MPSCFlag: multi-producer single-consumer, FAA reservation + per-slot flag
//
// # Quick Start
//
// Direct constructors (recommended for most cases):
//
//	q := lfq.NewSPSCFlag[Event](1024)
//	q := lfq.NewMPSCFlag[*Request](4096)
//
// Builder API:
//
//	q := lfq.BuildSPSC[Event](lfq.New(1024).SingleProducer().SingleConsumer())
//	q := lfq.BuildMPSC[Event](lfq.New(1024).SingleConsumer())
//
// # Basic Usage
//
// SPSCFlag, SPSCIndex and MPSCFlag share the same Enqueue/Dequeue shape
// (NonSync returns a bool instead of an error, and MPSCFlag's Enqueue spins
// on a full queue instead of returning ErrWouldBlock):
//
//	q := lfq.NewSPSCFlag[int](1024)
//
//	value := 42
//	err := q.Enqueue(&value)
//	if lfq.IsWouldBlock(err) {
//	    // Queue is full - handle backpressure
//	}
//
//	elem, err := q.Dequeue()
//	if lfq.IsWouldBlock(err) {
//	    // Queue is empty - try again later
//	}
//
// # Common Patterns
//
// Pipeline stage (SPSC):
//
//	q := lfq.NewSPSCIndex[Data](1024)
//
//	go func() { // producer
//	    backoff := iox.Backoff{}
//	    for data := range input {
//	        for q.Enqueue(&data) != nil {
//	            backoff.Wait()
//	        }
//	        backoff.Reset()
//	    }
//	}()
//
//	go func() { // consumer
//	    backoff := iox.Backoff{}
//	    for {
//	        data, err := q.Dequeue()
//	        if err != nil {
//	            backoff.Wait()
//	            continue
//	        }
//	        backoff.Reset()
//	        process(data)
//	    }
//	}()
//
// Event aggregation (MPSC):
//
//	q := lfq.NewMPSCFlag[Event](4096)
//
//	for sensor := range slices.Values(sensors) {
//	    go func(s Sensor) {
//	        for ev := range s.Events() {
//	            q.Enqueue(&ev)
//	        }
//	    }(sensor)
//	}
//
//	go func() { // single aggregator
//	    for {
//	        ev, err := q.Dequeue()
//	        if err == nil {
//	            aggregate(ev)
//	        }
//	    }
//	}()
//
// # SPSCFlag vs SPSCIndex
//
// Both are wait-free single-producer/single-consumer queues; pick based
// on what you need from Empty():
//
//	SPSCFlag:  Empty() is exact — the flag is the publication point itself.
//	SPSCIndex: Empty() is advisory — a fresher tail may not be visible yet.
//
// SPSCFlag pays one atomic op per element (the flag); SPSCIndex pays one
// atomic op per element on the fast path too, but touches the shared
// counter only when the local cache says the fast path isn't viable,
// which trades a slightly larger worst case for a smaller best case under
// contention. Neither dominates the other across all workloads; benchmark
// with your traffic shape if it matters.
//
// # Capacity
//
// Capacity rounds up to the next power of 2:
//
//	q := lfq.NewMPSCFlag[int](3)     // actual capacity: 4
//	q := lfq.NewMPSCFlag[int](1000)  // actual capacity: 1024
//
// Minimum capacity is 2. Panics if capacity < 2.
//
// Length is intentionally not provided because accurate counts in
// lock-free algorithms require expensive cross-core synchronization.
// Track counts in application logic when needed.
//
// # Thread Safety
//
//   - NonSync: exactly one goroutine, for both Enqueue and Dequeue
//   - SPSCFlag / SPSCIndex: one producer goroutine, one consumer goroutine
//   - MPSCFlag: multiple producer goroutines, one consumer goroutine
//
// Violating these constraints causes undefined behavior including data
// corruption and races.
//
// # Batch Drain
//
// SPSCFlag, SPSCIndex, and MPSCFlag implement PopBatch, a non-blocking
// best-effort drain of between 0 and len(out) contiguous elements. It
// never blocks and never partially-writes a slot: see DESIGN.md for how
// PopBatch's ordering differs from the per-element Dequeue path.
//
// # Error Handling
//
// Queues return [ErrWouldBlock] when an operation cannot proceed. This
// error is sourced from [code.hybscloud.com/iox] for ecosystem
// consistency with other hybscloud packages.
//
//	backoff := iox.Backoff{}
//	for {
//	    err := q.Enqueue(&item)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if !lfq.IsWouldBlock(err) {
//	        return err // unexpected error
//	    }
//	    backoff.Wait()
//	}
//
// # Race Detection
//
// Go's race detector is not designed for lock-free algorithm
// verification: it tracks explicit synchronization primitives (mutex,
// channel, WaitGroup) but cannot observe happens-before relationships
// established purely through atomic acquire-release ordering. The
// concurrent correctness tests in this package use [RaceEnabled] to skip
// themselves under -race rather than report a false positive; run them
// without the race detector, or stress-test at longer duration, to
// verify lock-free correctness.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit memory
// ordering, and [code.hybscloud.com/spin] for CPU pause instructions in
// MPSCFlag's producer wait loop.
package lfq
