// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

import "code.hybscloud.com/atomix"

// slotEmpty and slotReady are the values of the per-slot readiness flag
// used by the flag-synchronised variants (SPSCFlag, MPSCFlag).
const (
	slotEmpty uint32 = 0
	slotReady uint32 = 1
)

// FlaggedSlot is a per-element cell carrying a value plus an atomic
// readiness flag. The flag transitions EMPTY -> READY when a producer
// publishes a value and READY -> EMPTY when the consumer retires it;
// each transition happens exactly once per element passage.
type FlaggedSlot[T any] struct {
	flag  atomix.Uint32
	value T
	_     padShort
}

// PlainSlot is a per-element cell carrying the value alone. Readiness is
// inferred from index comparisons against the shared head/tail counters,
// so no per-slot synchronization state is needed.
type PlainSlot[T any] struct {
	value T
}

// ready reports whether the slot currently holds a published, unconsumed
// value, using acquire ordering so a subsequent read of value observes the
// producer's write.
func (s *FlaggedSlot[T]) ready() bool {
	return s.flag.LoadAcquire() == slotReady
}

// readyRelaxed is the same check without the acquire fence, used only for
// slots already covered by an earlier acquire edge in the same batch.
func (s *FlaggedSlot[T]) readyRelaxed() bool {
	return s.flag.LoadRelaxed() == slotReady
}

// publish stores the value then releases the slot to the consumer.
func (s *FlaggedSlot[T]) publish(v T) {
	s.value = v
	s.flag.StoreRelease(slotReady)
}

// retire moves the value out and releases the slot back to producers.
func (s *FlaggedSlot[T]) retire() T {
	v := s.value
	var zero T
	s.value = zero
	s.flag.StoreRelease(slotEmpty)
	return v
}


// Storage is a fixed-capacity, power-of-two indexable array of slots.
//
// Storage performs no bounds checking: callers must mask the index with
// Mask before calling Slot. Storage owns its slots exclusively for the
// lifetime of the queue that holds it.
type Storage[S any] interface {
	// Capacity returns the number of slots.
	Capacity() uint64
	// Mask returns Capacity-1.
	Mask() uint64
	// Slot returns a pointer to the slot at position i. The caller is
	// responsible for masking i.
	Slot(i uint64) *S
}

// StaticStorage is a Storage whose slice is sized once at construction and
// never resized, mirroring the original implementation's stack-allocated
// static_storage<T, Size> shape as closely as a language without
// compile-time array-length generics allows.
type StaticStorage[S any] struct {
	slots []S
	mask  uint64
}

// NewStaticStorage creates a StaticStorage with the given capacity.
// Capacity must be a power of two; a violation is a programmer error and
// panics, matching spec's "fatal programmer error" classification.
func NewStaticStorage[S any](capacity uint64) *StaticStorage[S] {
	if capacity == 0 || capacity&(capacity-1) != 0 {
		panic("lfq: capacity must be a power of two")
	}
	return &StaticStorage[S]{
		slots: make([]S, capacity),
		mask:  capacity - 1,
	}
}

func (s *StaticStorage[S]) Capacity() uint64 { return s.mask + 1 }
func (s *StaticStorage[S]) Mask() uint64     { return s.mask }
func (s *StaticStorage[S]) Slot(i uint64) *S { return &s.slots[i] }

// DynamicStorage is a Storage whose backing array is heap-allocated once at
// construction from a capacity supplied at runtime. Functionally identical
// to StaticStorage in this language (both wrap a slice) but kept as a
// distinct type to preserve the two-shape split spec.md §3 and the original
// static_storage/dynamic_storage split describe: StaticStorage is the
// natural choice when the capacity is a compile-time constant embedded in
// calling code, DynamicStorage when it arrives as a runtime value (e.g.
// read from configuration).
type DynamicStorage[S any] struct {
	slots []S
	mask  uint64
}

// NewDynamicStorage allocates a DynamicStorage of the given capacity.
// Capacity must be a power of two and non-zero; violating either aborts
// the process via panic, matching spec.md §4.1's error classification.
func NewDynamicStorage[S any](capacity uint64) *DynamicStorage[S] {
	if capacity == 0 || capacity&(capacity-1) != 0 {
		panic("lfq: capacity must be a power of two")
	}
	return &DynamicStorage[S]{
		slots: make([]S, capacity),
		mask:  capacity - 1,
	}
}

func (s *DynamicStorage[S]) Capacity() uint64 { return s.mask + 1 }
func (s *DynamicStorage[S]) Mask() uint64     { return s.mask }
func (s *DynamicStorage[S]) Slot(i uint64) *S { return &s.slots[i] }
