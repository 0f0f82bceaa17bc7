// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq_test

import (
	"errors"
	"testing"

	"github.com/ringlane/lfq"
)

// =============================================================================
// Capacity validation
// =============================================================================

func TestCapacityRoundsUpToPowerOfTwo(t *testing.T) {
	cases := []struct {
		in, wantCap int
	}{
		{2, 2}, {3, 4}, {4, 4}, {5, 8}, {1000, 1024}, {1024, 1024},
	}
	for _, c := range cases {
		if got := lfq.NewSPSCFlag[int](c.in).Cap(); got != c.wantCap {
			t.Errorf("NewSPSCFlag(%d).Cap(): got %d, want %d", c.in, got, c.wantCap)
		}
		if got := lfq.NewSPSCIndex[int](c.in).Cap(); got != c.wantCap {
			t.Errorf("NewSPSCIndex(%d).Cap(): got %d, want %d", c.in, got, c.wantCap)
		}
		if got := lfq.NewMPSCFlag[int](c.in).Cap(); got != c.wantCap {
			t.Errorf("NewMPSCFlag(%d).Cap(): got %d, want %d", c.in, got, c.wantCap)
		}
		if got := lfq.NewNonSync[int](c.in).Cap(); got != c.wantCap {
			t.Errorf("NewNonSync(%d).Cap(): got %d, want %d", c.in, got, c.wantCap)
		}
	}
}

func TestCapacityBelowMinimumPanics(t *testing.T) {
	for _, n := range []int{0, 1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewSPSCFlag(%d): want panic, got none", n)
				}
			}()
			lfq.NewSPSCFlag[int](n)
		}()
	}
}

func TestStorageRejectsNonPowerOfTwo(t *testing.T) {
	for _, n := range []uint64{0, 3, 7, 1000} {
		func(n uint64) {
			defer func() {
				if recover() == nil {
					t.Errorf("NewDynamicStorage(%d): want panic, got none", n)
				}
			}()
			lfq.NewDynamicStorage[lfq.FlaggedSlot[int]](n)
		}(n)
	}
	for _, n := range []uint64{1, 2, 4, 1024, 1 << 20} {
		func(n uint64) {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("NewDynamicStorage(%d): unexpected panic: %v", n, r)
				}
			}()
			s := lfq.NewDynamicStorage[lfq.FlaggedSlot[int]](n)
			if s.Capacity() != n {
				t.Errorf("Capacity(): got %d, want %d", s.Capacity(), n)
			}
			if s.Mask() != n-1 {
				t.Errorf("Mask(): got %d, want %d", s.Mask(), n-1)
			}
		}(n)
	}
}

// =============================================================================
// Basic round trip
// =============================================================================

func TestSPSCFlagBasic(t *testing.T) {
	q := lfq.NewSPSCFlag[int](4)
	if !q.Empty() {
		t.Fatal("new queue should be empty")
	}
	v := 42
	if err := q.Enqueue(&v); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if q.Empty() {
		t.Fatal("queue with one element should not be empty")
	}
	got, err := q.Dequeue()
	if err != nil {
		t.Fatalf("Dequeue: %v", err)
	}
	if got != 42 {
		t.Fatalf("Dequeue: got %d, want 42", got)
	}
	if !q.Empty() {
		t.Fatal("queue should be empty again after draining")
	}
}

func TestSPSCIndexBasic(t *testing.T) {
	q := lfq.NewSPSCIndex[int](4)
	if !q.Empty() {
		t.Fatal("new queue should be empty")
	}
	v := 42
	if err := q.Enqueue(&v); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if q.Empty() {
		t.Fatal("queue with one element should not be empty")
	}
	got, err := q.Dequeue()
	if err != nil {
		t.Fatalf("Dequeue: %v", err)
	}
	if got != 42 {
		t.Fatalf("Dequeue: got %d, want 42", got)
	}
	if !q.Empty() {
		t.Fatal("queue should be empty again after draining")
	}
}

func TestMPSCFlagBasic(t *testing.T) {
	q := lfq.NewMPSCFlag[int](4)
	if !q.Empty() {
		t.Fatal("new queue should be empty")
	}
	v := 42
	if err := q.Enqueue(&v); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if q.Empty() {
		t.Fatal("queue with one element should not be empty")
	}
	got, err := q.Dequeue()
	if err != nil {
		t.Fatalf("Dequeue: %v", err)
	}
	if got != 42 {
		t.Fatalf("Dequeue: got %d, want 42", got)
	}
	if !q.Empty() {
		t.Fatal("queue should be empty again after draining")
	}
}

func TestNonSyncBasic(t *testing.T) {
	q := lfq.NewNonSync[int](4)
	if !q.Empty() {
		t.Fatal("new queue should be empty")
	}
	v := 42
	if ok := q.Enqueue(&v); !ok {
		t.Fatal("NonSync.Enqueue must never fail")
	}
	got, ok := q.Dequeue()
	if !ok || got != 42 {
		t.Fatalf("Dequeue: got (%d, %v), want (42, true)", got, ok)
	}
	if !q.Empty() {
		t.Fatal("queue should be empty again after draining")
	}
}

// =============================================================================
// FIFO, single thread
// =============================================================================

func TestSPSCFlagFIFO(t *testing.T) {
	const n = 16
	q := lfq.NewSPSCFlag[int](n)
	for i := 1; i <= n; i++ {
		v := i
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}
	for i := 1; i <= n; i++ {
		got, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if got != i {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, got, i)
		}
	}
}

func TestSPSCIndexFIFO(t *testing.T) {
	const n = 16
	q := lfq.NewSPSCIndex[int](n)
	for i := 1; i <= n; i++ {
		v := i
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}
	for i := 1; i <= n; i++ {
		got, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if got != i {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, got, i)
		}
	}
}

func TestMPSCFlagFIFOSingleProducer(t *testing.T) {
	const n = 16
	q := lfq.NewMPSCFlag[int](n)
	for i := 1; i <= n; i++ {
		v := i
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}
	for i := 1; i <= n; i++ {
		got, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if got != i {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, got, i)
		}
	}
}

func TestNonSyncFIFO(t *testing.T) {
	const n = 16
	q := lfq.NewNonSync[int](n)
	for i := 1; i <= n; i++ {
		v := i
		q.Enqueue(&v)
	}
	for i := 1; i <= n; i++ {
		got, ok := q.Dequeue()
		if !ok || got != i {
			t.Fatalf("Dequeue(%d): got (%d, %v), want (%d, true)", i, got, ok, i)
		}
	}
}

// =============================================================================
// Full / empty edge
// =============================================================================

func TestSPSCFlagFullEmptyEdge(t *testing.T) {
	q := lfq.NewSPSCFlag[int](4)
	for i := range 4 {
		v := i
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}
	v := 99
	if err := q.Enqueue(&v); !errors.Is(err, lfq.ErrWouldBlock) {
		t.Fatalf("Enqueue on full: got %v, want ErrWouldBlock", err)
	}
	if _, err := q.Dequeue(); err != nil {
		t.Fatalf("Dequeue: %v", err)
	}
	if err := q.Enqueue(&v); err != nil {
		t.Fatalf("Enqueue after one free slot: %v", err)
	}
	for range 4 {
		if _, err := q.Dequeue(); err != nil {
			t.Fatalf("Dequeue: %v", err)
		}
	}
	if _, err := q.Dequeue(); !errors.Is(err, lfq.ErrWouldBlock) {
		t.Fatalf("Dequeue on empty: got %v, want ErrWouldBlock", err)
	}
}

func TestSPSCIndexFullEmptyEdge(t *testing.T) {
	q := lfq.NewSPSCIndex[int](4)
	for i := range 4 {
		v := i
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}
	v := 99
	if err := q.Enqueue(&v); !errors.Is(err, lfq.ErrWouldBlock) {
		t.Fatalf("Enqueue on full: got %v, want ErrWouldBlock", err)
	}
	if _, err := q.Dequeue(); err != nil {
		t.Fatalf("Dequeue: %v", err)
	}
	if err := q.Enqueue(&v); err != nil {
		t.Fatalf("Enqueue after one free slot: %v", err)
	}
}

func TestClearResetsSPSCVariants(t *testing.T) {
	qf := lfq.NewSPSCFlag[int](4)
	v := 1
	qf.Enqueue(&v)
	qf.Dequeue()
	qf.Clear()
	if !qf.Empty() {
		t.Fatal("SPSCFlag should be empty after Clear")
	}
	if err := qf.Enqueue(&v); err != nil {
		t.Fatalf("Enqueue after Clear: %v", err)
	}

	qi := lfq.NewSPSCIndex[int](4)
	qi.Enqueue(&v)
	qi.Dequeue()
	qi.Clear()
	if !qi.Empty() {
		t.Fatal("SPSCIndex should be empty after Clear")
	}
	if err := qi.Enqueue(&v); err != nil {
		t.Fatalf("Enqueue after Clear: %v", err)
	}
}
