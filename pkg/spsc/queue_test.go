package spsc

import (
	"runtime"
	"testing"
)

func TestQueueFIFO(t *testing.T) {
	t.Parallel()

	q := New[int](8)
	for i := 0; i < 5; i++ {
		if !q.TrySend(i) {
			t.Fatalf("TrySend(%d) = false, want true", i)
		}
	}

	for i := 0; i < 5; i++ {
		v, ok := q.TryReceive()
		if !ok {
			t.Fatalf("TryReceive() empty at %d, want value", i)
		}
		if v != i {
			t.Errorf("TryReceive() = %d, want %d", v, i)
		}
	}
}

func TestQueueRejectsWhenFull(t *testing.T) {
	t.Parallel()

	q := New[int](4)
	for i := 0; i < q.Cap(); i++ {
		if !q.TrySend(i) {
			t.Fatalf("TrySend(%d) = false before queue was full", i)
		}
	}

	if q.TrySend(99) {
		t.Error("TrySend() = true on a full queue, want false")
	}
	if got := q.Len(); got != q.Cap() {
		t.Errorf("Len() = %d after rejected send, want %d", got, q.Cap())
	}
}

func TestQueueReceiveWhenEmpty(t *testing.T) {
	t.Parallel()

	q := New[string](4)
	if v, ok := q.TryReceive(); ok {
		t.Errorf("TryReceive() = %q, true on an empty queue, want false", v)
	}

	q.TrySend("a")
	q.TryReceive()
	if _, ok := q.TryReceive(); ok {
		t.Error("TryReceive() = true after queue was emptied, want false")
	}
}

func TestQueueCapacityAtLeastRequested(t *testing.T) {
	t.Parallel()

	tests := []struct {
		requested int
		wantCap   int
	}{
		{requested: 1, wantCap: 1},
		{requested: 3, wantCap: 4},
		{requested: 16, wantCap: 16},
		{requested: 20, wantCap: 32},
	}

	for _, tt := range tests {
		q := New[int](tt.requested)
		if q.Cap() != tt.wantCap {
			t.Errorf("New(%d).Cap() = %d, want %d", tt.requested, q.Cap(), tt.wantCap)
		}
	}
}

func TestQueueReceiveClearsSlot(t *testing.T) {
	t.Parallel()

	q := New[*int](2)
	v := new(int)
	q.TrySend(v)
	q.TryReceive()

	for _, slot := range q.ring {
		if slot != nil {
			t.Error("ring slot still holds a reference after TryReceive")
		}
	}
}

// One goroutine sends a long ascending sequence while another receives;
// every value must come out exactly once, in order.
func TestQueueConcurrentOrderPreserved(t *testing.T) {
	t.Parallel()

	const count = 100_000
	q := New[int](16)

	go func() {
		for i := 0; i < count; i++ {
			for !q.TrySend(i) {
				runtime.Gosched()
			}
		}
	}()

	next := 0
	for next < count {
		v, ok := q.TryReceive()
		if !ok {
			runtime.Gosched()
			continue
		}
		if v != next {
			t.Fatalf("received %d, want %d", v, next)
		}
		next++
	}
}

// Both try-operations must stay allocation-free so they are safe to
// call from an audio callback.
func TestQueueOperationsDoNotAllocate(t *testing.T) {
	q := New[*int](4)
	v := new(int)

	allocs := testing.AllocsPerRun(1000, func() {
		q.TrySend(v)
		q.TryReceive()
	})
	if allocs != 0 {
		t.Errorf("TrySend+TryReceive allocated %.1f times per run, want 0", allocs)
	}
}
