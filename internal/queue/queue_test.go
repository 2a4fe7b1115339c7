package queue_test

import (
	"testing"

	"github.com/hzj-learn/HFSM/internal/queue"
)

func TestPushPopOrder(t *testing.T) {
	q := queue.New[int](3)
	q.Push(1)
	q.Push(2)
	q.Push(3)

	for _, want := range []int{1, 2, 3} {
		got, ok := q.Pop()
		if !ok || got != want {
			t.Fatalf("Pop() = (%d, %v), want (%d, true)", got, ok, want)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Fatal("expected empty queue after draining")
	}
}

func TestPushEvictsOldestAtCapacity(t *testing.T) {
	q := queue.New[int](2)
	q.Push(1)
	q.Push(2)
	q.Push(3) // evicts 1

	got, ok := q.Pop()
	if !ok || got != 2 {
		t.Fatalf("Pop() = (%d, %v), want (2, true)", got, ok)
	}
	got, ok = q.Pop()
	if !ok || got != 3 {
		t.Fatalf("Pop() = (%d, %v), want (3, true)", got, ok)
	}
}

func TestClear(t *testing.T) {
	q := queue.New[int](4)
	q.Push(1)
	q.Push(2)
	q.Clear()
	if q.Len() != 0 {
		t.Fatalf("Len() = %d after Clear, want 0", q.Len())
	}
	if q.Cap() != 4 {
		t.Fatalf("Cap() = %d, want unchanged 4", q.Cap())
	}
}
