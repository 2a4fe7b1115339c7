package hfsm_test

import (
	"testing"

	"github.com/google/uuid"

	. "github.com/hzj-learn/HFSM"
)

type fakeLogger struct {
	calls []Method
}

func (f *fakeLogger) Record(instance uuid.UUID, stateTag Tag, stateName string, method Method, methodName string) {
	f.calls = append(f.calls, method)
}

func TestWithLoggerIsApplied(t *testing.T) {
	log := &fakeLogger{}
	apex := Composite[*recorder](newLeaf("root"),
		Leaf[*recorder](&A{rLeaf{name: "A"}}),
		Leaf[*recorder](&B{rLeaf{name: "B"}}),
	)

	root, err := New(&recorder{}, apex, WithLogger[*recorder](log))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer root.Close()

	if len(log.calls) == 0 {
		t.Fatal("expected WithLogger's Logger to receive Enter records during construction")
	}
}

func TestWithMaxSubstitutionsIsApplied(t *testing.T) {
	rec := &recorder{}
	apex := Composite[*recorder](&R0{rLeaf{name: "R0"}},
		Leaf[*recorder](&ping{rLeaf{name: "ping"}}),
		Leaf[*recorder](&pong{rLeaf{name: "pong"}}),
	)

	log := &fakeLogger{}
	root, err := New(rec, apex, WithMaxSubstitutions[*recorder](1), WithLogger[*recorder](log))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer root.Close()

	log.calls = nil
	ChangeTo[*pong](root)
	mustUpdate(t, root)

	if root.SubstitutionOverflows() == 0 {
		t.Fatal("expected a lower MaxSubstitutions to overflow sooner on the same ping/pong loop")
	}

	// A bound of 1 allows two substitution rounds (R0 plus the requested leaf
	// in each) before the overflow; the default of 4 would allow five.
	subs := 0
	for _, m := range log.calls {
		if m == MethodSubstitute {
			subs++
		}
	}
	if subs != 4 {
		t.Fatalf("Substitute records = %d, want 4 (two rounds)", subs)
	}
}

type hookState struct {
	rLeaf
	order *[]string
}

func (h *hookState) PreEnter(r *recorder)  { *h.order = append(*h.order, h.name+".preEnter") }
func (h *hookState) PostEnter(r *recorder) { *h.order = append(*h.order, h.name+".postEnter") }
func (h *hookState) PreLeave(r *recorder)  { *h.order = append(*h.order, h.name+".preLeave") }
func (h *hookState) PostLeave(r *recorder) { *h.order = append(*h.order, h.name+".postLeave") }

func TestPreAndPostHooksWrapEnterAndLeave(t *testing.T) {
	var order []string
	rec := &recorder{}
	apex := Composite[*recorder](newLeaf("root"),
		Leaf[*recorder](&hookState{rLeaf: rLeaf{name: "Hooked"}, order: &order}),
		Leaf[*recorder](&B{rLeaf{name: "B"}}),
	)

	root, err := New(rec, apex)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ChangeTo[*B](root)
	mustUpdate(t, root)
	root.Close()

	want := []string{"Hooked.preEnter", "Hooked.postEnter", "Hooked.preLeave", "Hooked.postLeave"}
	if len(order) != len(want) {
		t.Fatalf("hook order = %v, want %v", order, want)
	}
	for i, w := range want {
		if order[i] != w {
			t.Fatalf("hook order[%d] = %q, want %q (full: %v)", i, order[i], w, order)
		}
	}
}

func TestWithQueueCapacityIsApplied(t *testing.T) {
	apex := Composite[*recorder](newLeaf("root"),
		Leaf[*recorder](&A{rLeaf{name: "A"}}),
		Leaf[*recorder](&B{rLeaf{name: "B"}}),
	)

	root, err := New(&recorder{}, apex, WithQueueCapacity[*recorder](8))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer root.Close()

	ChangeTo[*B](root)
	mustUpdate(t, root)
	if !IsActive[*B](root) {
		t.Fatal("expected B active after ChangeTo with a custom queue capacity")
	}
}

func TestUpdateAndReactReturnErrClosedAfterClose(t *testing.T) {
	apex := Composite[*recorder](newLeaf("root"),
		Leaf[*recorder](&A{rLeaf{name: "A"}}),
		Leaf[*recorder](&B{rLeaf{name: "B"}}),
	)

	root, err := New(&recorder{}, apex)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	root.Close()

	if err := root.Update(); err != ErrClosed {
		t.Fatalf("Update after Close = %v, want ErrClosed", err)
	}
	if err := root.React(NewEvent("tick", nil)); err != ErrClosed {
		t.Fatalf("React after Close = %v, want ErrClosed", err)
	}
}

func TestActivityRollsPositiveThenNegative(t *testing.T) {
	apex := Composite[*recorder](newLeaf("root"),
		Leaf[*recorder](&A{rLeaf{name: "A"}}),
		Leaf[*recorder](&B{rLeaf{name: "B"}}),
	)

	root, err := New(&recorder{}, apex)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer root.Close()

	aIdx, bIdx := -1, -1
	for i, e := range root.Structure() {
		switch e.Name {
		case "A":
			aIdx = i
		case "B":
			bIdx = i
		}
	}
	if aIdx < 0 || bIdx < 0 {
		t.Fatalf("expected both A and B in Structure(), got %v", root.Structure())
	}

	mustUpdate(t, root)
	mustUpdate(t, root)
	act := root.Activity()
	if act[aIdx] <= 0 {
		t.Fatalf("expected A's activity positive while active, got %d", act[aIdx])
	}
	if act[bIdx] >= 0 {
		t.Fatalf("expected B's activity negative while inactive, got %d", act[bIdx])
	}

	// Reading Activity twice between ticks must not change the counters.
	again := root.Activity()
	if again[aIdx] != act[aIdx] || again[bIdx] != act[bIdx] {
		t.Fatalf("Activity mutated state on repeated read: first %v, second %v", act, again)
	}

	// The counter is a rolling history: after a switch it restarts at +1 or
	// -1 and keeps growing in the new direction, so switch active state and
	// check both counters have flipped sign.
	ChangeTo[*B](root)
	mustUpdate(t, root)
	mustUpdate(t, root)
	mustUpdate(t, root)
	act = root.Activity()
	if act[bIdx] <= 0 {
		t.Fatalf("expected B's activity to turn positive once active long enough, got %d", act[bIdx])
	}
	if act[aIdx] >= 0 {
		t.Fatalf("expected A's activity to turn negative once inactive long enough, got %d", act[aIdx])
	}
}

func TestBuildReportsShapeSizes(t *testing.T) {
	apex := Orthogonal[*recorder](&R0{rLeaf{name: "root"}},
		Composite[*recorder](&P0{rLeaf{name: "left"}},
			Leaf[*recorder](&A{rLeaf{name: "A"}}),
			Leaf[*recorder](&B{rLeaf{name: "B"}}),
		),
		Leaf[*recorder](&C{rLeaf{name: "C"}}),
	)

	shape, err := Build[*recorder](apex)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if shape.StateCount != 5 {
		t.Fatalf("StateCount = %d, want 5", shape.StateCount)
	}
	if shape.ForkCount != 2 {
		t.Fatalf("ForkCount = %d, want 2", shape.ForkCount)
	}
	// DeepWidth: orthogonal root fans out to its composite child (width 1,
	// since only one of A/B is active at a time) plus the leaf C (width 1).
	if shape.DeepWidth != 2 {
		t.Fatalf("DeepWidth = %d, want 2", shape.DeepWidth)
	}
}
