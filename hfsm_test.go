package hfsm_test

import (
	"testing"

	. "github.com/hzj-learn/HFSM"
)

// recorder is a minimal context shared by every test tree: states append to
// log on every callback they care about, so assertions just compare a
// slice of strings.
type recorder struct {
	log []string
}

func (r *recorder) record(s string) { r.log = append(r.log, s) }

type rLeaf struct {
	Base[*recorder]
	name string
}

func (l *rLeaf) Enter(r *recorder)  { r.record(l.name + ".enter") }
func (l *rLeaf) Leave(r *recorder)  { r.record(l.name + ".leave") }
func (l *rLeaf) Update(r *recorder) { r.record(l.name + ".update") }
func (l *rLeaf) Transition(r *recorder, c Control) {
	r.record(l.name + ".transition")
}

func newLeaf(name string) *rLeaf { return &rLeaf{name: name} }

type A struct{ rLeaf }
type B struct{ rLeaf }
type C struct{ rLeaf }

func TestBasicChangeTo(t *testing.T) {
	rec := &recorder{}
	apex := Composite[*recorder](newLeaf("root"),
		Leaf[*recorder](&A{rLeaf{name: "A"}}),
		Leaf[*recorder](&B{rLeaf{name: "B"}}),
	)

	root, err := New(rec, apex)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer root.Close()

	if !IsActive[*A](root) {
		t.Fatal("expected A active by default")
	}

	ChangeTo[*B](root)
	mustUpdate(t, root)

	if !IsActive[*B](root) {
		t.Fatal("expected B active after ChangeTo")
	}
	if IsActive[*A](root) {
		t.Fatal("expected A inactive after ChangeTo")
	}
}

func TestUnknownTagPanics(t *testing.T) {
	rec := &recorder{}
	apex := Composite[*recorder](newLeaf("root"),
		Leaf[*recorder](&A{rLeaf{name: "A"}}),
	)
	root, err := New(rec, apex)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer root.Close()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unregistered state type")
		}
	}()
	ChangeTo[*C](root)
}

func TestEmptyRegionRejected(t *testing.T) {
	apex := Composite[*recorder](newLeaf("root"))
	if _, err := New(&recorder{}, apex); err == nil {
		t.Fatal("expected error for region with no children")
	}
}

func TestNilContextRejected(t *testing.T) {
	apex := Composite[*recorder](newLeaf("root"),
		Leaf[*recorder](&A{rLeaf{name: "A"}}),
		Leaf[*recorder](&B{rLeaf{name: "B"}}),
	)
	var rec *recorder
	if _, err := New(rec, apex); err == nil {
		t.Fatal("expected error for nil context")
	}
}
