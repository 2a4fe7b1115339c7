package hfsm_test

import (
	"testing"

	. "github.com/hzj-learn/HFSM"
)

// ping and pong perpetually redirect each other during Substitute, modeling
// scenario 5: a guard protocol that never converges on its own and must be
// bounded by MaxSubstitutions rather than looping forever.
type ping struct{ rLeaf }
type pong struct{ rLeaf }

func (p *ping) Substitute(r *recorder, c Control) { ChangeTo[*pong](c) }
func (p *pong) Substitute(r *recorder, c Control) { ChangeTo[*ping](c) }

func TestSubstitutionOverflowIsBounded(t *testing.T) {
	rec := &recorder{}
	apex := Composite[*recorder](&R0{rLeaf{name: "R0"}},
		Leaf[*recorder](&ping{rLeaf{name: "ping"}}),
		Leaf[*recorder](&pong{rLeaf{name: "pong"}}),
	)
	root, err := New(rec, apex, WithMaxSubstitutions[*recorder](4))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer root.Close()

	ChangeTo[*pong](root)
	mustUpdate(t, root)

	if root.SubstitutionOverflows() == 0 {
		t.Fatal("expected at least one recorded substitution overflow")
	}
	if !IsActive[*ping](root) {
		t.Fatal("expected the pre-tick configuration (ping) to remain active after overflow")
	}
}
