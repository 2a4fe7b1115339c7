package hfsm

// StructureEntry describes one state in the tree for reporting and
// debugging purposes: its active status at the moment Structure was called,
// its nesting depth, and its display name.
type StructureEntry struct {
	IsActive bool
	Depth    int
	Name     string
}

// Structure returns one entry per state in the tree, in the same
// deterministic pre-order Build assigned indices, annotated with whether it
// is currently active and how deeply nested it is. It is meant for debug
// overlays and the internal/report exporters, not for hot-path logic.
func (r *Root[C]) Structure() []StructureEntry {
	entries := make([]StructureEntry, 0, len(r.states))
	r.walkStructure(0, 0, true, &entries)
	return entries
}

func (r *Root[C]) walkStructure(stateIdx uint8, depth int, active bool, out *[]StructureEntry) {
	*out = append(*out, StructureEntry{
		IsActive: active,
		Depth:    depth,
		Name:     r.states[stateIdx].Name(),
	})

	forkIdx := r.stateForkIdx[stateIdx]
	if forkIdx == NoIndex {
		return
	}
	f := r.forks[forkIdx]
	switch f.kind {
	case forkComposite:
		for p := uint8(0); p < f.arity; p++ {
			r.walkStructure(r.forkProngState[forkIdx][p], depth+1, active && p == f.active, out)
		}
	case forkOrthogonal:
		for p := uint8(0); p < f.arity; p++ {
			r.walkStructure(r.forkProngState[forkIdx][p], depth+1, active, out)
		}
	}
}

// Activity returns one entry per state, indexed the same way Structure's
// slice is ordered: a rolling signed counter, positive while the state is
// active and negative while it is inactive. Each tick it grows by one in its
// current direction, restarts at +1 or -1 when the state's activity flips,
// and is clamped to [-127, 127] rather than wrapping. Update and
// React both advance this counter once in their resolution tail, so Activity
// itself is a cheap, repeatable snapshot read rather than something that
// mutates state on every call.
func (r *Root[C]) Activity() []int8 {
	return append([]int8(nil), r.activity...)
}

func (r *Root[C]) walkActivity(stateIdx uint8, active bool) {
	switch {
	case active && r.activity[stateIdx] < 0:
		r.activity[stateIdx] = 1
	case active && r.activity[stateIdx] < 127:
		r.activity[stateIdx]++
	case !active && r.activity[stateIdx] > 0:
		r.activity[stateIdx] = -1
	case !active && r.activity[stateIdx] > -127:
		r.activity[stateIdx]--
	}

	forkIdx := r.stateForkIdx[stateIdx]
	if forkIdx == NoIndex {
		return
	}
	f := r.forks[forkIdx]
	switch f.kind {
	case forkComposite:
		for p := uint8(0); p < f.arity; p++ {
			r.walkActivity(r.forkProngState[forkIdx][p], active && p == f.active)
		}
	case forkOrthogonal:
		for p := uint8(0); p < f.arity; p++ {
			r.walkActivity(r.forkProngState[forkIdx][p], active)
		}
	}
}
