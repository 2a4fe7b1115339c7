package hfsm

import "reflect"

type nodeKind uint8

const (
	nodeLeaf nodeKind = iota
	nodeComposite
	nodeOrthogonal
)

// Region is the tree shape as the caller composes it: a head state plus,
// for composite and orthogonal regions, an ordered list of child prongs. It
// exists only until Build consumes it; the runtime never walks it again
// afterward, favoring the flat arrays Build produces instead.
type Region[C any] struct {
	kind     nodeKind
	head     State[C]
	children []*Region[C]
}

// Leaf wraps a terminal state with no children of its own.
func Leaf[C any](state State[C]) *Region[C] {
	return &Region[C]{kind: nodeLeaf, head: state}
}

// Composite wraps head with child prongs of which exactly one is active at a
// time. The first child is the default prong used on RequestRestart and on a
// RequestResume that has no recorded resumable prong yet.
func Composite[C any](head State[C], children ...*Region[C]) *Region[C] {
	return &Region[C]{kind: nodeComposite, head: head, children: children}
}

// Orthogonal wraps head with child prongs that are all active simultaneously.
func Orthogonal[C any](head State[C], children ...*Region[C]) *Region[C] {
	return &Region[C]{kind: nodeOrthogonal, head: head, children: children}
}

// Shape is the dense, build-once description of a tree, produced by Build
// and shared by every Root constructed from it. It holds no per-instance
// runtime state (no fork activity, no queue) so the same Shape could in
// principle seed many Root instances, though Build is cheap enough that New
// always builds fresh rather than accepting a precomputed Shape.
type Shape[C any] struct {
	// StateCount and ForkCount are the sizes Build validated against the
	// uint8 index space (at most 255 of each).
	StateCount int
	ForkCount  int

	// DeepWidth is the maximum number of leaf states simultaneously active
	// at once across the whole tree (a composite fork takes the largest of
	// its children's DeepWidth, an orthogonal fork the sum of them). It is a
	// reporting-only metric,
	// exposed for introspection and capacity planning; the resolution loop
	// never consults it.
	DeepWidth int

	// ReverseDepth is the height of the tree: the longest chain of nested
	// regions from the apex down to a leaf, with the apex at depth 0. It is
	// exposed for introspection only.
	ReverseDepth int

	states         []State[C]
	stateParents   []parent
	stateForkIdx   []uint8 // NoIndex for leaves
	forkParents    []parent
	forks          []fork
	forkProngState [][]uint8 // forkProngState[fork][prong] = state index
	tagIndex       map[Tag]uint8
}

// Build walks a composed Region tree and produces its flat Shape, assigning
// dense state and fork indices in a deterministic pre-order so Structure()
// output is stable across runs. New calls Build internally so the common
// path is a single call; Build is exported separately so a host can
// introspect a Shape (state/fork counts, depth) before constructing a Root.
func Build[C any](apex *Region[C]) (*Shape[C], error) {
	s := &Shape[C]{tagIndex: make(map[Tag]uint8)}

	var walk func(n *Region[C], par parent, depth int) (stateIdx uint8, deepWidth int, err error)
	walk = func(n *Region[C], par parent, depth int) (uint8, int, error) {
		if n.kind != nodeLeaf && len(n.children) == 0 {
			return 0, 0, ErrEmptyRegion
		}
		if len(s.states) >= int(NoIndex) {
			return 0, 0, ErrTooManyStates
		}

		tag := reflect.TypeOf(n.head)
		if _, exists := s.tagIndex[tag]; exists {
			return 0, 0, wrapf(ErrDuplicateTag, "type %s", tag)
		}

		idx := uint8(len(s.states))
		n.head.setTag(tag)
		s.states = append(s.states, n.head)
		s.stateParents = append(s.stateParents, par)
		s.tagIndex[tag] = idx

		if depth > s.ReverseDepth {
			s.ReverseDepth = depth
		}

		if n.kind == nodeLeaf {
			s.stateForkIdx = append(s.stateForkIdx, NoIndex)
			return idx, 1, nil
		}

		if len(s.forks) >= int(NoIndex) {
			return 0, 0, ErrTooManyForks
		}
		forkIdx := uint8(len(s.forks))
		s.stateForkIdx = append(s.stateForkIdx, forkIdx)

		kind := forkComposite
		if n.kind == nodeOrthogonal {
			kind = forkOrthogonal
		}
		s.forks = append(s.forks, fork{
			active:    0,
			resumable: 0,
			requested: NoIndex,
			kind:      kind,
			arity:     uint8(len(n.children)),
		})
		s.forkParents = append(s.forkParents, par)
		s.forkProngState = append(s.forkProngState, make([]uint8, len(n.children)))

		var width int
		for prong, child := range n.children {
			childIdx, childWidth, err := walk(child, parent{forkIdx: forkIdx, prong: uint8(prong)}, depth+1)
			if err != nil {
				return 0, 0, err
			}
			s.forkProngState[forkIdx][prong] = childIdx
			switch kind {
			case forkComposite:
				if childWidth > width {
					width = childWidth
				}
			case forkOrthogonal:
				width += childWidth
			}
		}
		return idx, width, nil
	}

	_, deepWidth, err := walk(apex, parent{forkIdx: NoIndex, prong: NoIndex}, 0)
	if err != nil {
		return nil, err
	}
	s.StateCount = len(s.states)
	s.ForkCount = len(s.forks)
	s.DeepWidth = deepWidth
	return s, nil
}
