package hfsm

// NoIndex marks the absence of a prong, fork, or state index.
const NoIndex uint8 = 0xFF

// parent locates a state's or fork's position in the tree: the index of the
// owning fork, and which prong (child slot) it occupies within that fork.
// The root apex has forkIdx == NoIndex.
type parent struct {
	forkIdx uint8
	prong   uint8
}

// fork is the mutable runtime record for one composite or orthogonal region.
// active and resumable are meaningful only for composite forks (orthogonal
// regions always run every child, so they have no notion of "the" active
// prong). requested is the prong queued for activation by the current
// resolution pass; composites consult it in changeToRequestedRecursive, then
// reset it to NoIndex.
type fork struct {
	active    uint8 // composite: currently entered prong. orthogonal: unused.
	resumable uint8 // composite: prong to prefer on Resume. orthogonal: unused.
	requested uint8 // composite: prong queued for activation this pass.
	kind      forkKind
	arity     uint8 // number of child prongs
}

type forkKind uint8

const (
	forkComposite forkKind = iota
	forkOrthogonal
)
