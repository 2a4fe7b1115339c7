package hfsm

import (
	"reflect"

	"github.com/google/uuid"

	"github.com/hzj-learn/HFSM/internal/queue"
)

const defaultMaxSubstitutions = 4

// Option configures a Root at construction time.
type Option[C any] func(*Root[C])

// WithLogger attaches a Logger that receives one record per lifecycle
// callback invoked anywhere in the tree.
func WithLogger[C any](l Logger) Option[C] {
	return func(r *Root[C]) { r.logger = l }
}

// WithMaxSubstitutions bounds how many times the resolution loop will let
// states redirect each other within a single Update, React, or New before it
// gives up, discards every pending request, and keeps the configuration that
// was active before resolution began. The default is 4.
func WithMaxSubstitutions[C any](n int) Option[C] {
	return func(r *Root[C]) {
		if n > 0 {
			r.maxSubstitutions = n
		}
	}
}

// WithQueueCapacity overrides the request queue's capacity, which otherwise
// defaults to one more than the tree's fork count (enough for every
// composite and orthogonal region to have a pending request at once). A host
// that knows it issues bursts of requests ahead of a single resolution pass
// can raise this to avoid the queue evicting the oldest pending request.
func WithQueueCapacity[C any](n int) Option[C] {
	return func(r *Root[C]) {
		if n > 0 {
			r.queue = queue.New[request](n)
		}
	}
}

// Root is a built, running instance of a state tree. It is not safe for
// concurrent use: the host must call Update, React, and the generic
// ChangeTo/Resume/Schedule functions from a single goroutine per instance.
type Root[C any] struct {
	*Shape[C]

	ctx C

	forks []fork // per-instance runtime copy; shape.forks is the build-time template

	queue            *queue.Queue[request]
	maxSubstitutions int
	substitutions    int
	subOverflows     int
	requestCount     int

	logger   Logger
	instance uuid.UUID

	activity []int8

	closed bool
}

// New builds a tree from apex and enters its initial configuration: every
// composite region's first child, and every orthogonal region's children in
// full.
func New[C any](ctx C, apex *Region[C], opts ...Option[C]) (*Root[C], error) {
	if isNilContext(ctx) {
		return nil, ErrNilContext
	}
	sh, err := Build[C](apex)
	if err != nil {
		return nil, wrapf(err, "hfsm: build tree")
	}

	r := &Root[C]{
		Shape:            sh,
		ctx:              ctx,
		forks:            append([]fork(nil), sh.forks...),
		maxSubstitutions: defaultMaxSubstitutions,
		logger:           NopLogger{},
		instance:         uuid.New(),
		activity:         make([]int8, len(sh.states)),
	}
	r.queue = queue.New[request](len(r.forks) + 1)

	for _, opt := range opts {
		opt(r)
	}

	r.enterRecursive(0)
	r.resolve()
	return r, nil
}

func isNilContext(ctx any) bool {
	if ctx == nil {
		return true
	}
	v := reflect.ValueOf(ctx)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}

func (r *Root[C]) log(stateIdx uint8, method Method) {
	st := r.states[stateIdx]
	r.logger.Record(r.instance, st.tag(), st.Name(), method, method.String())
}

// runEnter invokes Enter, wrapped by PreHooks/PostHooks if the state
// implements them.
func (r *Root[C]) runEnter(stateIdx uint8) {
	st := r.states[stateIdx]
	if h, ok := st.(PreHooks[C]); ok {
		h.PreEnter(r.ctx)
	}
	r.log(stateIdx, MethodEnter)
	st.Enter(r.ctx)
	if h, ok := st.(PostHooks[C]); ok {
		h.PostEnter(r.ctx)
	}
}

// runLeave invokes Leave, wrapped by PreHooks/PostHooks if the state
// implements them.
func (r *Root[C]) runLeave(stateIdx uint8) {
	st := r.states[stateIdx]
	if h, ok := st.(PreHooks[C]); ok {
		h.PreLeave(r.ctx)
	}
	r.log(stateIdx, MethodLeave)
	st.Leave(r.ctx)
	if h, ok := st.(PostHooks[C]); ok {
		h.PostLeave(r.ctx)
	}
}

// ---- Control ----

func (r *Root[C]) requestChangeTo(tag Tag) {
	r.enqueue(request{tag: tag, kind: RequestRestart})
}

func (r *Root[C]) requestResume(tag Tag) {
	r.enqueue(request{tag: tag, kind: RequestResume})
}

func (r *Root[C]) requestSchedule(tag Tag) {
	r.enqueue(request{tag: tag, kind: RequestSchedule})
}

func (r *Root[C]) enqueue(req request) {
	if _, ok := r.tagIndex[req.tag]; !ok {
		panicUnknownTag(req.tag)
	}
	r.queue.Push(req)
	r.requestCount++
}

// RequestCount reports how many transition requests have been queued since
// the current resolution pass began.
func (r *Root[C]) RequestCount() int {
	return r.requestCount
}

// SubstitutionOverflows reports how many times, across the lifetime of this
// Root, the resolution loop hit MaxSubstitutions and discarded every pending
// request instead of looping forever.
func (r *Root[C]) SubstitutionOverflows() int {
	return r.subOverflows
}

// ---- public API ----

// IsActive reports whether T is currently part of the active configuration:
// every composite ancestor of T, from T's own parent up to the apex, has T's
// branch selected. Orthogonal ancestors are transparent since every one of
// their children is always active.
func IsActive[T any, C any](r *Root[C]) bool {
	return isState[T](r, func(f fork, prong uint8) bool { return f.active == prong })
}

// IsResumable reports whether T is the prong that would be (re)entered the
// next time its nearest composite ancestor processes a Resume request.
func IsResumable[T any, C any](r *Root[C]) bool {
	return isState[T](r, func(f fork, prong uint8) bool { return f.resumable == prong })
}

func isState[T any, C any](r *Root[C], match func(f fork, prong uint8) bool) bool {
	tag := tagOf[T]()
	idx, ok := r.tagIndex[tag]
	if !ok {
		panicUnknownTag(tag)
	}
	par := r.stateParents[idx]
	for par.forkIdx != NoIndex {
		f := r.forks[par.forkIdx]
		if f.kind == forkComposite {
			if !match(f, par.prong) {
				return false
			}
		}
		idx = r.forkHeadState(par.forkIdx)
		par = r.stateParents[idx]
	}
	return true
}

// forkHeadState returns the state index that owns forkIdx (the head of the
// composite or orthogonal region the fork belongs to).
func (r *Root[C]) forkHeadState(forkIdx uint8) uint8 {
	for idx, fi := range r.stateForkIdx {
		if fi == forkIdx {
			return uint8(idx)
		}
	}
	return NoIndex
}

// Update runs one tick: every active state's Update, bottom-up, then every
// active state's Transition, bottom-up, then resolves whatever transition
// requests were queued. It returns ErrClosed if Close has already run.
func (r *Root[C]) Update() error {
	if r.closed {
		return ErrClosed
	}
	r.updateRecursive(0)
	r.transitionRecursive(0)
	r.resolve()
	r.walkActivity(0, true)
	return nil
}

// React dispatches event to every active state, bottom-up, then resolves
// whatever transition requests the event produced. It returns ErrClosed if
// Close has already run.
func (r *Root[C]) React(event any) error {
	if r.closed {
		return ErrClosed
	}
	r.reactRecursive(0, event)
	r.resolve()
	r.walkActivity(0, true)
	return nil
}

// Close deactivates every currently active state, bottom-up, in reverse of
// how it was entered. A Root must not be used after Close: Update and React
// both return ErrClosed once it has run.
func (r *Root[C]) Close() {
	if r.closed {
		return
	}
	r.leaveRecursive(0)
	r.closed = true
}

// ---- lifecycle passes ----

func (r *Root[C]) enterRecursive(stateIdx uint8) {
	r.runEnter(stateIdx)

	forkIdx := r.stateForkIdx[stateIdx]
	if forkIdx == NoIndex {
		return
	}
	f := &r.forks[forkIdx]
	switch f.kind {
	case forkComposite:
		f.active = 0
		r.enterRecursive(r.forkProngState[forkIdx][0])
	case forkOrthogonal:
		for p := uint8(0); p < f.arity; p++ {
			r.enterRecursive(r.forkProngState[forkIdx][p])
		}
	}
}

func (r *Root[C]) leaveRecursive(stateIdx uint8) {
	forkIdx := r.stateForkIdx[stateIdx]
	if forkIdx != NoIndex {
		f := &r.forks[forkIdx]
		switch f.kind {
		case forkComposite:
			r.leaveRecursive(r.forkProngState[forkIdx][f.active])
		case forkOrthogonal:
			for p := f.arity; p > 0; p-- {
				r.leaveRecursive(r.forkProngState[forkIdx][p-1])
			}
		}
	}

	r.runLeave(stateIdx)
}

func (r *Root[C]) updateRecursive(stateIdx uint8) {
	forkIdx := r.stateForkIdx[stateIdx]
	if forkIdx != NoIndex {
		f := &r.forks[forkIdx]
		switch f.kind {
		case forkComposite:
			r.updateRecursive(r.forkProngState[forkIdx][f.active])
		case forkOrthogonal:
			for p := uint8(0); p < f.arity; p++ {
				r.updateRecursive(r.forkProngState[forkIdx][p])
			}
		}
	}

	r.log(stateIdx, MethodUpdate)
	r.states[stateIdx].Update(r.ctx)
}

func (r *Root[C]) transitionRecursive(stateIdx uint8) {
	forkIdx := r.stateForkIdx[stateIdx]
	if forkIdx != NoIndex {
		f := &r.forks[forkIdx]
		switch f.kind {
		case forkComposite:
			r.transitionRecursive(r.forkProngState[forkIdx][f.active])
		case forkOrthogonal:
			for p := uint8(0); p < f.arity; p++ {
				r.transitionRecursive(r.forkProngState[forkIdx][p])
			}
		}
	}

	r.log(stateIdx, MethodTransition)
	r.states[stateIdx].Transition(r.ctx, r)
}

func (r *Root[C]) reactRecursive(stateIdx uint8, event any) {
	forkIdx := r.stateForkIdx[stateIdx]
	if forkIdx != NoIndex {
		f := &r.forks[forkIdx]
		switch f.kind {
		case forkComposite:
			r.reactRecursive(r.forkProngState[forkIdx][f.active], event)
		case forkOrthogonal:
			for p := uint8(0); p < f.arity; p++ {
				r.reactRecursive(r.forkProngState[forkIdx][p], event)
			}
		}
	}

	r.log(stateIdx, MethodReact)
	r.states[stateIdx].React(r.ctx, event, r)
}

func (r *Root[C]) substituteRecursive(stateIdx uint8) {
	r.log(stateIdx, MethodSubstitute)
	r.states[stateIdx].Substitute(r.ctx, r)

	forkIdx := r.stateForkIdx[stateIdx]
	if forkIdx == NoIndex {
		return
	}
	f := r.forks[forkIdx]
	switch f.kind {
	case forkComposite:
		prong := f.active
		if f.requested != NoIndex {
			prong = f.requested
		}
		r.substituteRecursive(r.forkProngState[forkIdx][prong])
	case forkOrthogonal:
		for p := uint8(0); p < f.arity; p++ {
			r.substituteRecursive(r.forkProngState[forkIdx][p])
		}
	}
}

// ---- request resolution ----

func (r *Root[C]) resolve() {
	if r.queue.Len() == 0 {
		return
	}
	r.drainQueueIntoForks()

	for {
		r.requestCount = 0
		r.substituteRecursive(0)
		if r.queue.Len() == 0 {
			break
		}
		r.substitutions++
		if r.substitutions > r.maxSubstitutions {
			r.subOverflows++
			r.queue.Clear()
			r.discardRequested()
			r.substitutions = 0
			r.requestCount = 0
			return
		}
		r.drainQueueIntoForks()
	}
	r.substitutions = 0
	r.requestCount = 0

	r.changeToRequestedRecursive(0)
}

// discardRequested resets every fork's pending request, leaving the active
// configuration untouched. It runs when the substitution guard protocol
// overflows MaxSubstitutions: the states involved cannot agree on a
// destination this tick, so the tick ends with whatever was active before
// it started rather than committing an arbitrary in-progress redirect.
func (r *Root[C]) discardRequested() {
	for i := range r.forks {
		r.forks[i].requested = NoIndex
	}
}

func (r *Root[C]) drainQueueIntoForks() {
	for {
		req, ok := r.queue.Pop()
		if !ok {
			return
		}
		r.applyRequest(req)
	}
}

func (r *Root[C]) applyRequest(req request) {
	targetIdx, ok := r.tagIndex[req.tag]
	if !ok {
		panicUnknownTag(req.tag)
	}

	par := r.stateParents[targetIdx]
	prong := par.prong
	forkIdx := par.forkIdx
	for forkIdx != NoIndex {
		f := &r.forks[forkIdx]
		if f.kind == forkComposite {
			if req.kind == RequestSchedule {
				f.resumable = prong
			} else {
				f.requested = prong
			}
		}
		headIdx := r.forkHeadState(forkIdx)
		parentOfFork := r.stateParents[headIdx]
		prong = parentOfFork.prong
		forkIdx = parentOfFork.forkIdx
	}

	if req.kind == RequestSchedule {
		return
	}

	targetForkIdx := r.stateForkIdx[targetIdx]
	if targetForkIdx != NoIndex {
		r.cascadeRequested(targetForkIdx, req.kind == RequestRestart)
	}
}

func (r *Root[C]) cascadeRequested(forkIdx uint8, fresh bool) {
	f := &r.forks[forkIdx]

	selected := uint8(0)
	if !fresh && f.resumable != NoIndex {
		selected = f.resumable
	}

	switch f.kind {
	case forkComposite:
		f.requested = selected
		childIdx := r.forkProngState[forkIdx][selected]
		if childForkIdx := r.stateForkIdx[childIdx]; childForkIdx != NoIndex {
			r.cascadeRequested(childForkIdx, fresh)
		}
	case forkOrthogonal:
		for p := uint8(0); p < f.arity; p++ {
			childIdx := r.forkProngState[forkIdx][p]
			if childForkIdx := r.stateForkIdx[childIdx]; childForkIdx != NoIndex {
				r.cascadeRequested(childForkIdx, fresh)
			}
		}
	}
}

func (r *Root[C]) changeToRequestedRecursive(stateIdx uint8) {
	forkIdx := r.stateForkIdx[stateIdx]
	if forkIdx == NoIndex {
		return
	}
	f := &r.forks[forkIdx]

	switch f.kind {
	case forkComposite:
		req := f.requested
		if req == NoIndex || req == f.active {
			f.requested = NoIndex
			r.changeToRequestedRecursive(r.forkProngState[forkIdx][f.active])
			return
		}
		oldActive := f.active
		r.leaveRecursive(r.forkProngState[forkIdx][oldActive])
		f.resumable = oldActive
		f.active = req
		f.requested = NoIndex
		r.enterRequestedRecursive(r.forkProngState[forkIdx][f.active])
	case forkOrthogonal:
		for p := uint8(0); p < f.arity; p++ {
			r.changeToRequestedRecursive(r.forkProngState[forkIdx][p])
		}
	}
}

func (r *Root[C]) enterRequestedRecursive(stateIdx uint8) {
	r.runEnter(stateIdx)

	forkIdx := r.stateForkIdx[stateIdx]
	if forkIdx == NoIndex {
		return
	}
	f := &r.forks[forkIdx]
	switch f.kind {
	case forkComposite:
		prong := uint8(0)
		if f.requested != NoIndex {
			prong = f.requested
		} else if f.resumable != NoIndex {
			prong = f.resumable
		}
		f.active = prong
		f.requested = NoIndex
		r.enterRequestedRecursive(r.forkProngState[forkIdx][prong])
	case forkOrthogonal:
		for p := uint8(0); p < f.arity; p++ {
			r.enterRequestedRecursive(r.forkProngState[forkIdx][p])
		}
	}
}
