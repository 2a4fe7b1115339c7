package hfsm

import (
	"errors"
	"fmt"
)

// Construction-time errors. These are returned from Build/New, never panicked,
// since a malformed tree is an ordinary configuration mistake a caller should
// be able to recover from.
var (
	// ErrTooManyStates is returned when a tree has more than 255 states. The
	// dense registries pack state and fork indices into a single byte.
	ErrTooManyStates = errors.New("hfsm: tree has more than 255 states")

	// ErrTooManyForks is returned when a tree has more than 255 composite or
	// orthogonal regions, for the same reason as ErrTooManyStates.
	ErrTooManyForks = errors.New("hfsm: tree has more than 255 forks")

	// ErrEmptyRegion is returned when a composite or orthogonal region is
	// built with zero children.
	ErrEmptyRegion = errors.New("hfsm: region has no children")

	// ErrDuplicateTag is returned when the same state type appears twice in
	// one tree. A Tag must identify exactly one position in the tree.
	ErrDuplicateTag = errors.New("hfsm: state type used more than once in tree")

	// ErrNilContext is returned by New when the supplied context is the zero
	// value of a pointer or interface type.
	ErrNilContext = errors.New("hfsm: context must not be nil")

	// ErrClosed is returned by Update and React once Close has been called.
	// A closed Root has already left every state and must not be ticked
	// again.
	ErrClosed = errors.New("hfsm: root is closed")
)

func wrapf(err error, format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// unknownTagError is a runtime programmer error: the caller asked to
// transition to a type that was never registered in the tree. Unlike
// construction errors this can only happen after the tree is already built
// and running, so it panics rather than threading an error return through
// every callback.
type unknownTagError struct {
	tag Tag
}

func (e *unknownTagError) Error() string {
	return fmt.Sprintf("hfsm: state %s is not part of this machine", e.tag)
}

func panicUnknownTag(tag Tag) {
	panic(&unknownTagError{tag: tag})
}
