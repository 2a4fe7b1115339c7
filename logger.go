package hfsm

import "github.com/google/uuid"

// Method identifies which lifecycle callback a Logger is being told about.
type Method uint8

const (
	MethodSubstitute Method = iota
	MethodEnter
	MethodUpdate
	MethodTransition
	MethodReact
	MethodLeave
)

func (m Method) String() string {
	switch m {
	case MethodSubstitute:
		return "Substitute"
	case MethodEnter:
		return "Enter"
	case MethodUpdate:
		return "Update"
	case MethodTransition:
		return "Transition"
	case MethodReact:
		return "React"
	case MethodLeave:
		return "Leave"
	default:
		return "Unknown"
	}
}

// Logger receives one record per invoked lifecycle callback, across every
// state in the tree. The core has no logging dependency of its own; adapters
// such as internal/otellog implement this interface against a real backend.
//
// stateName is whatever the state returned from its own Name() method, or the
// Go type name if the state didn't override it. Implementations must not
// retain stateTag beyond the call, since Tag is a reflect.Type and retaining
// arbitrary numbers of them defeats Go's ability to ever unload the type's
// package (not a concern in practice, but cheap to avoid).
type Logger interface {
	Record(instance uuid.UUID, stateTag Tag, stateName string, method Method, methodName string)
}

// NopLogger discards every record. It is the default when no logger is
// configured via WithLogger.
type NopLogger struct{}

func (NopLogger) Record(uuid.UUID, Tag, string, Method, string) {}
