package hfsm

import "reflect"

// Tag identifies a state by its Go type. Every state type embeds Base[C]
// exactly once, which gives it a unique Tag independent of name collisions
// across packages.
type Tag = reflect.Type

func tagOf[T any]() Tag {
	return reflect.TypeOf((*T)(nil)).Elem()
}
