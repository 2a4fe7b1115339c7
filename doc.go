// Package hfsm provides a hierarchical finite state machine (HFSM) engine for
// embedding inside a host application — typically a game loop or interactive
// simulation.
//
// A machine is a tree of states composed once, at build time, from two kinds
// of regions: composite regions (exactly one child active at a time, UML-style
// XOR) and orthogonal regions (every child active simultaneously, AND). Leaf
// and inner states receive lifecycle callbacks — Substitute, Enter, Update,
// Transition, React, Leave — and may request a transition to any state in the
// tree by its Go type. The machine resolves those requests cooperatively: every
// Update runs to completion against a consistent active configuration, and the
// substitution (guard) protocol is bounded so a chain of redirecting states
// cannot livelock the host.
//
// # Building a tree
//
//	type Idle struct{ hfsm.Base[*Game] }
//	type Playing struct{ hfsm.Base[*Game] }
//
//	apex := hfsm.Composite[*Game](&RootHead{}, hfsm.Leaf[*Game](&Idle{}), hfsm.Leaf[*Game](&Playing{}))
//	root, err := hfsm.New(game, apex)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer root.Close()
//
//	hfsm.ChangeTo[*Playing](root)
//	root.Update()
//	hfsm.IsActive[*Playing](root) // true
//
// # What this package is not
//
// The tree shape is fixed once Build/New has run; there is no dynamic
// reconfiguration at runtime. A single Root is not safe for concurrent use —
// the host must serialize Update, React, and request submission on one
// goroutine per instance, though distinct instances are fully independent.
// There is no built-in event bus, no wire format, and no CLI: this is a
// library, meant to be driven by the host's own tick or event loop.
package hfsm
