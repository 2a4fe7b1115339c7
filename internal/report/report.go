// Package report renders a machine's structure (as reported by
// hfsm.Root.Structure) into formats useful outside the process: a
// human-readable YAML snapshot, a PlantUML state diagram, and a Graphviz DOT
// graph.
//
// The core hfsm package has no dependency on any of these formats; these
// adapters exist precisely so the core stays dependency-light while still
// giving a host application a way to inspect or visualize a running machine.
package report

import hfsm "github.com/hzj-learn/HFSM"

// Entry is the shape these adapters render: one state per entry, in the
// pre-order hfsm.Root.Structure emits, annotated with active status and
// nesting depth.
type Entry = hfsm.StructureEntry

// treeNode, built by buildTree, reconstructs parent/child relationships from
// a flat, depth-annotated entry slice produced in pre-order, the same order
// hfsm.Root.Structure emits.
type treeNode struct {
	Entry
	children []*treeNode
}

func buildTree(entries []Entry) *treeNode {
	if len(entries) == 0 {
		return nil
	}
	root := &treeNode{Entry: entries[0]}
	stack := []*treeNode{root}
	for _, e := range entries[1:] {
		for len(stack) > 0 && stack[len(stack)-1].Depth >= e.Depth {
			stack = stack[:len(stack)-1]
		}
		n := &treeNode{Entry: e}
		parent := stack[len(stack)-1]
		parent.children = append(parent.children, n)
		stack = append(stack, n)
	}
	return root
}
