package report

import (
	"fmt"
	"strings"
)

// ExportPlantUML renders entries as a PlantUML state diagram, grounded in
// go-hsm's pkg/plantuml generator: composite regions become brace-nested
// `state X { ... }` blocks, leaves become bare `state X` declarations, and
// the currently active leaf gets a note so a pasted diagram shows where
// execution is without needing the source beside it.
func ExportPlantUML(modelName string, entries []Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "@startuml %s\n", modelName)

	root := buildTree(entries)
	if root != nil {
		writePlantUMLNode(&b, root, 0)
	}

	b.WriteString("@enduml\n")
	return b.String()
}

func writePlantUMLNode(b *strings.Builder, n *treeNode, depth int) {
	indent := strings.Repeat(" ", depth*2)
	if len(n.children) == 0 {
		fmt.Fprintf(b, "%sstate %s\n", indent, n.Name)
		if n.IsActive {
			fmt.Fprintf(b, "%snote right of %s: active\n", indent, n.Name)
		}
		return
	}
	fmt.Fprintf(b, "%sstate %s {\n", indent, n.Name)
	for _, c := range n.children {
		writePlantUMLNode(b, c, depth+1)
	}
	fmt.Fprintf(b, "%s}\n", indent)
}
