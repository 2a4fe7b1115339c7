package report

import (
	"bytes"
	"fmt"
)

// ExportDOT renders entries as Graphviz DOT source, grounded in
// statechartx's internal/production.DefaultVisualizer.ExportDOT: composite
// and orthogonal regions become labeled clusters, leaves become boxes, and
// active states are filled to highlight them at a glance.
func ExportDOT(modelName string, entries []Entry) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %s {\n", modelName)
	buf.WriteString("  rankdir=TB;\n  node [shape=box, fontsize=10, style=rounded];\n")

	root := buildTree(entries)
	if root != nil {
		writeDOTNode(&buf, root, 0)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeDOTNode(buf *bytes.Buffer, n *treeNode, cluster int) {
	if len(n.children) == 0 {
		style := ""
		if n.IsActive {
			style = ` style="rounded,filled" fillcolor=lightgreen`
		}
		fmt.Fprintf(buf, "  %q [label=%q%s];\n", nodeID(n, cluster), n.Name, style)
		return
	}

	fmt.Fprintf(buf, "  subgraph cluster_%d {\n", cluster)
	style := ""
	if n.IsActive {
		style = ` style=filled fillcolor=orange`
	}
	fmt.Fprintf(buf, "    label=%q%s;\n", n.Name, style)
	for i, c := range n.children {
		writeDOTNode(buf, c, cluster*10+i+1)
	}
	buf.WriteString("  }\n")
}

func nodeID(n *treeNode, cluster int) string {
	return fmt.Sprintf("%s_%d", n.Name, cluster)
}
