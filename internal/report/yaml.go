package report

import "gopkg.in/yaml.v3"

// yamlNode mirrors the nesting of a machine's tree with yaml.v3 tags,
// grounded in statechartx's yaml-tagged MachineSnapshot: the host can diff
// two of these across a deploy, or store one alongside a bug report.
type yamlNode struct {
	Name     string     `yaml:"name"`
	Active   bool       `yaml:"active"`
	Children []yamlNode `yaml:"children,omitempty"`
}

func toYAMLNode(n *treeNode) yamlNode {
	out := yamlNode{Name: n.Name, Active: n.IsActive}
	for _, c := range n.children {
		out.Children = append(out.Children, toYAMLNode(c))
	}
	return out
}

// ExportYAML renders entries as a nested YAML document, one node per state.
func ExportYAML(entries []Entry) ([]byte, error) {
	root := buildTree(entries)
	if root == nil {
		return yaml.Marshal(yamlNode{})
	}
	return yaml.Marshal(toYAMLNode(root))
}
