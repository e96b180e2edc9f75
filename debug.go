package sublayout

// RenderTree formats l as box-drawing lines, one per node. With anchors
// enabled, each node's descriptors follow it, indented one level deeper.
//
//	root
//	└─ red
//	   ├─ button
//	   └─ label
func RenderTree(l Layout, withAnchors bool) []string {
	if isNil(l) {
		return nil
	}
	var out []string
	for _, n := range l.Nodes() {
		out = append(out, renderNode(n, withAnchors, "", "")...)
	}
	return out
}

func renderNode(n *Node, withAnchors bool, indent, childIndent string) []string {
	lines := []string{indent + n.description()}

	if withAnchors && len(n.anchors) > 0 {
		anchorIndent := childIndent + "      "
		if len(n.children) > 0 {
			anchorIndent = childIndent + "│     "
		}
		for _, d := range n.anchors {
			if d.Item == nil {
				d.Item = n.view
			}
			lines = append(lines, anchorIndent+d.String())
		}
	}

	for i, child := range n.children {
		if i == len(n.children)-1 {
			lines = append(lines, renderNode(child, withAnchors, childIndent+"└─ ", childIndent+"   ")...)
		} else {
			lines = append(lines, renderNode(child, withAnchors, childIndent+"├─ ", childIndent+"│  ")...)
		}
	}
	return lines
}
