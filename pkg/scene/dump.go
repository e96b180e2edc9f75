package scene

// Tree renders the live scene graph, one line per view, starting from every
// registered view that has no superview but has subviews.
// Arranged subviews of a stack are marked with "*".
func (s *Scene) Tree() []string {
	var out []string
	for _, v := range s.order {
		if v.parent == nil && len(v.children) > 0 {
			out = append(out, dumpView(v, false, "", "")...)
		}
	}
	return out
}

// Dump renders the live subtree rooted at v.
func Dump(v *View) []string {
	return dumpView(v, false, "", "")
}

func dumpView(v *View, arranged bool, indent, childIndent string) []string {
	label := v.id
	if v.stack {
		label += " (stack)"
	}
	if arranged {
		label += " *"
	}
	lines := []string{indent + label}

	for i, child := range v.children {
		isArranged := v.stack && indexOf(v.arranged, child) >= 0
		if i == len(v.children)-1 {
			lines = append(lines, dumpView(child, isArranged, childIndent+"└─ ", childIndent+"   ")...)
		} else {
			lines = append(lines, dumpView(child, isArranged, childIndent+"├─ ", childIndent+"│  ")...)
		}
	}
	return lines
}
