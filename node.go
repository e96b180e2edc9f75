package sublayout

// Layout is anything that collapses into an ordered sequence of layout nodes.
// Conditionals, loops, groups and modules all implement it, and none of them
// leaves a trace in the nodes they produce.
type Layout interface {
	Nodes() []*Node
}

// Node is one node of a declarative layout tree: an optional view, the
// anchors that position it, ordered children and an optional config action.
//
// A node without a view passes its children through to the nearest ancestor
// that has one.
type Node struct {
	view        View
	anchors     []Descriptor
	children    []*Node
	config      ConfigFunc
	notArranged bool
}

var _ Layout = (*Node)(nil)

// Of creates a node bound to v. A nil v yields a viewless passthrough node.
func Of(v View) *Node {
	if isNil(v) {
		return &Node{}
	}
	return &Node{view: v}
}

// Nodes returns the node itself.
func (n *Node) Nodes() []*Node {
	if n == nil {
		return nil
	}
	return []*Node{n}
}

// Sublayout appends children. Repeated calls concatenate.
func (n *Node) Sublayout(children ...Layout) *Node {
	for _, child := range children {
		if isNil(child) {
			continue
		}
		n.children = append(n.children, child.Nodes()...)
	}
	return n
}

// Anchors appends constraint descriptors for the node's view.
func (n *Node) Anchors(exprs ...AnchorExpr) *Node {
	for _, expr := range exprs {
		n.anchors = append(n.anchors, expr.Descriptors()...)
	}
	return n
}

// AnchorDescriptors appends already built descriptors.
func (n *Node) AnchorDescriptors(ds ...Descriptor) *Node {
	n.anchors = append(n.anchors, ds...)
	return n
}

// Config sets the action applied to the view on every pass.
func (n *Node) Config(fn ConfigFunc) *Node {
	n.config = fn
	return n
}

// View returns the bound view, or nil for a passthrough node.
func (n *Node) View() View {
	return n.view
}

// Children returns the child nodes in declaration order.
func (n *Node) Children() []*Node {
	return n.children
}

// Descriptors returns the node's unresolved anchor descriptors.
func (n *Node) Descriptors() []Descriptor {
	return n.anchors
}

// NotArranged reports whether views directly under this passthrough node
// stay out of their superview's arranged list.
func (n *Node) NotArranged() bool {
	return n.notArranged
}

func (n *Node) description() string {
	if n.view != nil {
		return n.view.Identifier()
	}
	if n.notArranged {
		return "Group(notArranged)"
	}
	return "Group"
}

// Configure adapts a typed config function. Views of another type are skipped.
func Configure[T View](fn func(T)) ConfigFunc {
	return func(v View) {
		if t, ok := v.(T); ok {
			fn(t)
		}
	}
}
