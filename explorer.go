package sublayout

// Component is the desired state of one view after flattening: where it is
// attached, which constraints it owns and how it is configured.
type Component struct {
	View      View
	Superview View
	// Anchors are resolved: Item is View and superview-relative targets
	// point at Superview.
	Anchors []Descriptor
	Config  ConfigFunc
	// Arranged is false for views declared inside a not-arranged group.
	Arranged bool
}

// TraversalFunc is called for every node, viewless ones included, with the
// superview the node's view would be attached to.
type TraversalFunc func(n *Node, superview View)

// Traverse walks l depth-first in declaration order.
func Traverse(l Layout, superview View, fn TraversalFunc) {
	if isNil(l) {
		return
	}
	for _, n := range l.Nodes() {
		walk(n, superview, true, func(n *Node, superview View, _ bool) {
			fn(n, superview)
		})
	}
}

func walk(n *Node, superview View, arranged bool, fn func(n *Node, superview View, arranged bool)) {
	if n == nil {
		return
	}
	fn(n, superview, arranged)

	next, childArranged := superview, arranged && !n.notArranged
	if n.view != nil {
		next, childArranged = n.view, true
	}
	for _, child := range n.children {
		walk(child, next, childArranged, fn)
	}
}

// Flatten resolves l into components in depth-first pre-order.
// rootSuperview, which may be nil, is the superview of top-level views.
//
// A view may be declared more than once when at most one declaration places
// it under a superview, which lets a subtree be written as a separate root:
//
//	Layouts(
//		Of(root).Sublayout(Of(child)),
//		Of(child).Sublayout(Of(button)),
//	)
//
// The declarations merge into one component at the first position, with
// their anchors concatenated and the last config action winning.
//
// Flatten fails with a configuration error when a viewless node carries
// anchors, a view is placed under two superviews, or an anchor targets a
// view that is not in the tree.
func Flatten(l Layout, rootSuperview View) ([]Component, error) {
	var (
		components []Component
		err        error
	)

	if isNil(rootSuperview) {
		rootSuperview = nil
	}
	index := make(map[View]int)

	visit := func(n *Node, superview View, arranged bool) {
		if err != nil {
			return
		}
		if n.view == nil {
			if len(n.anchors) > 0 {
				err = newError(ErrCodeAnchorsWithoutView,
					"%d anchor(s) declared on a node without a view under %s",
					len(n.anchors), viewName(superview, "the root"))
			}
			return
		}
		if rootSuperview != nil && sameView(n.view, rootSuperview) {
			err = newError(ErrCodeDuplicateView, "view %s is also the root superview", n.view.Identifier())
			return
		}

		i, seen := index[n.view]
		if !seen {
			index[n.view] = len(components)
			components = append(components, Component{
				View:      n.view,
				Superview: superview,
				Anchors:   n.anchors,
				Config:    n.config,
				Arranged:  arranged,
			})
			return
		}

		c := &components[i]
		if superview != nil {
			if c.Superview != nil {
				err = newError(ErrCodeDuplicateView, "view %s is placed under both %s and %s",
					n.view.Identifier(), c.Superview.Identifier(), superview.Identifier())
				return
			}
			c.Superview = superview
			c.Arranged = arranged
		}
		c.Anchors = append(append([]Descriptor(nil), c.Anchors...), n.anchors...)
		if n.config != nil {
			c.Config = n.config
		}
	}

	if !isNil(l) {
		for _, root := range l.Nodes() {
			walk(root, rootSuperview, true, visit)
		}
	}
	if err != nil {
		return nil, err
	}

	if err := checkCycles(components, index); err != nil {
		return nil, err
	}

	present := make(map[View]bool, len(components)+1)
	if rootSuperview != nil {
		present[rootSuperview] = true
	}
	for _, c := range components {
		present[c.View] = true
	}
	for i := range components {
		resolved, err := resolveAnchors(components[i], present)
		if err != nil {
			return nil, err
		}
		components[i].Anchors = resolved
	}
	return components, nil
}

func resolveAnchors(c Component, present map[View]bool) ([]Descriptor, error) {
	if len(c.Anchors) == 0 {
		return nil, nil
	}

	out := make([]Descriptor, len(c.Anchors))
	for i, d := range c.Anchors {
		if isNil(d.Item) {
			d.Item = c.View
		} else if !present[d.Item] {
			return nil, newError(ErrCodeDanglingAnchor,
				"anchor %s on %s references a view outside the layout", d, c.View.Identifier())
		}

		switch {
		case d.ToAttribute == NotAnAttribute:
			d.ToItem = nil
		case isNil(d.ToItem):
			if isNil(c.Superview) {
				return nil, newError(ErrCodeMissingSuperview,
					"anchor %s on %s targets the superview but the view has none", d, c.View.Identifier())
			}
			d.ToItem = c.Superview
		case !present[d.ToItem]:
			return nil, newError(ErrCodeDanglingAnchor,
				"anchor %s on %s references a view outside the layout", d, c.View.Identifier())
		}
		out[i] = d
	}
	return out, nil
}

// checkCycles rejects merged declarations that make a view its own ancestor.
func checkCycles(components []Component, index map[View]int) error {
	for _, c := range components {
		steps := 0
		for sv := c.Superview; sv != nil; steps++ {
			if sameView(sv, c.View) {
				return newError(ErrCodeCycle, "view %s is its own ancestor", c.View.Identifier())
			}
			i, ok := index[sv]
			if !ok || steps > len(components) {
				break
			}
			sv = components[i].Superview
		}
	}
	return nil
}
