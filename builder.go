package sublayout

// layouts concatenates the nodes of several layouts.
type layouts []Layout

func (ls layouts) Nodes() []*Node {
	var out []*Node
	for _, l := range ls {
		if isNil(l) {
			continue
		}
		out = append(out, l.Nodes()...)
	}
	return out
}

// Layouts combines sibling layouts, for example several independent roots.
func Layouts(ls ...Layout) Layout {
	return layouts(ls)
}

// Empty contributes no nodes.
func Empty() Layout {
	return layouts(nil)
}

// If contributes then when cond holds and nothing otherwise.
func If(cond bool, then Layout) Layout {
	if cond {
		return OptionalLayout(then)
	}
	return Empty()
}

// IfElse contributes exactly one of the two branches.
func IfElse(cond bool, then, otherwise Layout) Layout {
	if cond {
		return OptionalLayout(then)
	}
	return OptionalLayout(otherwise)
}

// ForEach contributes the layout built for each item, in slice order.
func ForEach[T any](items []T, fn func(i int, item T) Layout) Layout {
	out := make(layouts, 0, len(items))
	for i, item := range items {
		out = append(out, fn(i, item))
	}
	return out
}

// Optional contributes a node for v, or nothing when v is nil.
func Optional(v View) Layout {
	if isNil(v) {
		return Empty()
	}
	return Of(v)
}

// OptionalLayout contributes l, or nothing when l is nil.
func OptionalLayout(l Layout) Layout {
	if isNil(l) {
		return Empty()
	}
	return l
}

// SwitchCase is one arm of Switch.
type SwitchCase[K comparable] struct {
	key       K
	isDefault bool
	layout    Layout
}

// Case matches key.
func Case[K comparable](key K, l Layout) SwitchCase[K] {
	return SwitchCase[K]{key: key, layout: l}
}

// Default matches when no Case does.
func Default[K comparable](l Layout) SwitchCase[K] {
	return SwitchCase[K]{isDefault: true, layout: l}
}

// Switch contributes the first case whose key equals key, falling back to
// the default case, or nothing.
func Switch[K comparable](key K, cases ...SwitchCase[K]) Layout {
	var fallback Layout
	for _, c := range cases {
		if c.isDefault {
			if fallback == nil {
				fallback = c.layout
			}
			continue
		}
		if c.key == key {
			return OptionalLayout(c.layout)
		}
	}
	return OptionalLayout(fallback)
}

// GroupOption controls how a group's views join an arranging superview.
type GroupOption int

const (
	// GroupArranged adds the views to the superview's arranged list when it has one.
	GroupArranged GroupOption = iota
	// GroupNotArranged attaches the views structurally only.
	GroupNotArranged
)

// Group combines sibling layouts. After expansion it is indistinguishable
// from writing the layouts directly.
func Group(children ...Layout) Layout {
	return GroupWithOption(GroupArranged, children...)
}

// GroupWithOption is Group with an explicit arrangement option.
// A not-arranged group survives expansion as a viewless passthrough node.
func GroupWithOption(opt GroupOption, children ...Layout) Layout {
	if opt != GroupNotArranged {
		return layouts(children)
	}
	return (&Node{notArranged: true}).Sublayout(children...)
}

// Module is a reusable named sub-tree.
type Module interface {
	Layout() Layout
}

// Inline expands m at the call site. A nil module contributes nothing.
func Inline(m Module) Layout {
	if isNil(m) {
		return Empty()
	}
	return OptionalLayout(m.Layout())
}
