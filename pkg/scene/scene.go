package scene

import (
	"fmt"

	"github.com/grindlemire/go-sublayout"
)

var _ sublayout.ArrangedHost = (*Scene)(nil)

// OpKind names a host mutation.
type OpKind string

const (
	OpAttach     OpKind = "attach"
	OpMove       OpKind = "move"
	OpDetach     OpKind = "detach"
	OpArrange    OpKind = "arrange"
	OpUnarrange  OpKind = "unarrange"
	OpActivate   OpKind = "activate"
	OpDeactivate OpKind = "deactivate"
	OpConfig     OpKind = "config"
)

// Op is one recorded host mutation.
type Op struct {
	Kind      OpKind
	View      string
	Superview string
	Index     int
	// Constraint is set for activate and deactivate.
	Constraint string
}

func (o Op) String() string {
	switch o.Kind {
	case OpAttach, OpMove, OpArrange:
		return fmt.Sprintf("%s %s -> %s[%d]", o.Kind, o.View, o.Superview, o.Index)
	case OpDetach, OpUnarrange:
		return fmt.Sprintf("%s %s from %s", o.Kind, o.View, o.Superview)
	case OpActivate, OpDeactivate:
		return fmt.Sprintf("%s %s", o.Kind, o.Constraint)
	default:
		return fmt.Sprintf("%s %s", o.Kind, o.View)
	}
}

// Constraint is a constraint handle owned by a Scene.
type Constraint struct {
	id          int
	descriptor  sublayout.Descriptor
	active      bool
	activations int
}

// ID is unique within the scene.
func (c *Constraint) ID() int {
	return c.id
}

// Descriptor returns the resolved descriptor the constraint was built from.
func (c *Constraint) Descriptor() sublayout.Descriptor {
	return c.descriptor
}

// IsActive reports whether the constraint is live.
func (c *Constraint) IsActive() bool {
	return c.active
}

func (c *Constraint) String() string {
	return fmt.Sprintf("#%d %s", c.id, c.descriptor)
}

// Scene is an in-memory host implementing sublayout.ArrangedHost.
// It is not safe for concurrent use.
type Scene struct {
	views       map[string]*View
	order       []*View
	constraints []*Constraint
	ops         []Op
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{views: make(map[string]*View)}
}

// View returns the registered view with id, creating it with opts when missing.
// Options are ignored for views that already exist.
func (s *Scene) View(id string, opts ...Option) *View {
	if v, ok := s.views[id]; ok {
		return v
	}
	v := NewView(id, opts...)
	s.views[id] = v
	s.order = append(s.order, v)
	return v
}

// Lookup returns the registered view with id.
func (s *Scene) Lookup(id string) (*View, bool) {
	v, ok := s.views[id]
	return v, ok
}

// Views returns registered views in creation order.
func (s *Scene) Views() []*View {
	return s.order
}

// Ops returns the recorded mutations in order.
func (s *Scene) Ops() []Op {
	return s.ops
}

// ResetOps clears the recorded mutations.
func (s *Scene) ResetOps() {
	s.ops = nil
}

// Count returns how many recorded mutations have kind.
func (s *Scene) Count(kind OpKind) int {
	n := 0
	for _, op := range s.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Constraints returns every constraint created so far.
func (s *Scene) Constraints() []*Constraint {
	return s.constraints
}

// ActiveConstraints returns the live constraints, optionally limited to
// those whose source item is one of views.
func (s *Scene) ActiveConstraints(views ...*View) []*Constraint {
	var out []*Constraint
	for _, c := range s.constraints {
		if !c.active {
			continue
		}
		if len(views) == 0 {
			out = append(out, c)
			continue
		}
		for _, v := range views {
			if item, ok := c.descriptor.Item.(*View); ok && item == v {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// --- sublayout.Host ---

// Superview returns the current parent of v, or nil when v is detached.
func (s *Scene) Superview(v sublayout.View) sublayout.View {
	sv := asView(v)
	if sv == nil || sv.parent == nil {
		return nil
	}
	return sv.parent
}

// Subviews returns the children of v in sibling order.
func (s *Scene) Subviews(v sublayout.View) []sublayout.View {
	sv := asView(v)
	if sv == nil {
		return nil
	}
	return toHost(sv.children)
}

// Attach inserts v under superview at index, moving it within or between
// parents as needed. It panics if the move would create a cycle.
func (s *Scene) Attach(v, superview sublayout.View, index int) {
	child, parent := asView(v), asView(superview)
	if child == nil || parent == nil {
		return
	}
	if parent.IsDescendant(child) {
		panic(fmt.Sprintf("scene: attaching %s under %s would create a cycle", child.id, parent.id))
	}

	if child.parent == parent {
		parent.children, _ = removeFrom(parent.children, child)
		parent.insertChild(child, index)
		child.moveCount++
		s.record(Op{Kind: OpMove, View: child.id, Superview: parent.id, Index: indexOf(parent.children, child)})
		return
	}

	if child.parent != nil {
		child.parent.removeChild(child)
	}
	parent.insertChild(child, index)
	child.attachCount++
	s.record(Op{Kind: OpAttach, View: child.id, Superview: parent.id, Index: indexOf(parent.children, child)})
}

// Detach removes v from its parent. Detached views are left untouched.
func (s *Scene) Detach(v sublayout.View) {
	child := asView(v)
	if child == nil || child.parent == nil {
		return
	}
	parent := child.parent
	parent.removeChild(child)
	child.detachCount++
	s.record(Op{Kind: OpDetach, View: child.id, Superview: parent.id})
}

// CreateConstraint registers an inactive constraint for d.
func (s *Scene) CreateConstraint(d sublayout.Descriptor) sublayout.Constraint {
	c := &Constraint{id: len(s.constraints) + 1, descriptor: d}
	s.constraints = append(s.constraints, c)
	return c
}

// SetActive activates or deactivates a constraint created by this scene.
// Handles from other hosts and no-op transitions are ignored.
func (s *Scene) SetActive(h sublayout.Constraint, active bool) {
	c, ok := h.(*Constraint)
	if !ok || c.active == active {
		return
	}
	c.active = active
	kind := OpDeactivate
	if active {
		c.activations++
		kind = OpActivate
	}
	s.record(Op{Kind: kind, Constraint: c.String()})
}

// ApplyConfig runs fn against v and counts the application.
func (s *Scene) ApplyConfig(v sublayout.View, fn sublayout.ConfigFunc) {
	if fn == nil {
		return
	}
	fn(v)
	if sv := asView(v); sv != nil {
		sv.configCount++
		s.record(Op{Kind: OpConfig, View: sv.id})
	}
}

// --- sublayout.ArrangedHost ---

// CanArrange reports whether v keeps an arranged list.
func (s *Scene) CanArrange(v sublayout.View) bool {
	sv := asView(v)
	return sv != nil && sv.stack
}

// ArrangedSubviews returns the arranged list of v in order.
func (s *Scene) ArrangedSubviews(v sublayout.View) []sublayout.View {
	sv := asView(v)
	if sv == nil {
		return nil
	}
	return toHost(sv.arranged)
}

// InsertArranged places v at index in the arranged list of superview. v must
// already be a child of a stack superview.
func (s *Scene) InsertArranged(v, superview sublayout.View, index int) {
	child, parent := asView(v), asView(superview)
	if child == nil || parent == nil || !parent.stack || child.parent != parent {
		return
	}
	parent.arranged, _ = removeFrom(parent.arranged, child)
	parent.arranged = insertAt(parent.arranged, child, index)
	s.record(Op{Kind: OpArrange, View: child.id, Superview: parent.id, Index: indexOf(parent.arranged, child)})
}

// RemoveArranged drops v from the arranged list of superview if present.
func (s *Scene) RemoveArranged(v, superview sublayout.View) {
	child, parent := asView(v), asView(superview)
	if child == nil || parent == nil {
		return
	}
	var ok bool
	if parent.arranged, ok = removeFrom(parent.arranged, child); ok {
		s.record(Op{Kind: OpUnarrange, View: child.id, Superview: parent.id})
	}
}

func (s *Scene) record(op Op) {
	s.ops = append(s.ops, op)
}

func asView(v sublayout.View) *View {
	sv, _ := v.(*View)
	return sv
}

func toHost(views []*View) []sublayout.View {
	out := make([]sublayout.View, len(views))
	for i, v := range views {
		out[i] = v
	}
	return out
}
