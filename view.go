package sublayout

import "reflect"

// View is a host view referenced by a layout tree.
// Views are compared by identity, so implementations must be pointer types.
// The host owns the view; layout nodes only reference it.
type View interface {
	// Identifier names the view in diagnostics.
	Identifier() string
}

// Constraint is an opaque handle to a live host constraint.
// The value returned by Host.CreateConstraint must be comparable.
type Constraint any

// ConfigFunc mutates a view's properties. It is reapplied on every pass,
// so it must be idempotent.
type ConfigFunc func(View)

// AppendIndex asks Host.Attach to place the view after all existing subviews.
const AppendIndex = -1

// Host is the host toolkit's scene graph as seen by the reconciler.
type Host interface {
	// Superview returns the view's current parent, or nil when detached.
	Superview(v View) View
	// Subviews returns the view's children in sibling order.
	Subviews(v View) []View

	// Attach places v under superview at index, or appends when index is
	// AppendIndex. Attaching a view already under superview repositions it.
	Attach(v, superview View, index int)
	// Detach removes v from its superview.
	Detach(v View)

	// CreateConstraint builds an inactive constraint for d.
	CreateConstraint(d Descriptor) Constraint
	// SetActive toggles a constraint on or off.
	SetActive(c Constraint, active bool)

	// ApplyConfig runs fn against v.
	ApplyConfig(v View, fn ConfigFunc)
}

// ArrangedHost is implemented by hosts whose containers can keep an ordered
// list of arranged subviews, such as stack containers.
type ArrangedHost interface {
	Host

	// CanArrange reports whether v keeps an arranged subview list.
	CanArrange(v View) bool
	// ArrangedSubviews returns v's arranged subviews in order.
	ArrangedSubviews(v View) []View
	// InsertArranged registers v in superview's arranged list at index.
	InsertArranged(v, superview View, index int)
	// RemoveArranged drops v from superview's arranged list.
	RemoveArranged(v, superview View)
}

// sameView compares two views by identity, treating typed nil pointers as nil.
func sameView(a, b View) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	return a == b
}

func indexOfView(views []View, v View) int {
	for i, candidate := range views {
		if sameView(candidate, v) {
			return i
		}
	}
	return -1
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
