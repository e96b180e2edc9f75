package scene

import "github.com/grindlemire/go-sublayout"

var _ sublayout.View = (*View)(nil)

// View is a node of the in-memory scene graph.
type View struct {
	id string

	// Tree structure
	parent   *View
	children []*View
	stack    bool
	arranged []*View

	// Properties set by config actions
	background string
	text       string
	hidden     bool

	// Call counters
	attachCount int
	detachCount int
	moveCount   int
	configCount int
}

// Option configures a View.
type Option func(*View)

// WithStack makes the view keep an arranged subview list.
func WithStack() Option {
	return func(v *View) {
		v.stack = true
	}
}

// WithBackground sets the initial background color name.
func WithBackground(color string) Option {
	return func(v *View) {
		v.background = color
	}
}

// WithText sets the initial text.
func WithText(text string) Option {
	return func(v *View) {
		v.text = text
	}
}

// NewView creates a detached view outside any scene registry.
func NewView(id string, opts ...Option) *View {
	v := &View{id: id}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Identifier returns the view id.
func (v *View) Identifier() string {
	return v.id
}

// Parent returns the superview, or nil when detached.
func (v *View) Parent() *View {
	return v.parent
}

// Children returns the subviews in sibling order.
func (v *View) Children() []*View {
	return v.children
}

// IsStack reports whether the view keeps an arranged list.
func (v *View) IsStack() bool {
	return v.stack
}

// SetStack turns the arranged list on or off. Turning it off drops the
// current arranged subviews.
func (v *View) SetStack(on bool) {
	v.stack = on
	if !on {
		v.arranged = nil
	}
}

// Arranged returns the arranged subviews in order.
func (v *View) Arranged() []*View {
	return v.arranged
}

// Background returns the background color name.
func (v *View) Background() string {
	return v.background
}

// SetBackground sets the background color name.
func (v *View) SetBackground(color string) {
	v.background = color
}

// Text returns the text content.
func (v *View) Text() string {
	return v.text
}

// SetText sets the text content.
func (v *View) SetText(text string) {
	v.text = text
}

// Hidden reports whether the view is hidden.
func (v *View) Hidden() bool {
	return v.hidden
}

// SetHidden hides or shows the view.
func (v *View) SetHidden(hidden bool) {
	v.hidden = hidden
}

// AttachCount returns how many times the view was attached to a new superview.
func (v *View) AttachCount() int {
	return v.attachCount
}

// DetachCount returns how many times the view was detached.
func (v *View) DetachCount() int {
	return v.detachCount
}

// MoveCount returns how many times the view was repositioned among its siblings.
func (v *View) MoveCount() int {
	return v.moveCount
}

// ConfigCount returns how many config actions ran against the view.
func (v *View) ConfigCount() int {
	return v.configCount
}

// IsDescendant reports whether v is other or lies below it.
func (v *View) IsDescendant(other *View) bool {
	for n := v; n != nil; n = n.parent {
		if n == other {
			return true
		}
	}
	return false
}

// insertChild places child at index, appending when index is out of range.
func (v *View) insertChild(child *View, index int) {
	v.children = insertAt(v.children, child, index)
	child.parent = v
}

// removeChild removes child, keeping sibling order.
// Returns true if the child was found and removed.
func (v *View) removeChild(child *View) bool {
	var ok bool
	v.children, ok = removeFrom(v.children, child)
	if !ok {
		return false
	}
	v.arranged, _ = removeFrom(v.arranged, child)
	child.parent = nil
	return true
}

func insertAt(list []*View, v *View, index int) []*View {
	if index < 0 || index >= len(list) {
		return append(list, v)
	}
	list = append(list, nil)
	copy(list[index+1:], list[index:])
	list[index] = v
	return list
}

func removeFrom(list []*View, v *View) ([]*View, bool) {
	for i, c := range list {
		if c == v {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, false
}

func indexOf(list []*View, v *View) int {
	for i, c := range list {
		if c == v {
			return i
		}
	}
	return -1
}
