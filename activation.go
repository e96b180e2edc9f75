package sublayout

import (
	"github.com/google/uuid"

	"github.com/grindlemire/go-sublayout/pkg/observability"
)

// Stats counts the host operations issued by one pass.
type Stats struct {
	Attached               int
	Detached               int
	Moved                  int
	Arranged               int
	ConstraintsActivated   int
	ConstraintsDeactivated int
	Configured             int
}

// Structural reports the number of attach, detach, move and arrange calls.
func (s Stats) Structural() int {
	return s.Attached + s.Detached + s.Moved + s.Arranged
}

// viewState is what an activation is responsible for on one view.
type viewState struct {
	// superview is where this activation attached the view, nil when the
	// caller manages the view's attachment.
	superview   View
	descriptors []Descriptor
	constraints []Constraint
	pending     bool
}

// Activation is the live result of a reconciliation pass. It tracks the
// attachments and constraints it made so they can be reversed exactly.
// The views themselves belong to the host.
//
// An Activation is updated in place by Reconciler.Update and released by
// Deactive. It must only be used from the goroutine that owns the host.
type Activation struct {
	id         string
	reconciler *Reconciler
	components []Component
	states     map[View]*viewState
	stats      Stats
	torn       bool
}

func newActivation(r *Reconciler) *Activation {
	return &Activation{
		id:         uuid.NewString(),
		reconciler: r,
		states:     make(map[View]*viewState),
	}
}

// ID identifies the activation in logs and metrics.
func (a *Activation) ID() string {
	if a == nil {
		return ""
	}
	return a.id
}

// IsActive reports whether the activation has not been torn down.
func (a *Activation) IsActive() bool {
	return a != nil && !a.torn
}

// Components returns the flattened state of the last pass.
func (a *Activation) Components() []Component {
	if a == nil {
		return nil
	}
	out := make([]Component, len(a.components))
	copy(out, a.components)
	return out
}

// Views returns the views this activation attached, in flatten order.
func (a *Activation) Views() []View {
	if a == nil {
		return nil
	}
	var out []View
	for _, c := range a.components {
		if st := a.states[c.View]; st != nil && st.superview != nil {
			out = append(out, c.View)
		}
	}
	return out
}

// Constraints returns every live constraint handle the activation owns.
func (a *Activation) Constraints() []Constraint {
	if a == nil {
		return nil
	}
	var out []Constraint
	for _, c := range a.components {
		if st := a.states[c.View]; st != nil {
			out = append(out, st.constraints...)
		}
	}
	return out
}

// ConstraintsFor returns the live handles owned for v.
func (a *Activation) ConstraintsFor(v View) []Constraint {
	if a == nil {
		return nil
	}
	if st := a.states[v]; st != nil {
		return st.constraints
	}
	return nil
}

// Stats returns the operation counts of the last pass.
func (a *Activation) Stats() Stats {
	if a == nil {
		return Stats{}
	}
	return a.stats
}

// Update reconciles l against this activation with its reconciler. A nil
// activation has no reconciler to run against and yields a REUSE error; use
// Reconciler.Update with a nil previous activation to start fresh.
func (a *Activation) Update(l Layout, opts ...PassOption) (*Activation, error) {
	if a == nil {
		return nil, newError(ErrCodeReuse, "update on a nil activation")
	}
	return a.reconciler.Update(l, a, opts...)
}

// Store adds the activation to set and returns it.
func (a *Activation) Store(set *ActivationSet) *Activation {
	set.Store(a)
	return a
}

// Deactive deactivates every constraint the activation owns and detaches
// every view it attached that is still where it put it. The activation is
// empty afterwards and further calls do nothing.
func (a *Activation) Deactive() {
	if a == nil {
		return
	}
	r := a.reconciler
	if a.torn {
		err := newError(ErrCodeReuse, "activation %s already torn down", a.id)
		r.logger.Debug("ignoring teardown", "activation", a.id, "err", err)
		r.hooksFor().OnTeardown(observability.Teardown{ActivationID: a.id, Reused: true})
		return
	}
	a.torn = true

	t := observability.Teardown{ActivationID: a.id}
	for _, c := range a.components {
		st := a.states[c.View]
		for _, h := range st.constraints {
			r.host.SetActive(h, false)
			t.ConstraintsDeactivated++
		}
	}
	// Leaves first, so every tracked edge is still intact when it is checked.
	for i := len(a.components) - 1; i >= 0; i-- {
		v := a.components[i].View
		st := a.states[v]
		if st.superview != nil && sameView(r.host.Superview(v), st.superview) {
			r.host.Detach(v)
			t.Detached++
		}
	}

	a.components = nil
	a.states = make(map[View]*viewState)
	a.stats = Stats{}

	r.logger.Debug("activation torn down",
		"activation", a.id,
		"detached", t.Detached,
		"deactivated", t.ConstraintsDeactivated)
	r.hooksFor().OnTeardown(t)
}

// ActivationSet holds activations that are torn down together.
type ActivationSet struct {
	items []*Activation
}

// Store adds a. Nil activations are ignored.
func (s *ActivationSet) Store(a *Activation) {
	if a != nil {
		s.items = append(s.items, a)
	}
}

// Len returns the number of stored activations.
func (s *ActivationSet) Len() int {
	return len(s.items)
}

// DeactivateAll tears down every stored activation and empties the set.
func (s *ActivationSet) DeactivateAll() {
	for _, a := range s.items {
		a.Deactive()
	}
	s.items = nil
}
