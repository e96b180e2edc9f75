package sublayout

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/grindlemire/go-sublayout/pkg/debug"
	"github.com/grindlemire/go-sublayout/pkg/observability"
)

// Reconciler applies layouts to a host scene graph.
//
// A pass flattens the new layout, diffs it against the previous activation
// and issues only the host calls needed to reach the new state. Layout
// errors are reported before the host is touched.
//
// Reconciler does no locking. Callers must serialize passes that touch the
// same views, typically by confining them to the UI goroutine.
type Reconciler struct {
	host          Host
	arranged      ArrangedHost
	logger        *log.Logger
	hooks         observability.Hooks
	equal         EqualityPolicy
	rootSuperview View
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger. Defaults to the debug package logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Reconciler) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithHooks sets the hooks notified of passes and teardowns.
// Defaults to the process-wide observability hooks.
func WithHooks(h observability.Hooks) Option {
	return func(r *Reconciler) {
		r.hooks = h
	}
}

// WithEqualityPolicy sets how a view's old and new descriptors are compared
// to decide whether its constraints can be kept. Defaults to StrictEquality.
func WithEqualityPolicy(p EqualityPolicy) Option {
	return func(r *Reconciler) {
		if p != nil {
			r.equal = p
		}
	}
}

// WithRootSuperview attaches top-level views of every layout to v.
// Without it top-level views are left where the caller put them.
func WithRootSuperview(v View) Option {
	return func(r *Reconciler) {
		r.rootSuperview = v
	}
}

// NewReconciler creates a Reconciler for host.
// Hosts implementing ArrangedHost also get arranged-list reconciliation.
func NewReconciler(host Host, opts ...Option) *Reconciler {
	r := &Reconciler{
		host:   host,
		logger: debug.Logger(),
		equal:  StrictEquality,
	}
	if ah, ok := host.(ArrangedHost); ok {
		r.arranged = ah
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// PassOption configures a single pass.
type PassOption func(*passConfig)

type passConfig struct {
	forceLayout bool
}

// ForceLayout recreates every constraint, even unchanged ones.
// Attachments still change only where the structure did.
func ForceLayout() PassOption {
	return func(c *passConfig) {
		c.forceLayout = true
	}
}

// Activate materializes l and returns the activation that owns the result.
func (r *Reconciler) Activate(l Layout, opts ...PassOption) (*Activation, error) {
	a := newActivation(r)
	if err := r.run(l, a, observability.PassActivate, opts); err != nil {
		return nil, err
	}
	return a, nil
}

// Update reconciles l against from, mutating and returning it.
//
// A nil or torn-down from cannot be reused; the pass then runs as a fresh
// activation and the returned Activation is a new one.
func (r *Reconciler) Update(l Layout, from *Activation, opts ...PassOption) (*Activation, error) {
	if !from.IsActive() {
		if from != nil {
			err := newError(ErrCodeReuse, "activation %s already torn down", from.id)
			r.logger.Debug("updating from a torn-down activation, starting fresh", "err", err)
		}
		return r.Activate(l, opts...)
	}
	if err := r.run(l, from, observability.PassUpdate, opts); err != nil {
		return nil, err
	}
	return from, nil
}

// FinalActive materializes l without keeping an activation. The result can
// only be undone by the caller.
func (r *Reconciler) FinalActive(l Layout, opts ...PassOption) error {
	return r.run(l, newActivation(r), observability.PassFinal, opts)
}

func (r *Reconciler) hooksFor() observability.Hooks {
	if r.hooks != nil {
		return r.hooks
	}
	return observability.Get()
}

func (r *Reconciler) run(l Layout, a *Activation, kind observability.PassKind, opts []PassOption) error {
	var cfg passConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	start := time.Now()
	next, err := Flatten(l, r.rootSuperview)
	if err != nil {
		r.logger.Debug("layout rejected", "activation", a.id, "kind", kind, "err", err)
		r.hooksFor().OnPass(observability.Pass{
			ActivationID: a.id,
			Kind:         kind,
			Duration:     time.Since(start),
			Err:          err,
		})
		return err
	}

	stats := r.reconcile(a, next, cfg.forceLayout)
	elapsed := time.Since(start)

	r.logger.Debug("reconciled",
		"activation", a.id,
		"kind", kind,
		"components", len(next),
		"attached", stats.Attached,
		"detached", stats.Detached,
		"moved", stats.Moved,
		"arranged", stats.Arranged,
		"activated", stats.ConstraintsActivated,
		"deactivated", stats.ConstraintsDeactivated,
		"force", cfg.forceLayout,
		"elapsed", elapsed)
	r.hooksFor().OnPass(observability.Pass{
		ActivationID:           a.id,
		Kind:                   kind,
		Components:             len(next),
		Attached:               stats.Attached,
		Detached:               stats.Detached,
		Moved:                  stats.Moved,
		Arranged:               stats.Arranged,
		ConstraintsActivated:   stats.ConstraintsActivated,
		ConstraintsDeactivated: stats.ConstraintsDeactivated,
		Configured:             stats.Configured,
		Duration:               elapsed,
	})
	return nil
}

// reconcile moves the host from a's tracked state to next and records the
// result on a.
func (r *Reconciler) reconcile(a *Activation, next []Component, force bool) Stats {
	var stats Stats
	prev := a.states

	matched := make(map[View]bool, len(next))
	for _, c := range next {
		matched[c.View] = true
	}
	var removed []Component
	for _, c := range a.components {
		if !matched[c.View] {
			removed = append(removed, c)
		}
	}

	// Retire constraints of removed views and of views whose anchors changed.
	for _, c := range removed {
		stats.ConstraintsDeactivated += r.deactivate(prev[c.View].constraints)
	}
	states := make(map[View]*viewState, len(next))
	for _, c := range next {
		st := &viewState{descriptors: c.Anchors}
		old := prev[c.View]
		if old != nil && !force && r.equal(old.descriptors, c.Anchors) {
			st.constraints = old.constraints
		} else {
			if old != nil {
				stats.ConstraintsDeactivated += r.deactivate(old.constraints)
			}
			st.pending = len(c.Anchors) > 0
		}
		states[c.View] = st
	}

	// Detach removed views, leaves first.
	for i := len(removed) - 1; i >= 0; i-- {
		v := removed[i].View
		if sv := prev[v].superview; sv != nil && sameView(r.host.Superview(v), sv) {
			r.host.Detach(v)
			stats.Detached++
		}
	}

	// Attach in pre-order so superviews are in place before their children.
	var parents []View
	siblings := make(map[View][]View)
	position := make(map[View]int, len(next))
	for _, c := range next {
		if c.Superview == nil {
			continue
		}
		if _, ok := siblings[c.Superview]; !ok {
			parents = append(parents, c.Superview)
		}
		position[c.View] = len(siblings[c.Superview])
		siblings[c.Superview] = append(siblings[c.Superview], c.View)
	}

	for _, c := range next {
		live := r.host.Superview(c.View)
		if c.Superview == nil {
			// The caller manages this view; only undo an attachment we made.
			if old := prev[c.View]; old != nil && old.superview != nil && sameView(live, old.superview) {
				r.host.Detach(c.View)
				stats.Detached++
			}
			continue
		}
		states[c.View].superview = c.Superview
		if sameView(live, c.Superview) {
			continue
		}
		if !isNil(live) {
			r.host.Detach(c.View)
			stats.Detached++
		}
		idx := insertionIndex(r.host.Subviews(c.Superview), siblings[c.Superview], position[c.View])
		r.host.Attach(c.View, c.Superview, idx)
		stats.Attached++
	}

	// Fix sibling order only where it differs from declaration order.
	for _, p := range parents {
		stats.Moved += arrange(siblings[p],
			func() []View { return r.host.Subviews(p) },
			func(v View, idx int) { r.host.Attach(v, p, idx) })
	}

	if r.arranged != nil {
		stats.Arranged += r.reconcileArranged(parents, siblings, next)
	}

	for _, c := range next {
		st := states[c.View]
		if !st.pending {
			continue
		}
		for _, d := range c.Anchors {
			h := r.host.CreateConstraint(d)
			r.host.SetActive(h, true)
			st.constraints = append(st.constraints, h)
			stats.ConstraintsActivated++
		}
		st.pending = false
	}

	for _, c := range next {
		if c.Config != nil {
			r.host.ApplyConfig(c.View, c.Config)
			stats.Configured++
		}
	}

	a.components = next
	a.states = states
	a.stats = stats
	return stats
}

func (r *Reconciler) deactivate(constraints []Constraint) int {
	for _, h := range constraints {
		r.host.SetActive(h, false)
	}
	return len(constraints)
}

// reconcileArranged keeps the arranged list of every arranging superview in
// line with the declared order, leaving views declared not-arranged out.
func (r *Reconciler) reconcileArranged(parents []View, siblings map[View][]View, next []Component) int {
	arrangedFlag := make(map[View]bool, len(next))
	for _, c := range next {
		arrangedFlag[c.View] = c.Arranged
	}

	ops := 0
	for _, p := range parents {
		if !r.arranged.CanArrange(p) {
			continue
		}

		var want []View
		for _, v := range siblings[p] {
			if arrangedFlag[v] {
				want = append(want, v)
			}
		}
		for _, v := range r.arranged.ArrangedSubviews(p) {
			if indexOfView(siblings[p], v) >= 0 && !arrangedFlag[v] {
				r.arranged.RemoveArranged(v, p)
				ops++
			}
		}
		ops += arrange(want,
			func() []View { return r.arranged.ArrangedSubviews(p) },
			func(v View, idx int) { r.arranged.InsertArranged(v, p, idx) })
	}
	return ops
}

// insertionIndex picks where to attach desired[pos] among live so that it
// lands next to the declared siblings that are already live.
func insertionIndex(live, desired []View, pos int) int {
	for j := pos - 1; j >= 0; j-- {
		if k := indexOfView(live, desired[j]); k >= 0 {
			return k + 1
		}
	}
	for j := pos + 1; j < len(desired); j++ {
		if k := indexOfView(live, desired[j]); k >= 0 {
			return k
		}
	}
	return AppendIndex
}

// arrange makes the views of desired appear in that relative order within
// the list returned by current, calling place only for views that are
// missing or out of position. Views outside desired are left alone.
// It returns the number of place calls.
func arrange(desired []View, current func() []View, place func(v View, idx int)) int {
	want := make(map[View]bool, len(desired))
	for _, v := range desired {
		want[v] = true
	}

	calls := 0
	for i, v := range desired {
		all := current()
		managed := filterViews(all, want)
		if i < len(managed) && sameView(managed[i], v) {
			continue
		}

		rest := withoutView(all, v)
		idx := AppendIndex
		if i > 0 {
			if k := indexOfView(rest, desired[i-1]); k >= 0 {
				idx = k + 1
			}
		} else if m := filterViews(rest, want); len(m) > 0 {
			idx = indexOfView(rest, m[0])
		}
		place(v, idx)
		calls++
	}
	return calls
}

func filterViews(views []View, keep map[View]bool) []View {
	var out []View
	for _, v := range views {
		if keep[v] {
			out = append(out, v)
		}
	}
	return out
}

func withoutView(views []View, v View) []View {
	out := make([]View, 0, len(views))
	for _, candidate := range views {
		if !sameView(candidate, v) {
			out = append(out, candidate)
		}
	}
	return out
}
