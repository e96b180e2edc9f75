// Package observability provides hooks for reconciliation metrics and tracing.
//
// The reconciler reports every pass and every teardown through Hooks. The
// default implementation does nothing; NewPrometheusHooks exports the events
// as Prometheus metrics.
//
// Register process-wide hooks at startup, or pass hooks to a single
// reconciler with sublayout.WithHooks:
//
//	observability.SetHooks(observability.NewPrometheusHooks(prometheus.DefaultRegisterer))
package observability

import (
	"sync"
	"time"
)

// PassKind distinguishes the ways a reconciliation pass is started.
type PassKind string

const (
	PassActivate PassKind = "activate"
	PassUpdate   PassKind = "update"
	PassFinal    PassKind = "final"
)

// Pass describes one completed or failed reconciliation pass.
type Pass struct {
	ActivationID string
	Kind         PassKind
	Components   int

	Attached               int
	Detached               int
	Moved                  int
	Arranged               int
	ConstraintsActivated   int
	ConstraintsDeactivated int
	Configured             int

	Duration time.Duration
	Err      error
}

// Teardown describes one call to an activation's teardown.
type Teardown struct {
	ActivationID           string
	Detached               int
	ConstraintsDeactivated int
	// Reused is set when the activation had already been torn down.
	Reused bool
}

// Hooks receives reconciliation events.
type Hooks interface {
	OnPass(p Pass)
	OnTeardown(t Teardown)
}

// NoopHooks ignores every event.
type NoopHooks struct{}

func (NoopHooks) OnPass(Pass)         {}
func (NoopHooks) OnTeardown(Teardown) {}

// Multi fans events out to several hooks in order.
type Multi []Hooks

func (m Multi) OnPass(p Pass) {
	for _, h := range m {
		h.OnPass(p)
	}
}

func (m Multi) OnTeardown(t Teardown) {
	for _, h := range m {
		h.OnTeardown(t)
	}
}

var (
	hooks   Hooks = NoopHooks{}
	hooksMu sync.RWMutex
)

// SetHooks registers process-wide hooks. Nil is ignored.
func SetHooks(h Hooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		hooks = h
	}
}

// Get returns the registered hooks.
func Get() Hooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return hooks
}

// Reset restores the no-op hooks.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	hooks = NoopHooks{}
}
