package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusHooks_Passes(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	h := NewPrometheusHooks(reg)

	h.OnPass(Pass{Kind: PassActivate, Attached: 3, ConstraintsActivated: 2, Duration: time.Millisecond})
	h.OnPass(Pass{Kind: PassUpdate, Duration: time.Millisecond})
	h.OnPass(Pass{Kind: PassUpdate, Moved: 1})
	h.OnPass(Pass{Kind: PassUpdate, Err: errors.New("dangling anchor")})

	type tc struct {
		got  prometheus.Collector
		want float64
	}

	tests := map[string]tc{
		"activate ok":     {got: h.passes.WithLabelValues("activate", "ok"), want: 1},
		"update ok":       {got: h.passes.WithLabelValues("update", "ok"), want: 2},
		"update error":    {got: h.passes.WithLabelValues("update", "error"), want: 1},
		"attach ops":      {got: h.operations.WithLabelValues("attach"), want: 3},
		"move ops":        {got: h.operations.WithLabelValues("move"), want: 1},
		"activate ops":    {got: h.operations.WithLabelValues("activate"), want: 2},
		"no-op updates":   {got: h.noopUpdates, want: 1},
		"detach ops":      {got: h.operations.WithLabelValues("detach"), want: 0},
		"deactivate ops":  {got: h.operations.WithLabelValues("deactivate"), want: 0},
		"arrange ops":     {got: h.operations.WithLabelValues("arrange"), want: 0},
		"final untouched": {got: h.passes.WithLabelValues("final", "ok"), want: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := testutil.ToFloat64(tt.got); got != tt.want {
				t.Errorf("value = %v, want %v", got, tt.want)
			}
		})
	}

	if n := testutil.CollectAndCount(h.duration); n != 2 {
		t.Errorf("duration series = %d, want 2", n)
	}
}

func TestPrometheusHooks_Teardowns(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := NewPrometheusHooks(reg)

	h.OnTeardown(Teardown{Detached: 4, ConstraintsDeactivated: 6})
	h.OnTeardown(Teardown{Reused: true})

	if got := testutil.ToFloat64(h.teardowns.WithLabelValues("false")); got != 1 {
		t.Errorf("teardowns{reused=false} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(h.teardowns.WithLabelValues("true")); got != 1 {
		t.Errorf("teardowns{reused=true} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(h.operations.WithLabelValues("detach")); got != 4 {
		t.Errorf("detach ops = %v, want 4", got)
	}
	if got := testutil.ToFloat64(h.operations.WithLabelValues("deactivate")); got != 6 {
		t.Errorf("deactivate ops = %v, want 6", got)
	}
}

func TestPrometheusHooks_DoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheusHooks(reg)

	defer func() {
		if recover() == nil {
			t.Error("registering twice on one registry should panic")
		}
	}()
	NewPrometheusHooks(reg)
}
