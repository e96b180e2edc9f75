package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusHooks exports reconciliation events as Prometheus metrics.
type PrometheusHooks struct {
	passes      *prometheus.CounterVec
	operations  *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	teardowns   *prometheus.CounterVec
	noopUpdates prometheus.Counter
}

var _ Hooks = (*PrometheusHooks)(nil)

// NewPrometheusHooks creates the metrics and registers them with reg.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	h := &PrometheusHooks{
		passes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sublayout_passes_total",
				Help: "Reconciliation passes by kind and outcome.",
			},
			[]string{"kind", "outcome"},
		),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sublayout_host_operations_total",
				Help: "Host mutations issued by reconciliation and teardown.",
			},
			[]string{"operation"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sublayout_pass_duration_seconds",
				Help:    "Duration of reconciliation passes.",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
			[]string{"kind"},
		),
		teardowns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sublayout_teardowns_total",
				Help: "Activation teardowns, including absorbed repeats.",
			},
			[]string{"reused"},
		),
		noopUpdates: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sublayout_noop_updates_total",
				Help: "Update passes that issued no structural or constraint change.",
			},
		),
	}
	reg.MustRegister(h.passes, h.operations, h.duration, h.teardowns, h.noopUpdates)
	return h
}

func (h *PrometheusHooks) OnPass(p Pass) {
	outcome := "ok"
	if p.Err != nil {
		outcome = "error"
	}
	kind := string(p.Kind)
	h.passes.WithLabelValues(kind, outcome).Inc()
	h.duration.WithLabelValues(kind).Observe(p.Duration.Seconds())
	if p.Err != nil {
		return
	}

	h.operations.WithLabelValues("attach").Add(float64(p.Attached))
	h.operations.WithLabelValues("detach").Add(float64(p.Detached))
	h.operations.WithLabelValues("move").Add(float64(p.Moved))
	h.operations.WithLabelValues("arrange").Add(float64(p.Arranged))
	h.operations.WithLabelValues("activate").Add(float64(p.ConstraintsActivated))
	h.operations.WithLabelValues("deactivate").Add(float64(p.ConstraintsDeactivated))

	if p.Kind == PassUpdate && p.Attached+p.Detached+p.Moved+p.Arranged+
		p.ConstraintsActivated+p.ConstraintsDeactivated == 0 {
		h.noopUpdates.Inc()
	}
}

func (h *PrometheusHooks) OnTeardown(t Teardown) {
	reused := "false"
	if t.Reused {
		reused = "true"
	}
	h.teardowns.WithLabelValues(reused).Inc()
	h.operations.WithLabelValues("detach").Add(float64(t.Detached))
	h.operations.WithLabelValues("deactivate").Add(float64(t.ConstraintsDeactivated))
}
