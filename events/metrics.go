package events

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts dispatches, handler calls and default-action decisions. A nil *Metrics
// records nothing.
type Metrics struct {
	dispatched  *prometheus.CounterVec
	invocations *prometheus.CounterVec
	failures    *prometheus.CounterVec
	defaults    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg when it is not nil.
// Collectors already registered with reg, e.g. by an earlier NewMetrics call, are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		dispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dom",
			Subsystem: "events",
			Name:      "dispatched_total",
			Help:      "Dispatches by event kind and how they ended.",
		}, []string{"kind", "outcome"}),
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dom",
			Subsystem: "events",
			Name:      "handler_invocations_total",
			Help:      "Handler calls by event kind and phase.",
		}, []string{"kind", "phase"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dom",
			Subsystem: "events",
			Name:      "handler_failures_total",
			Help:      "Handlers that returned an error or panicked.",
		}, []string{"kind"}),
		defaults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dom",
			Subsystem: "events",
			Name:      "default_actions_total",
			Help:      "Default-action decisions by event kind.",
		}, []string{"kind", "decision"}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []**prometheus.CounterVec{&m.dispatched, &m.invocations, &m.failures, &m.defaults} {
		if err := register(reg, c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func register(reg prometheus.Registerer, c **prometheus.CounterVec) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return errors.Wrap(err, "registering event metrics")
	}
	existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
	if !ok {
		return errors.Errorf("event metrics: %T already registered under the same name", are.ExistingCollector)
	}
	*c = existing
	return nil
}

func (m *Metrics) observeDispatch(kind string, s State) {
	if m == nil {
		return
	}
	m.dispatched.WithLabelValues(kind, s.String()).Inc()
}

func (m *Metrics) observeInvocation(kind string, p Phase) {
	if m == nil {
		return
	}
	m.invocations.WithLabelValues(kind, p.String()).Inc()
}

func (m *Metrics) observeFailure(kind string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(kind).Inc()
}

func (m *Metrics) observeDefault(kind string, allowed bool) {
	if m == nil {
		return
	}
	decision := "prevented"
	if allowed {
		decision = "allowed"
	}
	m.defaults.WithLabelValues(kind, decision).Inc()
}
