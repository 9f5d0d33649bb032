package events

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/heathj/gobrowse-events/dom"
)

// Invocation records one handler call made during a dispatch.
type Invocation struct {
	Node    *dom.Node
	Phase   Phase
	Handler string
	Err     error
}

// Result is what a dispatch reports back: the event after the last handler ran, every
// handler failure, the invocation trace and whether the default action was carried out.
type Result struct {
	Event            *Event
	Failures         []*HandlerFailure
	Trace            []Invocation
	DefaultPerformed bool
}

// Err folds the handler failures into a single error, or nil when every handler succeeded.
func (r *Result) Err() error {
	var merr *multierror.Error
	for _, f := range r.Failures {
		merr = multierror.Append(merr, f)
	}
	return merr.ErrorOrNil()
}

// Dispatcher walks the propagation path of an event and runs the handlers a Registry holds
// for it.
// https://dom.spec.whatwg.org/#concept-event-dispatch
type Dispatcher struct {
	registry *Registry
	defaults DefaultActionPerformer
	log      logrus.FieldLogger
	metrics  *Metrics
}

type DispatcherOption func(*Dispatcher)

func WithLogger(log logrus.FieldLogger) DispatcherOption {
	return func(d *Dispatcher) {
		d.log = log
	}
}

func WithDefaultActions(p DefaultActionPerformer) DispatcherOption {
	return func(d *Dispatcher) {
		d.defaults = p
	}
}

func WithMetrics(m *Metrics) DispatcherOption {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

func NewDispatcher(registry *Registry, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// DispatchByID dispatches kind at the element whose id attribute is id.
func (d *Dispatcher) DispatchByID(id, kind string) (*Result, error) {
	target := d.registry.Document().GetElementByID(id)
	if target == nil {
		return nil, &UnknownEntityError{ID: id}
	}
	return d.Dispatch(target, kind)
}

// Dispatch fires an event of the given kind at target. Capture handlers run from the root
// down to target's parent, every handler on target runs in registration order, then bubble
// handlers run from target's parent up to the root. Stopping propagation ends the walk
// after the current handler. Unless a handler prevented it, the default action runs once
// at the end.
//
// Handler failures do not make Dispatch fail; they are collected in the Result. The
// returned error is for an unknown target or a failing default action.
func (d *Dispatcher) Dispatch(target *dom.Node, kind string) (*Result, error) {
	if !d.registry.Document().Contains(target) {
		return nil, &UnknownEntityError{Entity: target}
	}

	path := target.Path()
	e := newEvent(kind, target, path)
	res := &Result{Event: e}
	log := d.log.WithFields(logrus.Fields{
		"kind":   kind,
		"target": target.Label(),
	})

	if d.propagate(e, path, res, log) {
		e.state = StateCompleted
	} else {
		e.state = StateAborted
		log.WithField("node", e.currentTarget.Label()).Debug("propagation stopped")
	}
	e.currentTarget = nil
	e.eventPhase = None
	d.metrics.observeDispatch(kind, e.state)

	if e.defaultPrevented {
		log.Debug("default action prevented")
		d.metrics.observeDefault(kind, false)
		return res, nil
	}
	d.metrics.observeDefault(kind, true)
	if d.defaults == nil {
		return res, nil
	}
	res.DefaultPerformed = true
	if err := d.defaults.PerformDefault(e); err != nil {
		return res, errors.Wrapf(err, "default action for %q on %s", kind, target.Label())
	}
	return res, nil
}

// propagate runs the three phases and reports false if propagation was stopped.
func (d *Dispatcher) propagate(e *Event, path dom.NodeList, res *Result, log logrus.FieldLogger) bool {
	last := len(path) - 1

	e.state = StateCapturing
	for it := dom.NewNodeIterator(path).WithEnd(last); it.Next(); {
		if !d.invoke(e, it.Node(), Capturing, res, log) {
			return false
		}
	}

	e.state = StateTargeting
	if !d.invoke(e, path[last], AtTarget, res, log) {
		return false
	}

	e.state = StateBubbling
	for rw := dom.NewNodeRewinder(path).WithStart(last - 1); rw.Prev(); {
		if !d.invoke(e, rw.Node(), Bubbling, res, log) {
			return false
		}
	}
	return true
}

// invoke runs node's handlers for the phase. The handler list is taken when the node is
// entered, so handlers added meanwhile wait for the next dispatch while removed ones are
// skipped. A failing handler ends the list for this node only.
// https://dom.spec.whatwg.org/#concept-event-listener-invoke
func (d *Dispatcher) invoke(e *Event, node *dom.Node, phase Phase, res *Result, log logrus.FieldLogger) bool {
	e.currentTarget = node
	e.eventPhase = phase

	for _, b := range d.registry.snapshot(node, e.eventType, phase) {
		if b.removed.Load() {
			continue
		}

		name := handlerName(b.handler)
		err := callHandler(b.handler, e)
		res.Trace = append(res.Trace, Invocation{Node: node, Phase: phase, Handler: name, Err: err})
		d.metrics.observeInvocation(e.eventType, phase)

		if err != nil {
			f := &HandlerFailure{Entity: node, Kind: e.eventType, Phase: phase, Handler: name, Err: err}
			res.Failures = append(res.Failures, f)
			d.metrics.observeFailure(e.eventType)
			log.WithFields(logrus.Fields{
				"node":    node.Label(),
				"phase":   phase.String(),
				"handler": name,
			}).WithError(err).Warn("event handler failed")
			return !e.propagationStopped
		}
		if e.propagationStopped {
			return false
		}
	}
	return true
}
