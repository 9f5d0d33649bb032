package events

import (
	"time"

	"github.com/heathj/gobrowse-events/dom"
)

// Phase is the event phase a handler runs in.
// https://dom.spec.whatwg.org/#dom-event-eventphase
type Phase uint

const (
	None Phase = iota
	Capturing
	AtTarget
	Bubbling
)

func (p Phase) String() string {
	switch p {
	case Capturing:
		return "capturing"
	case AtTarget:
		return "at-target"
	case Bubbling:
		return "bubbling"
	default:
		return "none"
	}
}

// State tracks where a dispatch is in its lifecycle.
type State uint

const (
	StateCreated State = iota
	StateCapturing
	StateTargeting
	StateBubbling
	StateCompleted
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateCapturing:
		return "capturing"
	case StateTargeting:
		return "targeting"
	case StateBubbling:
		return "bubbling"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Event is created once per dispatch and shared by every handler the dispatch invokes.
// Handlers may only raise its flags; the identity fields are owned by the Dispatcher.
// https://dom.spec.whatwg.org/#interface-event
type Event struct {
	eventType                   string
	target                      *dom.Node
	currentTarget               *dom.Node
	path                        dom.NodeList
	eventPhase                  Phase
	state                       State
	defaultPrevented            bool
	propagationStopped          bool
	immediatePropagationStopped bool
	timeStamp                   time.Time
}

func newEvent(eventType string, target *dom.Node, path dom.NodeList) *Event {
	return &Event{
		eventType: eventType,
		target:    target,
		path:      path,
		state:     StateCreated,
		timeStamp: time.Now(),
	}
}

func (e *Event) Type() string             { return e.eventType }
func (e *Event) Target() *dom.Node        { return e.target }
func (e *Event) CurrentTarget() *dom.Node { return e.currentTarget }
func (e *Event) Phase() Phase             { return e.eventPhase }
func (e *Event) State() State             { return e.state }
func (e *Event) DefaultPrevented() bool   { return e.defaultPrevented }
func (e *Event) PropagationStopped() bool { return e.propagationStopped }
func (e *Event) TimeStamp() time.Time     { return e.timeStamp }
func (e *Event) ImmediatePropagationStopped() bool {
	return e.immediatePropagationStopped
}

// ComposedPath returns the propagation path from the root down to the target.
// https://dom.spec.whatwg.org/#dom-event-composedpath
func (e *Event) ComposedPath() dom.NodeList {
	path := make(dom.NodeList, len(e.path))
	copy(path, e.path)
	return path
}

// https://dom.spec.whatwg.org/#dom-event-stoppropagation
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// The dispatcher already stops at the next handler boundary once propagation is stopped,
// so this only differs from StopPropagation in the flag it reports.
// https://dom.spec.whatwg.org/#dom-event-stopimmediatepropagation
func (e *Event) StopImmediatePropagation() {
	e.propagationStopped = true
	e.immediatePropagationStopped = true
}

// https://dom.spec.whatwg.org/#dom-event-preventdefault
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}
