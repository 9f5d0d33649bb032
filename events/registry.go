package events

import (
	"iter"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/heathj/gobrowse-events/dom"
)

// DuplicatePolicy decides what Register does with a handler that is already bound to the
// same entity, kind and phase.
type DuplicatePolicy int

const (
	// DuplicateError rejects the registration with a *DuplicateHandlerError.
	DuplicateError DuplicatePolicy = iota
	// DuplicateIgnore keeps the existing binding and reports success.
	DuplicateIgnore
)

func (p DuplicatePolicy) String() string {
	if p == DuplicateIgnore {
		return "ignore"
	}
	return "error"
}

func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "error":
		return DuplicateError, nil
	case "ignore":
		return DuplicateIgnore, nil
	}
	return DuplicateError, errors.Errorf("unknown duplicate policy %q", s)
}

type binding struct {
	handler Handler
	capture bool
	removed atomic.Bool
}

type bindingKey struct {
	entity *dom.Node
	kind   string
}

// Registry keeps, for every entity of one document, the handlers bound to each event kind
// in registration order.
// https://dom.spec.whatwg.org/#concept-event-listener
type Registry struct {
	mu       sync.Mutex
	doc      *dom.Document
	policy   DuplicatePolicy
	bindings map[bindingKey][]*binding
}

type RegistryOption func(*Registry)

func WithDuplicatePolicy(p DuplicatePolicy) RegistryOption {
	return func(r *Registry) {
		r.policy = p
	}
}

func NewRegistry(doc *dom.Document, opts ...RegistryOption) *Registry {
	r := &Registry{
		doc:      doc,
		bindings: map[bindingKey][]*binding{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) Document() *dom.Document {
	return r.doc
}

func captureFlag(phase Phase) (bool, error) {
	switch phase {
	case Capturing:
		return true, nil
	case Bubbling:
		return false, nil
	}
	return false, errors.Wrapf(ErrInvalidPhase, "got %s", phase)
}

func (r *Registry) validate(entity *dom.Node, phase Phase, h Handler, attached bool) (bool, error) {
	capture, err := captureFlag(phase)
	if err != nil {
		return false, err
	}
	if h == nil {
		return false, ErrNilHandler
	}
	if !reflect.TypeOf(h).Comparable() {
		return false, errors.Wrapf(ErrUncomparableHandler, "%T", h)
	}
	if entity == nil || attached && !r.doc.Contains(entity) {
		return false, &UnknownEntityError{Entity: entity}
	}
	return capture, nil
}

// Register appends h to the handlers of entity for kind in the given phase. A handler
// registered for Capturing also runs when entity is the target, as does one registered
// for Bubbling.
// https://dom.spec.whatwg.org/#dom-eventtarget-addeventlistener
func (r *Registry) Register(entity *dom.Node, kind string, phase Phase, h Handler) error {
	capture, err := r.validate(entity, phase, h, true)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := bindingKey{entity: entity, kind: kind}
	for _, b := range r.bindings[key] {
		if b.capture == capture && b.handler == h {
			if r.policy == DuplicateIgnore {
				return nil
			}
			return &DuplicateHandlerError{Entity: entity, Kind: kind, Phase: phase}
		}
	}
	r.bindings[key] = append(r.bindings[key], &binding{handler: h, capture: capture})
	return nil
}

// Unregister removes h from entity's handlers for kind and phase. Removing a handler that
// was never registered is not an error, and entity may already be detached from the
// document. A removed handler is not invoked even if a dispatch already in progress had
// picked it up.
// https://dom.spec.whatwg.org/#dom-eventtarget-removeeventlistener
func (r *Registry) Unregister(entity *dom.Node, kind string, phase Phase, h Handler) error {
	capture, err := r.validate(entity, phase, h, false)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := bindingKey{entity: entity, kind: kind}
	list := r.bindings[key]
	for i, b := range list {
		if b.capture == capture && b.handler == h {
			b.removed.Store(true)
			r.bindings[key] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(r.bindings[key]) == 0 {
		delete(r.bindings, key)
	}
	return nil
}

// Clear drops every binding of entity. Use it when an entity leaves the tree for good.
func (r *Registry) Clear(entity *dom.Node) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, list := range r.bindings {
		if key.entity != entity {
			continue
		}
		for _, b := range list {
			b.removed.Store(true)
		}
		delete(r.bindings, key)
	}
}

// Len returns how many handlers entity has for kind across both phases.
func (r *Registry) Len(entity *dom.Node, kind string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bindings[bindingKey{entity: entity, kind: kind}])
}

// snapshot copies the bindings that apply to entity in phase. AtTarget selects all of
// them regardless of the phase they were registered for.
func (r *Registry) snapshot(entity *dom.Node, kind string, phase Phase) []*binding {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.bindings[bindingKey{entity: entity, kind: kind}]
	out := make([]*binding, 0, len(list))
	for _, b := range list {
		switch {
		case phase == AtTarget,
			phase == Capturing && b.capture,
			phase == Bubbling && !b.capture:
			out = append(out, b)
		}
	}
	return out
}

// HandlersFor yields the handlers of entity for kind in phase in registration order. The
// sequence is lazy and can be ranged over more than once; each pass sees the registry as
// it is when the pass starts.
func (r *Registry) HandlersFor(entity *dom.Node, kind string, phase Phase) iter.Seq[Handler] {
	return func(yield func(Handler) bool) {
		for _, b := range r.snapshot(entity, kind, phase) {
			if b.removed.Load() {
				continue
			}
			if !yield(b.handler) {
				return
			}
		}
	}
}
