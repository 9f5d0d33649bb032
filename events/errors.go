package events

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/heathj/gobrowse-events/dom"
)

var (
	ErrNilHandler          = errors.New("handler is nil")
	ErrUncomparableHandler = errors.New("handler is not comparable")
	ErrInvalidPhase        = errors.New("handlers register for the capturing or bubbling phase only")
)

// DuplicateHandlerError is returned by Register when the same handler is already bound to
// the entity, kind and phase and the registry rejects duplicates.
type DuplicateHandlerError struct {
	Entity *dom.Node
	Kind   string
	Phase  Phase
}

func (e *DuplicateHandlerError) Error() string {
	return fmt.Sprintf("handler already registered for %q on %s in the %s phase", e.Kind, e.Entity.Label(), e.Phase)
}

// UnknownEntityError is returned when an operation names an entity that is not part of the
// registry's document.
type UnknownEntityError struct {
	Entity *dom.Node
	ID     string
}

func (e *UnknownEntityError) Error() string {
	if e.Entity == nil {
		if e.ID != "" {
			return fmt.Sprintf("no element with id %q in the document", e.ID)
		}
		return "entity is nil"
	}
	return fmt.Sprintf("%s is not attached to the document", e.Entity.Label())
}

// HandlerFailure wraps an error returned, or a panic raised, by a handler during dispatch.
type HandlerFailure struct {
	Entity  *dom.Node
	Kind    string
	Phase   Phase
	Handler string
	Err     error
}

func (f *HandlerFailure) Error() string {
	return fmt.Sprintf("%s handler %s on %s (%s): %v", f.Kind, f.Handler, f.Entity.Label(), f.Phase, f.Err)
}

func (f *HandlerFailure) Cause() error  { return f.Err }
func (f *HandlerFailure) Unwrap() error { return f.Err }
