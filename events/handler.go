package events

//go:generate mockgen -source=handler.go -destination=eventsmock/mock_handler.go -package=eventsmock

import (
	"fmt"

	"github.com/pkg/errors"
)

// Handler receives events dispatched to the entity it is registered on. Handlers are
// identified by interface equality, so implementations must be comparable; pointer
// receivers are the usual choice.
// https://dom.spec.whatwg.org/#callbackdef-eventlistener
type Handler interface {
	HandleEvent(e *Event) error
}

type funcHandler struct {
	fn func(e *Event) error
}

func (h *funcHandler) HandleEvent(e *Event) error {
	return h.fn(e)
}

// Func adapts a function into a Handler. Every call returns a handler with its own
// identity, so keep the returned value around to unregister it later.
func Func(fn func(e *Event) error) Handler {
	return &funcHandler{fn: fn}
}

// Listen is Func for handlers that never fail.
func Listen(fn func(e *Event)) Handler {
	return &funcHandler{fn: func(e *Event) error {
		fn(e)
		return nil
	}}
}

// DefaultActionPerformer carries out what an event kind implies when no handler
// prevented it, e.g. following a link after a click.
type DefaultActionPerformer interface {
	PerformDefault(e *Event) error
}

// DefaultActionFunc adapts a function into a DefaultActionPerformer.
type DefaultActionFunc func(e *Event) error

func (f DefaultActionFunc) PerformDefault(e *Event) error {
	return f(e)
}

func handlerName(h Handler) string {
	if s, ok := h.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", h)
}

func callHandler(h Handler, e *Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("handler panicked: %v", r)
		}
	}()
	return h.HandleEvent(e)
}
