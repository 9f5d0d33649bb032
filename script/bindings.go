package script

import (
	"strings"

	"github.com/robertkrimen/otto"

	"github.com/heathj/gobrowse-events/dom"
	"github.com/heathj/gobrowse-events/events"
)

// binder builds the JavaScript views handed to one handler call. Views are memoized per
// node so that this === event.currentTarget holds inside the handler.
type binder struct {
	vm    *otto.Otto
	nodes map[*dom.Node]otto.Value
}

func newBinder(vm *otto.Otto) *binder {
	return &binder{vm: vm, nodes: map[*dom.Node]otto.Value{}}
}

// https://dom.spec.whatwg.org/#interface-element
func (b *binder) element(n *dom.Node) (otto.Value, error) {
	if n == nil {
		return otto.NullValue(), nil
	}
	if v, ok := b.nodes[n]; ok {
		return v, nil
	}

	obj, err := b.vm.Object(`({})`)
	if err != nil {
		return otto.UndefinedValue(), err
	}
	id, _ := n.GetAttribute("id")
	obj.Set("id", id)
	obj.Set("tagName", strings.ToUpper(n.NodeName))
	obj.Set("getAttribute", func(call otto.FunctionCall) otto.Value {
		v, ok := n.GetAttribute(call.Argument(0).String())
		if !ok {
			return otto.NullValue()
		}
		s, _ := b.vm.ToValue(v)
		return s
	})
	obj.Set("hasAttribute", func(call otto.FunctionCall) otto.Value {
		s, _ := b.vm.ToValue(n.HasAttribute(call.Argument(0).String()))
		return s
	})
	obj.Set("setAttribute", func(call otto.FunctionCall) otto.Value {
		n.SetAttribute(call.Argument(0).String(), call.Argument(1).String())
		return otto.UndefinedValue()
	})
	obj.Set("removeAttribute", func(call otto.FunctionCall) otto.Value {
		n.RemoveAttribute(call.Argument(0).String())
		return otto.UndefinedValue()
	})

	v := obj.Value()
	b.nodes[n] = v
	return v, nil
}

// document exposes getElementById over the tree that root belongs to.
// https://dom.spec.whatwg.org/#interface-document
func (b *binder) document(root *dom.Node) (otto.Value, error) {
	obj, err := b.vm.Object(`({})`)
	if err != nil {
		return otto.UndefinedValue(), err
	}
	obj.Set("getElementById", func(call otto.FunctionCall) otto.Value {
		id := call.Argument(0).String()
		for n := range root.Descendants() {
			if v, ok := n.GetAttribute("id"); ok && v == id && n.NodeType == dom.ElementNode {
				el, _ := b.element(n)
				return el
			}
		}
		return otto.NullValue()
	})
	return obj.Value(), nil
}

// https://dom.spec.whatwg.org/#interface-event
func (b *binder) event(ev *events.Event) (otto.Value, error) {
	obj, err := b.vm.Object(`({})`)
	if err != nil {
		return otto.UndefinedValue(), err
	}
	target, err := b.element(ev.Target())
	if err != nil {
		return otto.UndefinedValue(), err
	}
	current, err := b.element(ev.CurrentTarget())
	if err != nil {
		return otto.UndefinedValue(), err
	}

	obj.Set("type", ev.Type())
	obj.Set("target", target)
	obj.Set("currentTarget", current)
	obj.Set("eventPhase", int(ev.Phase()))
	obj.Set("defaultPrevented", ev.DefaultPrevented())
	obj.Set("preventDefault", func(call otto.FunctionCall) otto.Value {
		ev.PreventDefault()
		obj.Set("defaultPrevented", true)
		return otto.UndefinedValue()
	})
	obj.Set("stopPropagation", func(call otto.FunctionCall) otto.Value {
		ev.StopPropagation()
		return otto.UndefinedValue()
	})
	obj.Set("stopImmediatePropagation", func(call otto.FunctionCall) otto.Value {
		ev.StopImmediatePropagation()
		return otto.UndefinedValue()
	})
	return obj.Value(), nil
}
