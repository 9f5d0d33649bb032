// Package script runs inline event handler attributes such as onclick="..." with an
// embedded JavaScript interpreter.
package script

import (
	"strings"
	"sync"

	"github.com/bluele/gcache"
	"github.com/pkg/errors"
	"github.com/robertkrimen/otto"
	"github.com/sirupsen/logrus"

	"github.com/heathj/gobrowse-events/events"
)

const defaultCacheSize = 128

// Engine owns one interpreter. Compiled handler bodies are cached by source text, so
// identical attributes across a page are parsed once.
type Engine struct {
	mu       sync.Mutex
	vm       *otto.Otto
	cache    gcache.Cache
	log      logrus.FieldLogger
	compiles int
}

type EngineOption func(*engineOptions)

type engineOptions struct {
	cacheSize int
	log       logrus.FieldLogger
}

func WithCacheSize(n int) EngineOption {
	return func(o *engineOptions) {
		o.cacheSize = n
	}
}

func WithLogger(log logrus.FieldLogger) EngineOption {
	return func(o *engineOptions) {
		o.log = log
	}
}

func NewEngine(opts ...EngineOption) *Engine {
	o := engineOptions{cacheSize: defaultCacheSize, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cacheSize <= 0 {
		o.cacheSize = defaultCacheSize
	}

	e := &Engine{
		vm:  otto.New(),
		log: o.log,
	}
	e.cache = gcache.New(o.cacheSize).LRU().LoaderFunc(func(key interface{}) (interface{}, error) {
		return e.compile(key.(string))
	}).Build()
	e.installConsole()
	return e
}

// https://html.spec.whatwg.org/#getting-the-current-value-of-the-event-handler
func (e *Engine) compile(source string) (*otto.Script, error) {
	e.compiles++
	return e.vm.Compile("", "(function (event) {\n"+source+"\n})")
}

func (e *Engine) script(source string) (*otto.Script, error) {
	v, err := e.cache.Get(source)
	if err != nil {
		return nil, err
	}
	return v.(*otto.Script), nil
}

func (e *Engine) installConsole() {
	console, _ := e.vm.Object(`({})`)
	console.Set("log", func(call otto.FunctionCall) otto.Value {
		args := make([]string, 0, len(call.ArgumentList))
		for _, a := range call.ArgumentList {
			args = append(args, a.String())
		}
		e.log.WithField("source", "console").Info(strings.Join(args, " "))
		return otto.UndefinedValue()
	})
	e.vm.Set("console", console)
}

// Handler compiles source as the body of an inline handler for attr (e.g. "onclick").
// Syntax errors are reported here rather than at dispatch time.
func (e *Engine) Handler(attr, source string) (events.Handler, error) {
	e.mu.Lock()
	_, err := e.script(source)
	e.mu.Unlock()
	if err != nil {
		return nil, errors.Wrapf(err, "compiling %s handler", attr)
	}
	return &inlineHandler{engine: e, attr: attr, source: source}, nil
}

type inlineHandler struct {
	engine *Engine
	attr   string
	source string
}

func (h *inlineHandler) String() string {
	return h.attr
}

// HandleEvent runs the handler body with this bound to the current target. Returning
// false from the body cancels the event, as it does for HTML inline handlers.
func (h *inlineHandler) HandleEvent(ev *events.Event) error {
	e := h.engine
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.script(h.source)
	if err != nil {
		return errors.Wrapf(err, "compiling %s handler", h.attr)
	}
	fn, err := e.vm.Run(s)
	if err != nil {
		return errors.Wrapf(err, "loading %s handler", h.attr)
	}

	b := newBinder(e.vm)
	this, err := b.element(ev.CurrentTarget())
	if err != nil {
		return err
	}
	jsEvent, err := b.event(ev)
	if err != nil {
		return err
	}
	document, err := b.document(ev.Target().GetRootNode())
	if err != nil {
		return err
	}
	if err := e.vm.Set("document", document); err != nil {
		return err
	}

	ret, err := fn.Call(this, jsEvent)
	if err != nil {
		return errors.Wrapf(err, "%s handler on %s", h.attr, ev.CurrentTarget().Label())
	}
	if ret.IsBoolean() {
		if ok, _ := ret.ToBoolean(); !ok {
			ev.PreventDefault()
		}
	}
	return nil
}
