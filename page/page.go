package page

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/heathj/gobrowse-events/config"
	"github.com/heathj/gobrowse-events/dom"
	"github.com/heathj/gobrowse-events/events"
	"github.com/heathj/gobrowse-events/script"
)

// Page is a loaded document with everything needed to dispatch events at it.
type Page struct {
	Document   *dom.Document
	Registry   *events.Registry
	Dispatcher *events.Dispatcher
	Navigator  *Navigator
	Engine     *script.Engine
	Metrics    *events.Metrics
}

type options struct {
	log     logrus.FieldLogger
	reg     prometheus.Registerer
	baseURL string
}

type Option func(*options)

func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithRegisterer is where dispatch metrics are registered when metrics are enabled.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.reg = reg
	}
}

func WithBaseURL(u string) Option {
	return func(o *options) {
		o.baseURL = u
	}
}

// Open loads the HTML in r and assembles a Page according to cfg.
func Open(r io.Reader, cfg *config.Config, opts ...Option) (*Page, error) {
	o := options{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	policy, _ := cfg.Policy()

	doc, err := Load(r)
	if err != nil {
		return nil, err
	}
	doc.URL = o.baseURL

	p := &Page{
		Document:  doc,
		Registry:  events.NewRegistry(doc, events.WithDuplicatePolicy(policy)),
		Navigator: NewNavigator(o.baseURL, o.log),
	}
	if cfg.Metrics.Enable {
		if p.Metrics, err = events.NewMetrics(o.reg); err != nil {
			return nil, err
		}
	}
	p.Dispatcher = events.NewDispatcher(p.Registry,
		events.WithLogger(o.log),
		events.WithDefaultActions(p.Navigator),
		events.WithMetrics(p.Metrics),
	)
	p.Navigator.SetDispatcher(p.Dispatcher)

	if cfg.Script.Enable {
		p.Engine = script.NewEngine(script.WithCacheSize(cfg.Script.CacheSize), script.WithLogger(o.log))
		n, err := BindInlineHandlers(doc, p.Registry, p.Engine, o.log)
		if err != nil {
			return nil, err
		}
		o.log.WithField("handlers", n).Debug("bound inline handlers")
	}
	return p, nil
}

// Dispatch fires kind at the element with the given id.
func (p *Page) Dispatch(id, kind string) (*events.Result, error) {
	return p.Dispatcher.DispatchByID(id, kind)
}
