// Package page loads HTML documents into a dom tree and wires them up for event dispatch:
// inline handler attributes become registered handlers and a Navigator performs the
// default actions of links and forms.
package page

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/heathj/gobrowse-events/dom"
	"github.com/heathj/gobrowse-events/events"
	"github.com/heathj/gobrowse-events/script"
)

// Load parses an HTML document and returns its element tree. Text, comments and the
// doctype are dropped since only elements take part in event dispatch.
func Load(r io.Reader) (*dom.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "parsing html")
	}
	doc := dom.NewDocument()
	if err := build(doc.Node, root); err != nil {
		return nil, err
	}
	return doc, nil
}

func build(parent *dom.Node, n *html.Node) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		attrs := make(map[string]string, len(c.Attr))
		for _, a := range c.Attr {
			// the first occurrence of an attribute wins
			if _, ok := attrs[a.Key]; !ok {
				attrs[a.Key] = a.Val
			}
		}
		el, err := parent.AppendChild(dom.NewElement(c.Data, attrs))
		if err != nil {
			return err
		}
		if err := build(el, c); err != nil {
			return err
		}
	}
	return nil
}

// BindInlineHandlers registers every on<kind> attribute in doc as a bubbling handler for
// <kind>. Handlers that fail to compile are logged and skipped. It returns how many
// handlers were registered.
// https://html.spec.whatwg.org/#event-handler-attributes
func BindInlineHandlers(doc *dom.Document, reg *events.Registry, engine *script.Engine, log logrus.FieldLogger) (int, error) {
	bound := 0
	for n := range doc.Descendants() {
		if n.NodeType != dom.ElementNode {
			continue
		}
		for _, name := range n.GetAttributeNames() {
			if !strings.HasPrefix(name, "on") || len(name) <= 2 {
				continue
			}
			source, _ := n.GetAttribute(name)
			h, err := engine.Handler(name, source)
			if err != nil {
				log.WithFields(logrus.Fields{"node": n.Label(), "attr": name}).WithError(err).Warn("skipping inline handler")
				continue
			}
			if err := reg.Register(n, name[2:], events.Bubbling, h); err != nil {
				return bound, err
			}
			bound++
		}
	}
	return bound, nil
}
