package page

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/heathj/gobrowse-events/dom"
	"github.com/heathj/gobrowse-events/events"
)

// Submission is a form submitted by a default action.
type Submission struct {
	Action string            `json:"action"`
	Method string            `json:"method"`
	Fields map[string]string `json:"fields"`
}

// Navigator performs the default actions of clicks and submits: following links and
// submitting forms. It only records where the page would go; nothing is fetched.
type Navigator struct {
	BaseURL     string
	History     []string
	Submissions []Submission
	// Nested holds the results of dispatches started by default actions, such as the
	// submit a submit button fires at its form.
	Nested []*events.Result

	dispatcher *events.Dispatcher
	log        logrus.FieldLogger
}

func NewNavigator(baseURL string, log logrus.FieldLogger) *Navigator {
	return &Navigator{BaseURL: baseURL, log: log}
}

// SetDispatcher lets a submit button dispatch submit at its form.
func (n *Navigator) SetDispatcher(d *events.Dispatcher) {
	n.dispatcher = d
}

func (n *Navigator) PerformDefault(e *events.Event) error {
	switch e.Type() {
	case "click":
		return n.click(e.Target())
	case "submit":
		return n.submit(e.Target())
	}
	return nil
}

// https://html.spec.whatwg.org/#following-hyperlinks-2
func (n *Navigator) click(target *dom.Node) error {
	if a := target.Closest("a"); a != nil {
		href, ok := a.GetAttribute("href")
		if !ok {
			return nil
		}
		u, err := n.resolve(href)
		if err != nil {
			return err
		}
		n.log.WithField("url", u).Info("navigating")
		n.History = append(n.History, u)
		return nil
	}

	if !isSubmitButton(target) {
		return nil
	}
	form := target.Closest("form")
	if form == nil || n.dispatcher == nil {
		return nil
	}
	res, err := n.dispatcher.Dispatch(form, "submit")
	if res != nil {
		n.Nested = append(n.Nested, res)
	}
	return err
}

// https://html.spec.whatwg.org/#form-submission-algorithm
func (n *Navigator) submit(form *dom.Node) error {
	if form.NodeName != "form" {
		return nil
	}
	action, _ := form.GetAttribute("action")
	u, err := n.resolve(action)
	if err != nil {
		return err
	}
	method, _ := form.GetAttribute("method")
	method = strings.ToUpper(method)
	if method != "POST" {
		method = "GET"
	}

	s := Submission{Action: u, Method: method, Fields: map[string]string{}}
	for field := range form.Descendants() {
		switch field.NodeName {
		case "input", "textarea", "select":
		default:
			continue
		}
		name, ok := field.GetAttribute("name")
		if !ok || name == "" || field.HasAttribute("disabled") {
			continue
		}
		value, _ := field.GetAttribute("value")
		s.Fields[name] = value
	}

	n.log.WithFields(logrus.Fields{"action": s.Action, "method": s.Method}).Info("submitting form")
	n.Submissions = append(n.Submissions, s)
	return nil
}

func (n *Navigator) resolve(ref string) (string, error) {
	if n.BaseURL == "" {
		return ref, nil
	}
	base, err := url.Parse(n.BaseURL)
	if err != nil {
		return "", errors.Wrapf(err, "invalid base url %q", n.BaseURL)
	}
	u, err := base.Parse(ref)
	if err != nil {
		return "", errors.Wrapf(err, "invalid url %q", ref)
	}
	return u.String(), nil
}

func isSubmitButton(n *dom.Node) bool {
	typ, _ := n.GetAttribute("type")
	typ = strings.ToLower(typ)
	switch n.NodeName {
	case "button":
		return typ == "" || typ == "submit"
	case "input":
		return typ == "submit"
	}
	return false
}
