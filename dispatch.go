package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/heathj/gobrowse-events/events"
	"github.com/heathj/gobrowse-events/page"
)

const dispatchDesc = `
Dispatch fires an event at the element with the given id and prints which
handlers ran, in which phase, and what the default action did, e.g:

    $ gobrowse-events dispatch index.html --target send --kind click
    NODE          	PHASE    	HANDLER	ERROR
    body          	bubbling 	onclick
    ...
`

type traceEntry struct {
	Node    string `json:"node"`
	Phase   string `json:"phase"`
	Handler string `json:"handler"`
	Error   string `json:"error,omitempty"`
}

type dispatchReport struct {
	Target           string            `json:"target"`
	Kind             string            `json:"kind"`
	State            string            `json:"state"`
	DefaultPrevented bool              `json:"defaultPrevented"`
	DefaultPerformed bool              `json:"defaultPerformed"`
	Trace            []traceEntry      `json:"trace"`
	Nested           []*dispatchReport `json:"nested,omitempty"`
	Navigations      []string          `json:"navigations,omitempty"`
	Submissions      []page.Submission `json:"submissions,omitempty"`
}

type dispatchOptions struct {
	*globalOptions

	target       string // --target
	kind         string // --kind
	outputFormat string // --output
	colWidth     uint   // --col-width
	metrics      bool   // --metrics

	page string
}

func newDispatchCmd(g *globalOptions, out io.Writer) *cobra.Command {
	o := &dispatchOptions{globalOptions: g}

	cmd := &cobra.Command{
		Use:   "dispatch PAGE",
		Short: "dispatch an event at an element of a page",
		Long:  dispatchDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.page = args[0]
			return o.run(out, cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.target, "target", "", "id of the element to dispatch at")
	f.StringVar(&o.kind, "kind", "click", "event kind to dispatch")
	f.StringVarP(&o.outputFormat, "output", "o", "table", "prints the output in the specified format (json|table|yaml)")
	f.UintVar(&o.colWidth, "col-width", 60, "specifies the max column width of output")
	f.BoolVar(&o.metrics, "metrics", false, "print dispatch metrics after the report")
	cmd.MarkFlagRequired("target")

	return cmd
}

func (o *dispatchOptions) run(out, errOut io.Writer) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	if o.metrics {
		cfg.Metrics.Enable = true
	}
	log, err := newLogger(cfg, errOut)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	p, err := openPage(o.page, cfg,
		page.WithLogger(log),
		page.WithRegisterer(reg),
		page.WithBaseURL(o.baseURL),
	)
	if err != nil {
		return err
	}

	res, err := p.Dispatch(o.target, o.kind)
	if err != nil {
		return err
	}
	report := newDispatchReport(res)
	for _, nested := range p.Navigator.Nested {
		report.Nested = append(report.Nested, newDispatchReport(nested))
	}
	report.Navigations = p.Navigator.History
	report.Submissions = p.Navigator.Submissions

	var b []byte
	switch o.outputFormat {
	case "yaml":
		b, err = yaml.Marshal(report)
	case "json":
		b, err = json.Marshal(report)
	case "table":
		b = []byte(formatReport(report, o.colWidth))
	default:
		return errors.Errorf("unknown output format %q", o.outputFormat)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(b))

	if cfg.Metrics.Enable {
		if err := writeMetrics(out, reg); err != nil {
			return err
		}
	}
	return nil
}

func newDispatchReport(res *events.Result) *dispatchReport {
	e := res.Event
	r := &dispatchReport{
		Target:           e.Target().Label(),
		Kind:             e.Type(),
		State:            e.State().String(),
		DefaultPrevented: e.DefaultPrevented(),
		DefaultPerformed: res.DefaultPerformed,
		Trace:            []traceEntry{},
	}
	for _, inv := range res.Trace {
		t := traceEntry{Node: inv.Node.Label(), Phase: inv.Phase.String(), Handler: inv.Handler}
		if inv.Err != nil {
			t.Error = inv.Err.Error()
		}
		r.Trace = append(r.Trace, t)
	}
	return r
}

func formatReport(r *dispatchReport, colWidth uint) string {
	var b strings.Builder
	writeEvent(&b, r, colWidth)
	for _, nested := range r.Nested {
		b.WriteString("\nNESTED ")
		writeEvent(&b, nested, colWidth)
	}
	for _, u := range r.Navigations {
		fmt.Fprintf(&b, "\nNAVIGATED: %s", u)
	}
	for _, s := range r.Submissions {
		fmt.Fprintf(&b, "\nSUBMITTED: %s %s %v", s.Method, s.Action, s.Fields)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeEvent(b *strings.Builder, r *dispatchReport, colWidth uint) {
	fmt.Fprintf(b, "EVENT: %s at %s\n", r.Kind, r.Target)
	fmt.Fprintf(b, "STATE: %s\n", r.State)
	fmt.Fprintf(b, "DEFAULT PREVENTED: %t\n", r.DefaultPrevented)
	if len(r.Trace) == 0 {
		return
	}
	table := uitable.New()
	table.MaxColWidth = colWidth
	table.AddRow("NODE", "PHASE", "HANDLER", "ERROR")
	for _, t := range r.Trace {
		table.AddRow(t.Node, t.Phase, t.Handler, t.Error)
	}
	fmt.Fprintf(b, "\n%s\n", table.String())
}

func writeMetrics(out io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return errors.Wrap(err, "gathering metrics")
	}
	fmt.Fprintln(out)
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return err
		}
	}
	return nil
}
