package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/heathj/gobrowse-events/page"
)

const treeDesc = `
Tree prints the element tree of a page in the html5lib test format, e.g:

    $ gobrowse-events tree index.html
    #document
    | <html>
    |   <head>
    |   <body>
    |     <a>
    |       href="/home"
    |       id="home"
`

type treeOptions struct {
	*globalOptions

	page string
}

func newTreeCmd(g *globalOptions, out io.Writer) *cobra.Command {
	o := &treeOptions{globalOptions: g}

	return &cobra.Command{
		Use:   "tree PAGE",
		Short: "print the element tree of a page",
		Long:  treeDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.page = args[0]
			return o.run(out, cmd.ErrOrStderr())
		},
	}
}

func (o *treeOptions) run(out, errOut io.Writer) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Verify(); err != nil {
		return err
	}
	log, err := newLogger(cfg, errOut)
	if err != nil {
		return err
	}

	f, err := os.Open(o.page)
	if err != nil {
		return errors.Wrapf(err, "can't open page: %s", o.page)
	}
	defer f.Close()

	doc, err := page.Load(f)
	if err != nil {
		return err
	}
	var elements int
	for range doc.Descendants() {
		elements++
	}
	log.WithFields(logrus.Fields{"page": o.page, "nodes": elements}).Debug("loaded page")

	fmt.Fprintln(out, doc.String())
	return nil
}
