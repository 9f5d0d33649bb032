package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/heathj/gobrowse-events/config"
	"github.com/heathj/gobrowse-events/page"
)

const rootDesc = `
Load an HTML page and dispatch DOM events at its elements.

Inline on<kind> attributes are compiled into event handlers, events travel
through the capture, target and bubble phases, and the default action of a
link click or form submit is recorded instead of performed.
`

// globalOptions are the flags every subcommand shares.
type globalOptions struct {
	configFile string
	debug      bool
	baseURL    string
}

func newRootCmd(out io.Writer, args []string) *cobra.Command {
	o := &globalOptions{}

	cmd := &cobra.Command{
		Use:          "gobrowse-events",
		Short:        "Dispatch DOM events at HTML pages",
		Long:         rootDesc,
		SilenceUsage: true,
	}
	cmd.SetArgs(args)
	cmd.SetOut(out)

	f := cmd.PersistentFlags()
	f.StringVar(&o.configFile, "config", "", "path to a YAML config file")
	f.BoolVar(&o.debug, "debug", false, "enable verbose output")
	f.StringVar(&o.baseURL, "base-url", "", "URL that links and form actions resolve against")

	cmd.AddCommand(
		newTreeCmd(o, out),
		newDispatchCmd(o, out),
	)
	return cmd
}

func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg := config.NewConfig()
	if o.configFile != "" {
		var err error
		if cfg, err = config.NewConfigWithFile(o.configFile); err != nil {
			return nil, err
		}
	}
	if o.debug {
		cfg.Debug = true
	}
	return cfg, nil
}

// newLogger writes text logs to w at the level cfg asks for.
func newLogger(cfg *config.Config, w io.Writer) (*logrus.Logger, error) {
	lvl, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: !cfg.Debug,
	})
	return log, nil
}

func openPage(path string, cfg *config.Config, opts ...page.Option) (*page.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "can't open page: %s", path)
	}
	defer f.Close()
	return page.Open(f, cfg, opts...)
}
