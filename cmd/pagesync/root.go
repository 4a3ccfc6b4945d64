package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-pagesync/internal/loader"
	"github.com/goliatone/go-pagesync/internal/logging"
	"github.com/goliatone/go-pagesync/internal/logging/gologger"
	"github.com/goliatone/go-pagesync/pkg/dataset"
	"github.com/goliatone/go-pagesync/pkg/interfaces"
	"github.com/goliatone/go-pagesync/pkg/orchestrator"
	"github.com/goliatone/go-pagesync/pkg/render"
	"github.com/goliatone/go-pagesync/pkg/renderers/fragments"
	"github.com/goliatone/go-pagesync/pkg/sections"
)

// app carries the state shared by every sub-command once configuration has
// been resolved.
type app struct {
	out      io.Writer
	cfgFile  string
	cfg      Config
	provider interfaces.LoggerProvider
}

func newRootCommand(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:   "pagesync",
		Short: "Sync JSON content into marked sections of static HTML pages",
		Long: `pagesync reads record files (topics, news, events, company, history),
renders each into an HTML fragment and replaces the region between
<!-- BEGIN: id --> and <!-- END: id --> in the bound page.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initialize(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBuild(cmd, false)
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./pagesync.yaml)")
	flags.String("data-dir", orchestrator.DefaultDataDir, "directory holding the JSON data files")
	flags.String("pages-dir", orchestrator.DefaultPagesDir, "directory holding the HTML pages")
	flags.String("log-level", "warn", "log level (trace, debug, info, warn, error)")

	root.AddCommand(
		newBuildCommand(a),
		newCheckCommand(a),
		newAddCommand(a),
	)
	return root
}

func (a *app) initialize(cmd *cobra.Command) error {
	cfg, used, err := loadConfig(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	provider, err := gologger.NewProvider(gologger.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
		Focus:     cfg.Log.Focus,
	})
	if err != nil {
		return err
	}
	a.provider = provider

	logger := a.logger("cli")
	if used != "" {
		logger.Debug("config loaded", "file", used)
	} else {
		logger.Debug("no config file, using defaults and environment")
	}
	return nil
}

func (a *app) logger(module string) interfaces.Logger {
	return logging.ModuleLogger(a.provider, module)
}

// orchestrator wires the configured stack.
func (a *app) orchestrator() (*orchestrator.Orchestrator, error) {
	set, err := fragments.New(
		fragments.WithTemplatesDir(a.cfg.TemplatesDir),
		fragments.WithSanitize(a.cfg.Sanitize),
	)
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	if err := set.Register(registry); err != nil {
		return nil, err
	}

	timeout := a.cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	options := []orchestrator.Option{
		orchestrator.WithLoader(loader.New(dataset.NewLoaderOptions(dataset.WithHTTPFallback(timeout)))),
		orchestrator.WithRegistry(registry),
		orchestrator.WithUpdater(sections.NewUpdater(
			sections.WithIndent(a.cfg.EndIndent),
			sections.WithStrictMarkers(a.cfg.StrictMarkers),
			sections.WithLogger(a.logger("sections")),
			sections.WithProgress(a.out),
		)),
		orchestrator.WithDataDir(a.cfg.DataDir),
		orchestrator.WithPagesDir(a.cfg.PagesDir),
		orchestrator.WithLogger(a.logger("orchestrator")),
		orchestrator.WithProgress(a.out),
	}
	if len(a.cfg.Bindings) > 0 {
		options = append(options, orchestrator.WithBindings(a.cfg.Bindings...))
	}
	return orchestrator.New(options...), nil
}

func (a *app) runBuild(cmd *cobra.Command, failOnError bool) error {
	orch, err := a.orchestrator()
	if err != nil {
		return err
	}
	report, err := orch.Run(cmd.Context())
	if err != nil {
		return err
	}
	if failOnError && report.Failed() {
		return fmt.Errorf("pagesync: %d of %d bindings failed", report.Count(orchestrator.StatusFailed), len(report.Results))
	}
	return nil
}
