package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-pagesync/internal/loader"
	"github.com/goliatone/go-pagesync/internal/logging"
	"github.com/goliatone/go-pagesync/pkg/dataset"
	"github.com/goliatone/go-pagesync/pkg/interfaces"
	"github.com/goliatone/go-pagesync/pkg/render"
	"github.com/goliatone/go-pagesync/pkg/renderers/fragments"
	"github.com/goliatone/go-pagesync/pkg/sections"
)

const (
	codeLoadFailed   = "DATA_LOAD_FAILED"
	codeRenderFailed = "FRAGMENT_RENDER_FAILED"
	codeUpdateFailed = "SECTION_UPDATE_FAILED"
)

// PageUpdater splices rendered content into a page section.
type PageUpdater interface {
	Update(ctx context.Context, page, sectionID, content string) error
}

var _ PageUpdater = (*sections.Updater)(nil)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom data loader.
func WithLoader(l dataset.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = l
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithUpdater injects the page updater. The default is a sections.Updater
// sharing the orchestrator's logger and progress writer.
func WithUpdater(updater PageUpdater) Option {
	return func(o *Orchestrator) {
		o.updater = updater
	}
}

// WithBindings replaces the default bindings.
func WithBindings(bindings ...Binding) Option {
	return func(o *Orchestrator) {
		o.bindings = append([]Binding(nil), bindings...)
		o.bindingsSet = true
	}
}

// WithDataDir sets the root that relative data paths resolve against.
func WithDataDir(dir string) Option {
	return func(o *Orchestrator) {
		o.dataDir = dir
	}
}

// WithPagesDir sets the root that relative page paths resolve against.
func WithPagesDir(dir string) Option {
	return func(o *Orchestrator) {
		o.pagesDir = dir
	}
}

// WithDataFS reads local data paths from files instead of the OS filesystem.
// The data root is then a directory inside files.
func WithDataFS(files fs.FS) Option {
	return func(o *Orchestrator) {
		o.dataFS = files
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithProgress sets the writer that receives the build banner and per-section
// progress lines.
func WithProgress(w io.Writer) Option {
	return func(o *Orchestrator) {
		o.progress = w
	}
}

// Orchestrator runs every binding in order.
type Orchestrator struct {
	loader        dataset.Loader
	registry      *render.Registry
	updater       PageUpdater
	bindings      []Binding
	bindingsSet   bool
	dataDir       string
	pagesDir      string
	dataFS        fs.FS
	logger        interfaces.Logger
	progress      io.Writer
	initialiseErr error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		dataDir:  DefaultDataDir,
		pagesDir: DefaultPagesDir,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	o.logger = logging.OrDefault(o.logger)
	if o.progress == nil {
		o.progress = io.Discard
	}
	if !o.bindingsSet {
		o.bindings = DefaultBindings()
	}
	if o.loader == nil {
		o.loader = loader.New(dataset.NewLoaderOptions(dataset.WithFileSystem(o.dataFS)))
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		set, err := fragments.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderers: %w", err)
		} else if err := set.Register(o.registry); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: register renderers: %w", err)
		}
	}
	if o.updater == nil {
		o.updater = sections.NewUpdater(
			sections.WithLogger(o.logger),
			sections.WithProgress(o.progress),
		)
	}
}

// Bindings returns the configured bindings resolved against the data and
// pages roots.
func (o *Orchestrator) Bindings() []Binding {
	out := make([]Binding, 0, len(o.bindings))
	for _, b := range o.bindings {
		out = append(out, b.Resolve(o.dataDir, o.pagesDir))
	}
	return out
}

// Run executes every binding sequentially. Binding failures are recorded in
// the Report; the returned error is reserved for configuration problems and
// cancellation.
func (o *Orchestrator) Run(ctx context.Context) (Report, error) {
	if ctx == nil {
		return Report{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Report{}, err
	}

	bindings := o.Bindings()
	if err := o.validate(bindings); err != nil {
		return Report{}, err
	}

	fmt.Fprint(o.progress, "Building HTML files from JSON data...\n\n")
	o.logger.Info("build started", "bindings", len(bindings))

	report := Report{Results: make([]Result, 0, len(bindings))}
	for _, binding := range bindings {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		result := o.runBinding(ctx, binding)
		report.Results = append(report.Results, result)
	}

	fmt.Fprint(o.progress, "\nBuild completed!\n")
	o.logger.Info("build completed",
		"updated", report.Count(StatusUpdated),
		"skipped", report.Count(StatusSkipped),
		"failed", report.Count(StatusFailed),
	)
	return report, nil
}

func (o *Orchestrator) validate(bindings []Binding) error {
	if len(bindings) == 0 {
		return errors.New("orchestrator: no bindings configured")
	}
	for _, b := range bindings {
		if err := b.Validate(); err != nil {
			return err
		}
		if !o.registry.Has(b.Renderer) {
			return fmt.Errorf("orchestrator: binding %q: renderer %q not registered (available: %s)",
				b.Label(), b.Renderer, strings.Join(o.registry.List(), ", "))
		}
	}
	return nil
}

func (o *Orchestrator) runBinding(ctx context.Context, b Binding) Result {
	logger := logging.WithFields(o.logger, map[string]any{
		"binding": b.Label(),
		"section": b.Section,
	})
	result := Result{Binding: b}

	doc, err := o.loader.Load(ctx, o.sourceFor(b))
	switch {
	case errors.Is(err, dataset.ErrEmptyDocument):
		logger.Debug("no records, section left untouched", "data", b.Data)
		result.Status = StatusSkipped
		return result
	case err != nil:
		fmt.Fprintf(o.progress, "Error loading %s: %v\n", b.Data, err)
		logger.Debug("load failed", "data", b.Data, "error", err)
		result.Err = commandError(err, codeLoadFailed, fmt.Sprintf("load %s", b.Data))
		result.Status = StatusFailed
		if errors.Is(err, os.ErrNotExist) {
			result.Status = StatusSkipped
		}
		return result
	}
	result.Records = doc.Len()

	renderer, err := o.registry.Get(b.Renderer)
	if err != nil {
		result.Status = StatusFailed
		result.Err = commandError(err, codeRenderFailed, fmt.Sprintf("render %s", b.Label()))
		return result
	}
	content, err := renderer.Render(ctx, doc)
	if err != nil {
		fmt.Fprintf(o.progress, "Error rendering %s: %v\n", b.Data, err)
		logger.Debug("render failed", "renderer", b.Renderer, "error", err)
		result.Status = StatusFailed
		result.Err = commandError(err, codeRenderFailed, fmt.Sprintf("render %s", b.Label()))
		return result
	}

	if err := o.updater.Update(ctx, b.Page, b.Section, content); err != nil {
		result.Status = StatusFailed
		result.Err = commandError(err, codeUpdateFailed, fmt.Sprintf("update %s#%s", b.Page, b.Section))
		return result
	}

	logger.Debug("binding updated", "records", result.Records, "page", b.Page)
	result.Status = StatusUpdated
	return result
}

func (o *Orchestrator) sourceFor(b Binding) dataset.Source {
	src := b.Source()
	if o.dataFS != nil && src != nil && src.Kind() == dataset.SourceKindFile {
		return dataset.SourceFromFS(filepath.ToSlash(b.Data))
	}
	return src
}

func commandError(err error, code, message string) error {
	return goerrors.Wrap(err, goerrors.CategoryCommand, message).WithTextCode(code)
}
