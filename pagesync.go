// Package pagesync keeps data-driven sections of static HTML pages in sync
// with JSON record files. The root package re-exports the pieces most callers
// need; see pkg/orchestrator for the full pipeline.
package pagesync

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-pagesync/internal/loader"
	"github.com/goliatone/go-pagesync/pkg/dataset"
	"github.com/goliatone/go-pagesync/pkg/orchestrator"
	"github.com/goliatone/go-pagesync/pkg/renderers/fragments"
)

// Binding connects a data file, a renderer and a page section.
type Binding = orchestrator.Binding

// Report summarises a build.
type Report = orchestrator.Report

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Build runs the default bindings (data/*.json into src/*.html) relative to
// the working directory.
func Build(ctx context.Context, options ...orchestrator.Option) (Report, error) {
	return orchestrator.New(options...).Run(ctx)
}

// NewLoader returns the built-in data loader (files, fs.FS, HTTP).
func NewLoader(options ...dataset.LoaderOption) dataset.Loader {
	return loader.New(dataset.NewLoaderOptions(options...))
}

// EmbeddedTemplates exposes the built-in record templates so callers can
// copy and customise them.
func EmbeddedTemplates() fs.FS {
	return fragments.TemplatesFS()
}
