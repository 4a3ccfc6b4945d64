package render

import (
	"context"

	"github.com/goliatone/go-pagesync/pkg/dataset"
)

// Renderer turns a record document into the HTML fragment spliced into a
// page section. Implementations must be pure: same document, same output.
type Renderer interface {
	Name() string
	Render(ctx context.Context, doc dataset.Document) (string, error)
}

// Func adapts a function into a named Renderer.
func Func(name string, fn func(ctx context.Context, doc dataset.Document) (string, error)) Renderer {
	return funcRenderer{name: name, fn: fn}
}

type funcRenderer struct {
	name string
	fn   func(ctx context.Context, doc dataset.Document) (string, error)
}

func (r funcRenderer) Name() string {
	return r.name
}

func (r funcRenderer) Render(ctx context.Context, doc dataset.Document) (string, error) {
	return r.fn(ctx, doc)
}
