package orchestrator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-pagesync/pkg/dataset"
	"github.com/goliatone/go-pagesync/pkg/records"
)

// Default roots, relative to the working directory.
const (
	DefaultDataDir  = "data"
	DefaultPagesDir = "src"
)

// Binding connects a data file to a page section through a renderer.
type Binding struct {
	// Name labels the binding in logs and reports. Defaults to Section.
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Data is the payload location: a path (relative to the data root) or an
	// http(s) URL.
	Data string `json:"data" yaml:"data" mapstructure:"data"`

	// Renderer names a renderer in the registry.
	Renderer string `json:"renderer" yaml:"renderer" mapstructure:"renderer"`

	// Page is the HTML file, relative to the pages root unless absolute.
	Page string `json:"page" yaml:"page" mapstructure:"page"`

	// Section is the marker id inside Page.
	Section string `json:"section" yaml:"section" mapstructure:"section"`
}

// DefaultBindings returns the site's five bindings in build order.
func DefaultBindings() []Binding {
	return []Binding{
		{Name: records.KindTopics, Data: "topics.json", Renderer: records.KindTopics, Page: "index.html", Section: "topics"},
		{Name: records.KindNews, Data: "news.json", Renderer: records.KindNews, Page: "index.html", Section: "news"},
		{Name: records.KindEvents, Data: "events.json", Renderer: records.KindEvents, Page: "events.html", Section: "events"},
		{Name: records.KindCompany, Data: "company.json", Renderer: records.KindCompany, Page: "about.html", Section: "company"},
		{Name: records.KindHistory, Data: "history.json", Renderer: records.KindHistory, Page: "about.html", Section: "history"},
	}
}

// Label returns Name, falling back to Section.
func (b Binding) Label() string {
	if b.Name != "" {
		return b.Name
	}
	return b.Section
}

// Validate reports missing fields.
func (b Binding) Validate() error {
	var missing []string
	if strings.TrimSpace(b.Data) == "" {
		missing = append(missing, "data")
	}
	if strings.TrimSpace(b.Renderer) == "" {
		missing = append(missing, "renderer")
	}
	if strings.TrimSpace(b.Page) == "" {
		missing = append(missing, "page")
	}
	if strings.TrimSpace(b.Section) == "" {
		missing = append(missing, "section")
	}
	if len(missing) > 0 {
		return fmt.Errorf("orchestrator: binding %q: missing %s", b.Label(), strings.Join(missing, ", "))
	}
	return nil
}

// Resolve joins relative Data and Page paths onto the given roots. URLs and
// absolute paths are kept as is.
func (b Binding) Resolve(dataDir, pagesDir string) Binding {
	out := b
	if out.Name == "" {
		out.Name = out.Section
	}
	if src := dataset.ParseSource(out.Data); src != nil && src.Kind() == dataset.SourceKindFile {
		out.Data = joinRoot(dataDir, out.Data)
	}
	out.Page = joinRoot(pagesDir, out.Page)
	return out
}

// Source returns the dataset source for Data.
func (b Binding) Source() dataset.Source {
	return dataset.ParseSource(b.Data)
}

func joinRoot(root, path string) string {
	if path == "" || filepath.IsAbs(path) || root == "" {
		return path
	}
	return filepath.Join(root, path)
}
