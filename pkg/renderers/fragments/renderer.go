package fragments

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-pagesync/pkg/dataset"
	"github.com/goliatone/go-pagesync/pkg/records"
	"github.com/goliatone/go-pagesync/pkg/render"
	rendertemplate "github.com/goliatone/go-pagesync/pkg/render/template"
	"github.com/goliatone/go-pagesync/pkg/render/template/gotemplate"
)

// Option configures a Set.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
	sanitizer        *bluemonday.Policy
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk. It takes
// precedence over WithTemplatesFS.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templateDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithSanitizer passes every field value through policy before embedding.
// Nil keeps values verbatim.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		cfg.sanitizer = policy
	}
}

// WithSanitize toggles the default UGC sanitizing policy.
func WithSanitize(enabled bool) Option {
	return func(cfg *config) {
		if enabled {
			cfg.sanitizer = bluemonday.UGCPolicy()
		} else {
			cfg.sanitizer = nil
		}
	}
}

// Set renders every built-in record kind through a shared template engine.
type Set struct {
	templates rendertemplate.TemplateRenderer
	sanitizer *bluemonday.Policy
}

// New constructs a Set applying any provided options.
func New(options ...Option) (*Set, error) {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		source := gotemplate.WithFS(cfg.templateFS)
		if cfg.templateDir != "" {
			source = gotemplate.WithBaseDir(cfg.templateDir)
		}
		engine, err := gotemplate.New(source, gotemplate.WithExtension(".tpl"))
		if err != nil {
			return nil, fmt.Errorf("fragments: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Set{templates: renderer, sanitizer: cfg.sanitizer}, nil
}

// Renderers returns one named render.Renderer per record kind, in default
// build order.
func (s *Set) Renderers() []render.Renderer {
	return []render.Renderer{
		kindRenderer[records.Topic]{name: records.KindTopics, render: s.Topics},
		kindRenderer[records.NewsItem]{name: records.KindNews, render: s.News},
		kindRenderer[records.Event]{name: records.KindEvents, render: s.Events},
		kindRenderer[records.CompanyField]{name: records.KindCompany, render: s.Company},
		kindRenderer[records.HistoryItem]{name: records.KindHistory, render: s.History},
	}
}

// Register adds every kind renderer to registry.
func (s *Set) Register(registry *render.Registry) error {
	for _, renderer := range s.Renderers() {
		if err := registry.Register(renderer); err != nil {
			return err
		}
	}
	return nil
}

// Topics renders topic cards.
func (s *Set) Topics(items []records.Topic) (string, error) {
	return renderEach(s, records.KindTopics, items, func(topic records.Topic) map[string]any {
		classes := []string{"topic-card"}
		if topic.Highlight {
			classes = append(classes, "highlight")
		}
		if topic.Campaign {
			classes = append(classes, "campaign")
		}
		return map[string]any{
			"classes":     strings.Join(classes, " "),
			"badge":       s.clean(topic.Badge),
			"icon":        s.clean(topic.Icon),
			"title":       s.clean(topic.Title),
			"description": s.clean(topic.Description),
			"campaign":    topic.Campaign,
		}
	})
}

// News renders news articles.
func (s *Set) News(items []records.NewsItem) (string, error) {
	return renderEach(s, records.KindNews, items, func(item records.NewsItem) map[string]any {
		return map[string]any{
			"date":        s.clean(item.Date),
			"title":       s.clean(item.Title),
			"description": s.clean(item.Description),
		}
	})
}

// Events renders event table rows with result and video links.
func (s *Set) Events(items []records.Event) (string, error) {
	return renderEach(s, records.KindEvents, items, func(event records.Event) map[string]any {
		return map[string]any{
			"date":     s.clean(event.Date),
			"name":     s.clean(event.Name),
			"pdf":      s.clean(event.PDF),
			"video_id": s.clean(event.VideoID),
		}
	})
}

// Company renders company profile rows; staff-list values become an
// enumerated list.
func (s *Set) Company(items []records.CompanyField) (string, error) {
	return renderEach(s, records.KindCompany, items, func(field records.CompanyField) map[string]any {
		staff := make([]any, 0, len(field.Value.Staff))
		for _, member := range field.Value.Staff {
			staff = append(staff, map[string]any{
				"name":    s.clean(member.Name),
				"machine": s.clean(member.Machine),
			})
		}
		return map[string]any{
			"label":      s.clean(field.Label),
			"staff_list": field.Value.IsStaffList(),
			"staff":      staff,
			"text":       s.clean(field.Value.Text),
		}
	})
}

// History renders history table rows.
func (s *Set) History(items []records.HistoryItem) (string, error) {
	return renderEach(s, records.KindHistory, items, func(item records.HistoryItem) map[string]any {
		return map[string]any{
			"date":        s.clean(item.Date),
			"description": s.clean(item.Description),
		}
	})
}

func (s *Set) clean(value string) string {
	if s.sanitizer == nil || value == "" {
		return value
	}
	return s.sanitizer.Sanitize(value)
}

func renderEach[T any](s *Set, kind string, items []T, view func(T) map[string]any) (string, error) {
	if s == nil || s.templates == nil {
		return "", fmt.Errorf("fragments: template renderer is nil")
	}

	parts := make([]string, 0, len(items))
	for i, item := range items {
		out, err := s.templates.RenderTemplate(kind, view(item))
		if err != nil {
			return "", fmt.Errorf("fragments: %s record %d: %w", kind, i, err)
		}
		parts = append(parts, out)
	}
	return strings.Join(parts, "\n"), nil
}

type kindRenderer[T records.Record] struct {
	name   string
	render func([]T) (string, error)
}

func (k kindRenderer[T]) Name() string {
	return k.name
}

func (k kindRenderer[T]) Render(ctx context.Context, doc dataset.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	items, err := records.Decode[T](doc)
	if err != nil {
		return "", err
	}
	return k.render(items)
}
