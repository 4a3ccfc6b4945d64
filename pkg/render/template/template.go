package template

// TemplateRenderer executes a named template against a view map.
type TemplateRenderer interface {
	RenderTemplate(name string, data map[string]any) (string, error)
}
