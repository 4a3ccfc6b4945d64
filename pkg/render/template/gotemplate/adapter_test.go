package gotemplate_test

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-pagesync/pkg/render/template/gotemplate"
	"github.com/goliatone/go-pagesync/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "hello.golden"))
	if result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestEngine_RenderTemplateJoinsLoopWithoutTrailingNewline(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("list.tpl", map[string]any{
		"items": []any{
			map[string]any{"label": "<b>one</b>"},
			map[string]any{"label": "two"},
		},
	})
	if err != nil {
		t.Fatalf("render list: %v", err)
	}

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "list.golden"))
	if diff := testsupport.CompareGolden(want, result); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_BaseDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "row.html"), []byte("<td>{{ value }}</td>"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	engine, err := gotemplate.New(
		gotemplate.WithBaseDir(dir),
		gotemplate.WithFS(embeddedTemplates),
		gotemplate.WithExtension("html"),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	for i := 0; i < 2; i++ {
		result, err := engine.RenderTemplate("row", map[string]any{"value": "x"})
		if err != nil {
			t.Fatalf("render %d: %v", i, err)
		}
		if result != "<td>x</td>" {
			t.Fatalf("render %d: unexpected output %q", i, result)
		}
	}
}

func TestEngine_BaseDirMustExist(t *testing.T) {
	if _, err := gotemplate.New(gotemplate.WithBaseDir(filepath.Join(t.TempDir(), "missing"))); err == nil {
		t.Fatal("expected error for missing template dir")
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("absent", nil); err == nil {
		t.Fatal("expected error for missing template")
	}
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatal("expected error without base dir or fs")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
