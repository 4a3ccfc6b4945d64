package fragments_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-pagesync/pkg/records"
	"github.com/goliatone/go-pagesync/pkg/render"
	"github.com/goliatone/go-pagesync/pkg/renderers/fragments"
	"github.com/goliatone/go-pagesync/pkg/testsupport"
)

func newSet(t *testing.T, options ...fragments.Option) *fragments.Set {
	t.Helper()
	set, err := fragments.New(options...)
	if err != nil {
		t.Fatalf("new set: %v", err)
	}
	return set
}

func TestTopicsClassesAndBadge(t *testing.T) {
	set := newSet(t)

	out, err := set.Topics([]records.Topic{
		{Title: "Open Day", Description: "Come visit", Icon: "star", Badge: "NEW", Highlight: true},
	})
	if err != nil {
		t.Fatalf("render topics: %v", err)
	}

	want := strings.Join([]string{
		`                <div class="topic-card highlight">`,
		`                    <div class="card-badge">NEW</div>`,
		`                    <div class="card-icon"><span class="material-icons-round">star</span></div>`,
		`                    <h3>Open Day</h3>`,
		`                    <p>Come visit</p>`,
		`                </div>`,
	}, "\n")
	if diff := testsupport.CompareGolden(want, out); diff != "" {
		t.Fatalf("topics mismatch (-want +got):\n%s", diff)
	}
}

func TestTopicsCampaignWithoutBadge(t *testing.T) {
	set := newSet(t)

	out, err := set.Topics([]records.Topic{
		{Title: "Sale", Description: "Half price", Icon: "sell", Campaign: true},
	})
	if err != nil {
		t.Fatalf("render topics: %v", err)
	}

	if strings.Contains(out, "card-badge") {
		t.Fatalf("expected no badge element, got:\n%s", out)
	}
	if !strings.Contains(out, `<div class="topic-card campaign">`) {
		t.Fatalf("expected campaign class, got:\n%s", out)
	}
	if !strings.Contains(out, `<p class="campaign-text">Half price</p>`) {
		t.Fatalf("expected campaign paragraph, got:\n%s", out)
	}
}

func TestNewsSingleItem(t *testing.T) {
	set := newSet(t)

	out, err := set.News([]records.NewsItem{
		{Date: "2024.01.01", Title: "Open", Description: "We opened"},
	})
	if err != nil {
		t.Fatalf("render news: %v", err)
	}

	want := "                <article class=\"news-item\">\n" +
		"                    <div class=\"news-date\">2024.01.01</div>\n" +
		"                    <div class=\"news-content\">\n" +
		"                        <h3>Open</h3>\n" +
		"                        <p>We opened</p>\n" +
		"                    </div>\n" +
		"                </article>"
	if diff := testsupport.CompareGolden(want, out); diff != "" {
		t.Fatalf("news mismatch (-want +got):\n%s", diff)
	}
}

func TestFragmentsJoinRecordsWithSingleNewline(t *testing.T) {
	set := newSet(t)

	out, err := set.History([]records.HistoryItem{
		{Date: "2001", Description: "Founded"},
		{Date: "2010", Description: "Moved"},
		{Date: "2020", Description: "Expanded"},
	})
	if err != nil {
		t.Fatalf("render history: %v", err)
	}

	if got := strings.Count(out, "<tr>"); got != 3 {
		t.Fatalf("expected 3 rows, got %d", got)
	}
	if strings.HasSuffix(out, "\n") || strings.HasPrefix(out, "\n") {
		t.Fatalf("fragment must not start or end with a newline: %q", out)
	}
	if !strings.Contains(out, "</tr>\n                    <tr>") {
		t.Fatalf("expected rows joined by one newline, got:\n%s", out)
	}
}

func TestEventsRow(t *testing.T) {
	set := newSet(t)

	out, err := set.Events([]records.Event{
		{Date: "2024.03.10", Name: "Spring Cup", PDF: "results/spring.pdf", VideoID: "abc123"},
	})
	if err != nil {
		t.Fatalf("render events: %v", err)
	}

	golden := filepath.Join("testdata", "events.golden")
	if testsupport.WriteMaybeGolden(t, golden, []byte(out)) {
		return
	}
	want := testsupport.MustReadGoldenString(t, golden)
	if diff := testsupport.CompareGolden(want, out); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestCompanyStaffListAndText(t *testing.T) {
	set := newSet(t)

	out, err := set.Company([]records.CompanyField{
		{Label: "Name", Value: records.TextValue("ACME")},
		{Label: "Staff", Value: records.StaffValue(
			records.StaffMember{Name: "A", Machine: "M1"},
			records.StaffMember{Name: "B", Machine: "M2"},
		)},
	})
	if err != nil {
		t.Fatalf("render company: %v", err)
	}

	golden := filepath.Join("testdata", "company.golden")
	if testsupport.WriteMaybeGolden(t, golden, []byte(out)) {
		return
	}
	want := testsupport.MustReadGoldenString(t, golden)
	if diff := testsupport.CompareGolden(want, out); diff != "" {
		t.Fatalf("company mismatch (-want +got):\n%s", diff)
	}
	if got := strings.Count(out, "<li>"); got != 2 {
		t.Fatalf("expected 2 staff entries, got %d", got)
	}
}

func TestCompanyEmptyStaffList(t *testing.T) {
	set := newSet(t)

	out, err := set.Company([]records.CompanyField{
		{Label: "Staff", Value: records.StaffValue()},
	})
	if err != nil {
		t.Fatalf("render company: %v", err)
	}

	want := "<td><ul class=\"staff-list\">\n\n                            </ul></td>"
	if !strings.Contains(out, want) {
		t.Fatalf("expected empty staff list %q in:\n%s", want, out)
	}
}

func TestValuesAreEmbeddedVerbatim(t *testing.T) {
	set := newSet(t)

	out, err := set.News([]records.NewsItem{
		{Date: "d", Title: "<em>Hi</em> & bye", Description: "<a href=\"/x\">x</a>"},
	})
	if err != nil {
		t.Fatalf("render news: %v", err)
	}
	if !strings.Contains(out, "<h3><em>Hi</em> & bye</h3>") {
		t.Fatalf("expected raw markup, got:\n%s", out)
	}
}

func TestSanitizeStripsScripts(t *testing.T) {
	set := newSet(t, fragments.WithSanitize(true))

	out, err := set.News([]records.NewsItem{
		{Date: "d", Title: "Hi<script>alert(1)</script>", Description: "<b>ok</b>"},
	})
	if err != nil {
		t.Fatalf("render news: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("expected script to be stripped, got:\n%s", out)
	}
	if !strings.Contains(out, "<p><b>ok</b></p>") {
		t.Fatalf("expected safe markup kept, got:\n%s", out)
	}
}

func TestEmptyInputRendersEmptyFragment(t *testing.T) {
	set := newSet(t)

	out, err := set.Topics(nil)
	if err != nil {
		t.Fatalf("render topics: %v", err)
	}
	if out != "" {
		t.Fatalf("expected empty fragment, got %q", out)
	}
}

func TestCustomTemplatesFS(t *testing.T) {
	files := fstest.MapFS{
		"history.tpl": &fstest.MapFile{Data: []byte("<li>{{ date|safe }}: {{ description|safe }}</li>")},
	}
	set := newSet(t, fragments.WithTemplatesFS(files))

	out, err := set.History([]records.HistoryItem{{Date: "1999", Description: "Start"}, {Date: "2000", Description: "Grow"}})
	if err != nil {
		t.Fatalf("render history: %v", err)
	}
	if out != "<li>1999: Start</li>\n<li>2000: Grow</li>" {
		t.Fatalf("unexpected output %q", out)
	}

	if _, err := set.News([]records.NewsItem{{Date: "d", Title: "t", Description: "x"}}); err == nil {
		t.Fatalf("expected missing template error")
	}
}

func TestTemplatesDirOverridesFS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "news.tpl"), []byte("<p>{{ title|safe }}</p>"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	files := fstest.MapFS{
		"news.tpl": &fstest.MapFile{Data: []byte("from-fs")},
	}

	set := newSet(t, fragments.WithTemplatesDir(dir), fragments.WithTemplatesFS(files))
	out, err := set.News([]records.NewsItem{{Date: "d", Title: "Launch", Description: "x"}})
	if err != nil {
		t.Fatalf("render news: %v", err)
	}
	if out != "<p>Launch</p>" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestTemplatesDirMustExist(t *testing.T) {
	_, err := fragments.New(fragments.WithTemplatesDir(filepath.Join(t.TempDir(), "missing")))
	if err == nil {
		t.Fatal("expected error for missing templates dir")
	}
}

type viewRecorder struct {
	names []string
}

func (r *viewRecorder) RenderTemplate(name string, data map[string]any) (string, error) {
	r.names = append(r.names, name)
	return fmt.Sprintf("[%s:%v]", name, data["classes"]), nil
}

func TestCustomTemplateRenderer(t *testing.T) {
	recorder := &viewRecorder{}
	set := newSet(t, fragments.WithTemplateRenderer(recorder))

	out, err := set.Topics([]records.Topic{
		{Title: "A", Description: "a", Icon: "i", Campaign: true},
		{Title: "B", Description: "b", Icon: "i", Highlight: true},
	})
	if err != nil {
		t.Fatalf("render topics: %v", err)
	}
	if out != "[topics:topic-card campaign]\n[topics:topic-card highlight]" {
		t.Fatalf("unexpected output %q", out)
	}
	if len(recorder.names) != 2 {
		t.Fatalf("expected one template call per record, got %v", recorder.names)
	}
}

func TestRegisterExposesEveryKind(t *testing.T) {
	set := newSet(t)
	registry := render.NewRegistry()
	if err := set.Register(registry); err != nil {
		t.Fatalf("register: %v", err)
	}

	want := []string{"company", "events", "history", "news", "topics"}
	if diff := testsupport.CompareGolden(want, registry.List()); diff != "" {
		t.Fatalf("registry names mismatch (-want +got):\n%s", diff)
	}
	if err := set.Register(registry); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}

func TestKindRendererDecodesDocument(t *testing.T) {
	set := newSet(t)
	registry := render.NewRegistry()
	if err := set.Register(registry); err != nil {
		t.Fatalf("register: %v", err)
	}
	renderer, err := registry.Get("topics")
	if err != nil {
		t.Fatalf("get renderer: %v", err)
	}

	doc := testsupport.DocumentFromString(t, "data/topics.json",
		`[{"title":"T","description":"D","icon":"i","highlight":true},{"title":"U","description":"E","icon":"j"}]`)
	out, err := renderer.Render(testsupport.Context(), doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := strings.Count(out, `<div class="topic-card`); got != 2 {
		t.Fatalf("expected 2 cards, got %d", got)
	}
	if !strings.Contains(out, `<div class="topic-card highlight">`) {
		t.Fatalf("expected highlight card, got:\n%s", out)
	}
}

func TestKindRendererReportsValidationErrors(t *testing.T) {
	set := newSet(t)
	renderer := set.Renderers()[1]

	doc := testsupport.DocumentFromString(t, "data/news.json", `[{"date":"d","title":"t"}]`)
	_, err := renderer.Render(testsupport.Context(), doc)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestKindRendererHonoursCancellation(t *testing.T) {
	set := newSet(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc := testsupport.DocumentFromString(t, "data/history.json", `[{"date":"d","description":"x"}]`)
	_, err := set.Renderers()[4].Render(ctx, doc)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
