package records_test

import (
	"encoding/json"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pagesync/pkg/dataset"
	"github.com/goliatone/go-pagesync/pkg/records"
)

func mustDocument(t *testing.T, location, payload string) dataset.Document {
	t.Helper()
	doc, err := dataset.FromJSON(dataset.SourceFromFile(location), []byte(payload))
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	return doc
}

func TestDecodeTopicsPreservesOrderAndOptionalFields(t *testing.T) {
	doc := mustDocument(t, "data/topics.json", `[
		{"title":"A","description":"first","icon":"star","badge":"NEW","highlight":true},
		{"title":"B","description":"second","icon":"bolt","campaign":true,"extra":"ignored"}
	]`)

	got, err := records.Decode[records.Topic](doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := []records.Topic{
		{Title: "A", Description: "first", Icon: "star", Badge: "NEW", Highlight: true},
		{Title: "B", Description: "second", Icon: "bolt", Campaign: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("topics mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeMissingRequiredKey(t *testing.T) {
	doc := mustDocument(t, "data/news.json", `[
		{"date":"2024-01-01","title":"T","description":"D"},
		{"date":"2024-01-02","title":"No description"}
	]`)

	_, err := records.Decode[records.NewsItem](doc)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	for _, fragment := range []string{"data/news.json", "record 1", "description"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("expected error to mention %q, got %v", fragment, err)
		}
	}
}

func TestDecodeAcceptsEmptyStrings(t *testing.T) {
	doc := mustDocument(t, "data/history.json", `[{"date":"","description":""}]`)

	got, err := records.Decode[records.HistoryItem](doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0] != (records.HistoryItem{}) {
		t.Fatalf("unexpected history items: %#v", got)
	}
}

func TestDecodeRejectsNonObjectRecords(t *testing.T) {
	doc := mustDocument(t, "data/events.json", `["not an object"]`)

	if _, err := records.Decode[records.Event](doc); err == nil {
		t.Fatal("expected error for non-object record")
	}
}

func TestDecodeEventsUsesCamelCaseVideoID(t *testing.T) {
	doc := mustDocument(t, "data/events.json", `[{"date":"2024/05/01","name":"Cup","pdf":"cup.pdf","videoId":"abc123"}]`)

	got, err := records.Decode[records.Event](doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got[0].VideoID != "abc123" || got[0].PDF != "cup.pdf" {
		t.Fatalf("unexpected event %#v", got[0])
	}
}

func TestDecodeCompanyVariants(t *testing.T) {
	doc := mustDocument(t, "data/company.json", `[
		{"label":"Name","value":"ACME"},
		{"label":"Founded","value":1999},
		{"label":"Staff","value":[{"name":"Ann","machine":"Z-1"},{"name":"Bo","machine":"Z-2"}]},
		{"label":"Vacant","value":[]}
	]`)

	got, err := records.Decode[records.CompanyField](doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := []records.CompanyField{
		{Label: "Name", Value: records.TextValue("ACME")},
		{Label: "Founded", Value: records.TextValue("1999")},
		{Label: "Staff", Value: records.StaffValue(
			records.StaffMember{Name: "Ann", Machine: "Z-1"},
			records.StaffMember{Name: "Bo", Machine: "Z-2"},
		)},
		{Label: "Vacant", Value: records.StaffValue()},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(records.CompanyValue{})); diff != "" {
		t.Fatalf("company mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeCompanyRejectsIncompleteStaff(t *testing.T) {
	cases := map[string]string{
		"missing machine": `[{"label":"Staff","value":[{"name":"Ann"}]}]`,
		"null value":      `[{"label":"Staff","value":null}]`,
		"object value":    `[{"label":"Staff","value":{"name":"Ann"}}]`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			doc := mustDocument(t, "data/company.json", payload)
			if _, err := records.Decode[records.CompanyField](doc); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestCompanyValueMarshalKeepsVariant(t *testing.T) {
	text, err := json.Marshal(records.TextValue("ACME"))
	if err != nil {
		t.Fatalf("marshal text: %v", err)
	}
	if string(text) != `"ACME"` {
		t.Fatalf("unexpected text payload %s", text)
	}

	staff, err := json.Marshal(records.StaffValue())
	if err != nil {
		t.Fatalf("marshal staff: %v", err)
	}
	if string(staff) != `[]` {
		t.Fatalf("unexpected staff payload %s", staff)
	}
}

func TestValidateRecord(t *testing.T) {
	if err := records.Validate(records.NewsItem{Date: "2024-01-01", Title: "T", Description: "D"}); err != nil {
		t.Fatalf("validate news: %v", err)
	}
	if err := records.Validate(records.CompanyField{Label: "Staff", Value: records.StaffValue(records.StaffMember{Name: "Ann", Machine: "Z"})}); err != nil {
		t.Fatalf("validate company: %v", err)
	}
}
