package dataset

import (
	"encoding/json"
	"errors"
)

// ErrEmptyDocument reports a payload that decoded to an empty sequence (or
// null). Callers treat it like a missing file: the section is left untouched.
var ErrEmptyDocument = errors.New("dataset: document holds no records")

// Source identifies where a record payload originated.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Document is an ordered sequence of raw records together with their origin.
// Records stay undecoded so each renderer can resolve them into its own type.
type Document struct {
	source  Source
	records []json.RawMessage
}

// NewDocument constructs a Document, copying the supplied records.
func NewDocument(src Source, records []json.RawMessage) (Document, error) {
	if src == nil {
		return Document{}, errors.New("dataset: source is required")
	}
	if len(records) == 0 {
		return Document{}, ErrEmptyDocument
	}

	clone := make([]json.RawMessage, len(records))
	for i, record := range records {
		clone[i] = append(json.RawMessage(nil), record...)
	}
	return Document{source: src, records: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, records []json.RawMessage) Document {
	doc, err := NewDocument(src, records)
	if err != nil {
		panic(err)
	}
	return doc
}

// FromJSON decodes a JSON array payload into a Document.
func FromJSON(src Source, raw []byte) (Document, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return Document{}, err
	}
	return NewDocument(src, records)
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Len reports the number of records.
func (d Document) Len() int {
	return len(d.records)
}

// Records returns the raw records in their original order.
func (d Document) Records() []json.RawMessage {
	out := make([]json.RawMessage, len(d.records))
	copy(out, d.records)
	return out
}
