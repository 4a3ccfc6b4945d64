// Package authoring adds records to data files through interactive prompts.
package authoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/natefinch/atomic"

	"github.com/goliatone/go-pagesync/internal/logging"
	"github.com/goliatone/go-pagesync/pkg/interfaces"
	"github.com/goliatone/go-pagesync/pkg/records"
)

const (
	dateLayout = "2006.01.02"

	// newFileMode applies to data files created by Add; existing files keep
	// their permissions.
	newFileMode os.FileMode = 0o644
)

// Request selects the record kind and the data file to extend.
type Request struct {
	Kind string
	Path string
	// Append adds the record at the end instead of the front.
	Append bool
}

// Option configures an Author.
type Option func(*Author)

// WithLogger sets the structured logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(a *Author) {
		a.logger = logging.OrDefault(logger)
	}
}

// WithClock overrides the clock used for default dates.
func WithClock(now func() time.Time) Option {
	return func(a *Author) {
		if now != nil {
			a.now = now
		}
	}
}

// Author runs authoring flows against a PromptDriver.
type Author struct {
	driver PromptDriver
	logger interfaces.Logger
	now    func() time.Time
}

// New constructs an Author.
func New(driver PromptDriver, options ...Option) *Author {
	a := &Author{
		driver: driver,
		logger: logging.NoOp(),
		now:    time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	return a
}

// Add prompts for one record of req.Kind, validates it and writes it into
// req.Path. A missing file is created.
func (a *Author) Add(ctx context.Context, req Request) error {
	if a.driver == nil {
		return errors.New("authoring: prompt driver is required")
	}
	if req.Path == "" {
		return errors.New("authoring: data path is required")
	}

	existing, err := readRecords(req.Path)
	if err != nil {
		return err
	}

	q := &asker{ctx: ctx, driver: a.driver}
	today := a.now().Format(dateLayout)

	var record json.RawMessage
	switch req.Kind {
	case records.KindTopics:
		record, err = build(q, today, promptTopic)
	case records.KindNews:
		record, err = build(q, today, promptNews)
	case records.KindEvents:
		record, err = build(q, today, promptEvent)
	case records.KindCompany:
		record, err = build(q, today, promptCompany)
	case records.KindHistory:
		record, err = build(q, today, promptHistory)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}
	if err != nil {
		return err
	}

	ok, err := a.driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("Write %s record to %s?", req.Kind, req.Path),
		Default: true,
	})
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}

	if req.Append {
		existing = append(existing, record)
	} else {
		existing = append([]json.RawMessage{record}, existing...)
	}

	payload, err := encodeRecords(existing)
	if err != nil {
		return err
	}
	mode := newFileMode
	if info, err := os.Stat(req.Path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := atomic.WriteFile(req.Path, bytes.NewReader(payload)); err != nil {
		return fmt.Errorf("authoring: write %s: %w", req.Path, err)
	}
	if err := os.Chmod(req.Path, mode); err != nil {
		return fmt.Errorf("authoring: chmod %s: %w", req.Path, err)
	}

	a.logger.Info("record added", "kind", req.Kind, "path", req.Path, "records", len(existing))
	return a.driver.Info(ctx, fmt.Sprintf("Added %s record to %s (%d total)", req.Kind, req.Path, len(existing)))
}

func build[T records.Record](q *asker, today string, prompt func(*asker, string) (T, error)) (json.RawMessage, error) {
	record, err := prompt(q, today)
	if err != nil {
		return nil, err
	}
	if err := records.Validate(record); err != nil {
		return nil, fmt.Errorf("authoring: invalid record: %w", err)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(record); err != nil {
		return nil, fmt.Errorf("authoring: encode record: %w", err)
	}
	return json.RawMessage(bytes.TrimSpace(buf.Bytes())), nil
}

func readRecords(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("authoring: read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var existing []json.RawMessage
	if err := json.Unmarshal(data, &existing); err != nil {
		return nil, fmt.Errorf("authoring: decode %s: %w", path, err)
	}
	return existing, nil
}

func encodeRecords(items []json.RawMessage) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return nil, fmt.Errorf("authoring: encode records: %w", err)
	}
	return buf.Bytes(), nil
}
