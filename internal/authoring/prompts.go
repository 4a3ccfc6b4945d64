package authoring

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-pagesync/pkg/records"
)

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("value is required")
	}
	return nil
}

// asker threads the first prompt error through a sequence of questions.
type asker struct {
	ctx    context.Context
	driver PromptDriver
	err    error
}

func (a *asker) input(message, def string, mandatory bool) string {
	if a.err != nil {
		return ""
	}
	cfg := InputConfig{Message: message, Default: def}
	if mandatory {
		cfg.Validator = required
	}
	var out string
	out, a.err = a.driver.Input(a.ctx, cfg)
	return out
}

func (a *asker) text(message string) string {
	if a.err != nil {
		return ""
	}
	var out string
	out, a.err = a.driver.TextArea(a.ctx, TextAreaConfig{Message: message, Help: "HTML is embedded as is"})
	return strings.TrimRight(out, "\n")
}

func (a *asker) confirm(message string) bool {
	if a.err != nil {
		return false
	}
	var out bool
	out, a.err = a.driver.Confirm(a.ctx, ConfirmConfig{Message: message})
	return out
}

func promptTopic(a *asker, _ string) (records.Topic, error) {
	topic := records.Topic{
		Title:       a.input("Title", "", true),
		Description: a.text("Description"),
		Icon:        a.input("Material icon name", "info", true),
		Badge:       a.input("Badge (optional)", "", false),
		Highlight:   a.confirm("Highlight this topic?"),
		Campaign:    a.confirm("Campaign styling?"),
	}
	return topic, a.err
}

func promptNews(a *asker, today string) (records.NewsItem, error) {
	item := records.NewsItem{
		Date:        a.input("Date", today, true),
		Title:       a.input("Title", "", true),
		Description: a.text("Description"),
	}
	return item, a.err
}

func promptEvent(a *asker, today string) (records.Event, error) {
	event := records.Event{
		Date:    a.input("Date", today, true),
		Name:    a.input("Event name", "", true),
		PDF:     a.input("Result PDF path", "", false),
		VideoID: a.input("YouTube video id", "", false),
	}
	return event, a.err
}

func promptCompany(a *asker, _ string) (records.CompanyField, error) {
	field := records.CompanyField{
		Label: a.input("Label", "", true),
		Value: records.TextValue(a.text("Value")),
	}
	return field, a.err
}

func promptHistory(a *asker, today string) (records.HistoryItem, error) {
	item := records.HistoryItem{
		Date:        a.input("Date", today, true),
		Description: a.text("Description"),
	}
	return item, a.err
}
