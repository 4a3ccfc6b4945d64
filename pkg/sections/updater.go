package sections

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/goliatone/go-pagesync/internal/logging"
	"github.com/goliatone/go-pagesync/pkg/interfaces"
)

// ErrMarkersNotFound is returned in strict mode when a page lacks the marker
// pair of the requested section.
var ErrMarkersNotFound = errors.New("sections: markers not found")

// Option configures an Updater.
type Option func(*Updater)

// WithIndent overrides the indentation written before the end marker.
func WithIndent(indent string) Option {
	return func(u *Updater) {
		u.indent = indent
	}
}

// WithStrictMarkers makes Update fail with ErrMarkersNotFound when the pair
// is absent instead of leaving the page untouched.
func WithStrictMarkers(strict bool) Option {
	return func(u *Updater) {
		u.strict = strict
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(u *Updater) {
		u.logger = logging.OrDefault(logger)
	}
}

// WithProgress sets the writer receiving user-facing progress lines.
func WithProgress(w io.Writer) Option {
	return func(u *Updater) {
		if w == nil {
			w = io.Discard
		}
		u.progress = w
	}
}

// Updater rewrites page sections in place.
type Updater struct {
	indent   string
	strict   bool
	logger   interfaces.Logger
	progress io.Writer
}

// NewUpdater builds an Updater with the sixteen-space end indent, lenient
// marker handling and no output.
func NewUpdater(options ...Option) *Updater {
	u := &Updater{
		indent:   DefaultIndent,
		logger:   logging.NoOp(),
		progress: io.Discard,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(u)
	}
	return u
}

// Update replaces the first region of sectionID in page with content and
// writes the page back atomically.
func (u *Updater) Update(ctx context.Context, page, sectionID, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := u.update(page, sectionID, content)
	if err != nil {
		u.logger.Debug("section update failed", "page", page, "section", sectionID, "error", err)
		fmt.Fprintf(u.progress, "Error updating %s: %v\n", page, err)
		return err
	}

	u.logger.Info("section updated", "page", page, "section", sectionID, "bytes", len(content))
	fmt.Fprintf(u.progress, "[OK] %s updated\n", filepath.Base(page))
	return nil
}

func (u *Updater) update(page, sectionID string, content string) error {
	info, err := os.Stat(page)
	if err != nil {
		return fmt.Errorf("sections: stat page: %w", err)
	}
	raw, err := os.ReadFile(page)
	if err != nil {
		return fmt.Errorf("sections: read page: %w", err)
	}

	html, found := Splice(string(raw), sectionID, content, u.indent)
	if !found {
		if u.strict {
			return fmt.Errorf("%w: %s in %s", ErrMarkersNotFound, sectionID, filepath.Base(page))
		}
		u.logger.Warn("section markers not found, page left untouched", "page", page, "section", sectionID)
		return nil
	}
	if html == string(raw) {
		u.logger.Debug("section unchanged", "page", page, "section", sectionID)
		return nil
	}

	if err := atomic.WriteFile(page, strings.NewReader(html)); err != nil {
		return fmt.Errorf("sections: write page: %w", err)
	}
	// atomic.WriteFile creates a fresh file, restore the original mode.
	if err := os.Chmod(page, info.Mode().Perm()); err != nil {
		return fmt.Errorf("sections: restore mode: %w", err)
	}
	return nil
}
