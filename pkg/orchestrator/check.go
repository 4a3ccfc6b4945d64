package orchestrator

import (
	"context"
	"fmt"
	"os"

	"github.com/goliatone/go-pagesync/pkg/sections"
)

// SectionStatus reports whether a binding's marker pair exists in its page.
type SectionStatus struct {
	Binding Binding
	Present bool
	Err     error
}

// Check reads each bound page once and reports, per binding, whether build
// would find its marker pair. Pages that cannot be read yield Present=false
// with Err set.
func (o *Orchestrator) Check(ctx context.Context) ([]SectionStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bindings := o.Bindings()
	pages := map[string]string{}
	failures := map[string]error{}
	out := make([]SectionStatus, 0, len(bindings))

	for _, b := range bindings {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if _, done := pages[b.Page]; !done && failures[b.Page] == nil {
			page, err := os.ReadFile(b.Page)
			if err != nil {
				failures[b.Page] = fmt.Errorf("orchestrator: read page: %w", err)
			} else {
				pages[b.Page] = string(page)
			}
		}

		status := SectionStatus{Binding: b, Err: failures[b.Page]}
		if status.Err == nil {
			status.Present = sections.Locate(pages[b.Page], b.Section)
		}
		out = append(out, status)
	}
	return out, nil
}
