package authoring

import "errors"

var (
	// ErrAborted signals the user interrupted the prompts or declined to save.
	ErrAborted = errors.New("authoring: aborted")
	// ErrUnknownKind is returned for record kinds without an authoring flow.
	ErrUnknownKind = errors.New("authoring: unknown record kind")
)
