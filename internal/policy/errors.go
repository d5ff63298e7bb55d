package policy

import (
	"errors"
)

var (
	// ErrMalformedResponse indicates the interpreter produced a verdict
	// that does not parse into a Decision with an enumerated status. It is
	// tool-scoped: callers convert it into an error-descriptor tool result,
	// never into a run failure.
	ErrMalformedResponse = errors.New("malformed policy response")

	// ErrDocumentNotFound indicates a load for an identifier the store
	// does not hold.
	ErrDocumentNotFound = errors.New("policy document not found")
)
