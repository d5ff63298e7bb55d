package adapter

import (
	"errors"
	"fmt"

	"careflow/internal/orchestrator/models"
)

// ErrUnknownTool is returned by Registry lookups for unregistered names.
// Lookup is by exact name; no aliasing or fuzzy matching.
var ErrUnknownTool = errors.New("unknown tool")

// CodedError attaches a tool-scoped error code to an execution failure so
// the tool execution loop can classify it without knowing tool internals.
type CodedError struct {
	Code models.ToolErrorCode
	Err  error
}

func (e *CodedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *CodedError) Unwrap() error {
	return e.Err
}

// WithCode wraps err with a tool-scoped error code.
func WithCode(code models.ToolErrorCode, err error) error {
	if err == nil {
		return nil
	}
	return &CodedError{Code: code, Err: err}
}

// CodeOf extracts the tool-scoped code from err. Unclassified execution
// failures default to ToolErrorExecutionFailed.
func CodeOf(err error) models.ToolErrorCode {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return models.ToolErrorExecutionFailed
}
