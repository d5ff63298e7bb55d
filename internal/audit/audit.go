// Package audit records the deterministic trail of one orchestration run:
// every inference call, tool result and routing decision, in order, as
// append-only JSONL keyed by run ID.
package audit

import (
	"context"
	"time"
)

// Kind classifies an audit entry.
type Kind string

const (
	KindModelRequest  Kind = "model_request"
	KindModelResponse Kind = "model_response"
	KindToolResult    Kind = "tool_result"
	KindRouting       Kind = "routing"
	KindRunEnd        Kind = "run_end"
)

// Entry is one recorded event. Seq and Timestamp are assigned by the sink;
// callers supply the rest.
type Entry struct {
	Seq       int            `json:"seq"`
	Timestamp time.Time      `json:"timestamp"`
	RunID     string         `json:"run_id"`
	Caller    string         `json:"caller"`
	Kind      Kind           `json:"kind"`
	Payload   map[string]any `json:"payload,omitempty"`
}

// Logger receives audit entries. Implementations must be safe for
// concurrent use; tool dispatches within a batch record concurrently.
type Logger interface {
	Record(ctx context.Context, entry Entry) error
}

// NopLogger discards all entries.
type NopLogger struct{}

// Record implements Logger.
func (NopLogger) Record(ctx context.Context, entry Entry) error {
	return nil
}
