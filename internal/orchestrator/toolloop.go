package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"careflow/internal/audit"
	"careflow/internal/orchestrator/adapter"
	"careflow/internal/orchestrator/models"
)

// ToolLoop turns a batch of tool call requests into exactly one result per
// request. Tool faults never escape as errors; they become error-descriptor
// results the agent can read and correct on its next round.
type ToolLoop struct {
	registry *adapter.Registry
	log      audit.Logger
}

// NewToolLoop creates a ToolLoop over the registry. A nil logger disables
// audit recording.
func NewToolLoop(registry *adapter.Registry, log audit.Logger) *ToolLoop {
	if log == nil {
		log = audit.NopLogger{}
	}
	return &ToolLoop{registry: registry, log: log}
}

// Dispatch executes all requests and returns results in request order with
// matching IDs. Requests run concurrently; nothing is returned until every
// dispatch has completed.
func (l *ToolLoop) Dispatch(ctx context.Context, runID, agent string, calls []models.ToolCallRequest) []models.ToolResult {
	results := make([]models.ToolResult, len(calls))

	var wg sync.WaitGroup
	for i, call := range calls {
		wg.Add(1)
		go func(i int, call models.ToolCallRequest) {
			defer wg.Done()
			results[i] = l.execute(ctx, call)
		}(i, call)
	}
	wg.Wait()

	for _, res := range results {
		l.log.Record(ctx, audit.Entry{
			RunID:  runID,
			Caller: agent,
			Kind:   audit.KindToolResult,
			Payload: map[string]any{
				"id":         res.ID,
				"tool":       res.Name,
				"error_code": string(res.ErrorCode),
				"error":      res.Error,
				"payload":    res.Payload,
			},
		})
	}
	return results
}

// execute runs one tool call. Every failure path returns a classified
// error-descriptor result rather than propagating.
func (l *ToolLoop) execute(ctx context.Context, call models.ToolCallRequest) (result models.ToolResult) {
	result = models.ToolResult{ID: call.ID, Name: call.Name}

	// A panicking handler must not take down the batch.
	defer func() {
		if r := recover(); r != nil {
			result.Payload = nil
			result.ErrorCode = models.ToolErrorExecutionFailed
			result.Error = fmt.Sprintf("tool %q panicked: %v", call.Name, r)
		}
	}()

	tool, err := l.registry.Lookup(call.Name)
	if err != nil {
		if errors.Is(err, adapter.ErrUnknownTool) {
			result.ErrorCode = models.ToolErrorUnknownTool
		} else {
			result.ErrorCode = models.ToolErrorExecutionFailed
		}
		result.Error = err.Error()
		return result
	}

	payload, err := tool.Execute(ctx, call.Args)
	if err != nil {
		result.ErrorCode = adapter.CodeOf(err)
		result.Error = err.Error()
		return result
	}

	result.Payload = payload
	return result
}
