package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"careflow/internal/orchestrator/models"
	provider "careflow/internal/provider/models"
	"github.com/mitchellh/mapstructure"
)

// Validator is an interface for request types that support validation
type Validator interface {
	Validate() error
}

// ToolExecutor is a function that executes a tool with typed request/response.
type ToolExecutor[Req, Resp any] func(context.Context, Req) (Resp, error)

// BaseAdapter provides common adapter functionality using generics.
// This eliminates duplication across all tool adapters by centralizing:
// - Argument decoding (mapstructure)
// - Request validation
// - Tool execution
// - Response conversion back to a result mapping
//
// Type Parameters:
//   - Req: The request type (e.g., clinic.PatientRecordRequest)
//   - Resp: The response type (e.g., clinic.PatientRecordResponse)
type BaseAdapter[Req, Resp any] struct {
	name        string
	description string
	definition  provider.ToolDefinition
	executor    ToolExecutor[Req, Resp]
}

// NewBaseAdapter creates a new base adapter with the given configuration.
//
// Example usage:
//
//	adapter := NewBaseAdapter(
//	    "patient_record",
//	    "Retrieves patient demographics, conditions and coverage details",
//	    &provider.ParameterSchema{...},
//	    directory.PatientRecord,  // Direct method reference
//	)
func NewBaseAdapter[Req, Resp any](
	name string,
	description string,
	paramSchema *provider.ParameterSchema,
	executor ToolExecutor[Req, Resp],
) *BaseAdapter[Req, Resp] {
	return &BaseAdapter[Req, Resp]{
		name:        name,
		description: description,
		definition: provider.ToolDefinition{
			Name:        name,
			Description: description,
			Parameters:  paramSchema,
		},
		executor: executor,
	}
}

// Name implements adapter.Tool
func (b *BaseAdapter[Req, Resp]) Name() string {
	return b.name
}

// Description implements adapter.Tool
func (b *BaseAdapter[Req, Resp]) Description() string {
	return b.description
}

// Definition implements adapter.Tool
func (b *BaseAdapter[Req, Resp]) Definition() provider.ToolDefinition {
	return b.definition
}

// Execute implements adapter.Tool
//
// This method:
// 1. Decodes the args map into a typed request using mapstructure
// 2. Validates the request if it implements Validator
// 3. Calls the tool executor function with the typed request
// 4. Converts the response into a result mapping
//
// Decode and validation failures carry ToolErrorInvalidArgs so the tool
// execution loop classifies them without inspecting tool internals.
func (b *BaseAdapter[Req, Resp]) Execute(ctx context.Context, args map[string]any) (map[string]any, error) {
	var req Req

	// Decode map to typed request using mapstructure
	if err := mapstructure.Decode(args, &req); err != nil {
		return nil, WithCode(models.ToolErrorInvalidArgs, fmt.Errorf("invalid arguments: %w", err))
	}

	// Validate request if it implements Validator
	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, WithCode(models.ToolErrorInvalidArgs, fmt.Errorf("%s validation failed: %w", b.name, err))
		}
	}

	// Execute the tool function with typed request
	resp, err := b.executor(ctx, req)
	if err != nil {
		return nil, err
	}

	return toResultMap(resp)
}

// toResultMap converts a typed response into the payload mapping carried by
// a ToolResult, going through JSON so field tags apply.
func toResultMap(resp any) (map[string]any, error) {
	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to convert response: %w", err)
	}
	return out, nil
}
