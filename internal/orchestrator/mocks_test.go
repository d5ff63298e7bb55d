package orchestrator

import (
	"context"
	"sync"

	"careflow/internal/audit"
	"careflow/internal/orchestrator/models"
	provider "careflow/internal/provider/models"
)

// mockProvider routes Generate through a func field and records requests.
type mockProvider struct {
	generateFunc func(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error)
	requests     []*provider.GenerateRequest
}

func (m *mockProvider) Generate(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
	m.requests = append(m.requests, req)
	return m.generateFunc(ctx, req)
}

func (m *mockProvider) GetModel() string { return "mock" }

func textResponse(text string) *provider.GenerateResponse {
	return &provider.GenerateResponse{
		Content: provider.ResponseContent{Type: provider.ResponseTypeText, Text: text},
	}
}

func toolCallResponse(calls ...models.ToolCallRequest) *provider.GenerateResponse {
	return &provider.GenerateResponse{
		Content: provider.ResponseContent{Type: provider.ResponseTypeToolCall, ToolCalls: calls},
	}
}

// scriptProvider returns the queued responses in order.
func scriptProvider(responses ...*provider.GenerateResponse) *mockProvider {
	i := 0
	m := &mockProvider{}
	m.generateFunc = func(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
		if i >= len(responses) {
			return textResponse("script exhausted"), nil
		}
		resp := responses[i]
		i++
		return resp, nil
	}
	return m
}

// repeatProvider returns the same response on every call.
func repeatProvider(resp *provider.GenerateResponse) *mockProvider {
	m := &mockProvider{}
	m.generateFunc = func(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
		return resp, nil
	}
	return m
}

func refusalResponse(reason string) *provider.GenerateResponse {
	return &provider.GenerateResponse{
		Content: provider.ResponseContent{Type: provider.ResponseTypeRefusal, RefusalReason: reason},
	}
}

// mockTool is a hand mock for adapter.Tool.
type mockTool struct {
	name        string
	executeFunc func(ctx context.Context, args map[string]any) (map[string]any, error)
}

func (m *mockTool) Name() string        { return m.name }
func (m *mockTool) Description() string { return "mock tool" }
func (m *mockTool) Definition() provider.ToolDefinition {
	return provider.ToolDefinition{Name: m.name, Description: "mock tool"}
}
func (m *mockTool) Execute(ctx context.Context, args map[string]any) (map[string]any, error) {
	return m.executeFunc(ctx, args)
}

// recordingLogger collects audit entries in memory.
type recordingLogger struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (r *recordingLogger) Record(ctx context.Context, entry audit.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *recordingLogger) byKind(kind audit.Kind) []audit.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []audit.Entry
	for _, e := range r.entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
