package orchestrator

import (
	"context"
	"errors"
	"testing"

	"careflow/internal/audit"
	"careflow/internal/orchestrator/adapter"
	"careflow/internal/orchestrator/models"
)

func newTestExecutor(t *testing.T, p *mockProvider, maxToolRounds int, tools ...adapter.Tool) *Executor {
	t.Helper()
	if len(tools) == 0 {
		tools = []adapter.Tool{&mockTool{name: "noop", executeFunc: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return map[string]any{}, nil
		}}}
	}
	registry, err := adapter.NewRegistry(tools...)
	if err != nil {
		t.Fatalf("failed to build registry: %v", err)
	}
	return &Executor{
		provider:      p,
		loop:          NewToolLoop(registry, nil),
		log:           audit.NopLogger{},
		maxToolRounds: maxToolRounds,
		maxTotalSteps: 60,
	}
}

func TestExecuteStampsCompletionMarkerOnFinalText(t *testing.T) {
	p := scriptProvider(textResponse("Findings: patient is stable."))
	e := newTestExecutor(t, p, 10)
	state := models.NewAgentState("run-1", "refill request")

	if err := e.Execute(context.Background(), TriageRole(), state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msgs := state.Messages()
	last := msgs[len(msgs)-1]
	if last.Role != models.RoleAssistant || last.Agent != "triage_nurse" {
		t.Errorf("final message should be the triage assistant, got %+v", last)
	}
	if last.Marker != models.MarkerFindings {
		t.Errorf("final triage text must carry the findings marker, got %q", last.Marker)
	}
}

func TestExecuteFeedsToolResultsBackBeforeNextCall(t *testing.T) {
	tool := &mockTool{name: "patient_record", executeFunc: func(ctx context.Context, args map[string]any) (map[string]any, error) {
		return map[string]any{"name": "Jordan Lee"}, nil
	}}
	p := scriptProvider(
		toolCallResponse(models.ToolCallRequest{ID: "c1", Name: "patient_record", Args: map[string]any{"patient_id": "PT-1001"}}),
		textResponse("Findings: allergy on file."),
	)
	e := newTestExecutor(t, p, 10, tool)
	state := models.NewAgentState("run-1", "refill request")

	if err := e.Execute(context.Background(), TriageRole(), state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Second inference request must include the tool-role result message.
	if len(p.requests) != 2 {
		t.Fatalf("expected 2 inference calls, got %d", len(p.requests))
	}
	second := p.requests[1].History
	var sawResult bool
	for _, msg := range second {
		if msg.Role == models.RoleTool && msg.ToolCallID == "c1" {
			sawResult = true
			if msg.Result == nil || msg.Result.Payload["name"] != "Jordan Lee" {
				t.Errorf("tool message missing payload: %+v", msg.Result)
			}
		}
	}
	if !sawResult {
		t.Error("second inference call did not carry the tool result")
	}

	// Transcript shape: user, assistant(tool calls), tool, assistant(findings)
	msgs := state.Messages()
	if len(msgs) != 4 {
		t.Fatalf("expected 4 transcript messages, got %d", len(msgs))
	}
	if len(msgs[1].ToolCalls) != 1 {
		t.Errorf("expected tool-call assistant message, got %+v", msgs[1])
	}
	if msgs[2].Role != models.RoleTool {
		t.Errorf("expected tool message, got %+v", msgs[2])
	}
	if msgs[3].Marker != models.MarkerFindings {
		t.Errorf("expected marked findings message, got %+v", msgs[3])
	}
}

func TestExecuteAppendsOneToolMessagePerResult(t *testing.T) {
	tool := &mockTool{name: "noop", executeFunc: func(ctx context.Context, args map[string]any) (map[string]any, error) {
		return map[string]any{}, nil
	}}
	p := scriptProvider(
		toolCallResponse(
			models.ToolCallRequest{ID: "c1", Name: "noop"},
			models.ToolCallRequest{ID: "c2", Name: "missing"},
			models.ToolCallRequest{ID: "c3", Name: "noop"},
		),
		textResponse("done"),
	)
	e := newTestExecutor(t, p, 10, tool)
	state := models.NewAgentState("run-1", "request")

	if err := e.Execute(context.Background(), TriageRole(), state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var toolMsgs []models.Message
	for _, msg := range state.Messages() {
		if msg.Role == models.RoleTool {
			toolMsgs = append(toolMsgs, msg)
		}
	}
	if len(toolMsgs) != 3 {
		t.Fatalf("expected 3 tool messages, got %d", len(toolMsgs))
	}
	for i, want := range []string{"c1", "c2", "c3"} {
		if toolMsgs[i].ToolCallID != want {
			t.Errorf("tool message %d: expected call ID %q, got %q", i, want, toolMsgs[i].ToolCallID)
		}
	}
	if toolMsgs[1].Result.ErrorCode != models.ToolErrorUnknownTool {
		t.Errorf("unknown tool result should be an error descriptor, got %+v", toolMsgs[1].Result)
	}
}

func TestExecuteExhaustsToolRounds(t *testing.T) {
	tool := &mockTool{name: "noop", executeFunc: func(ctx context.Context, args map[string]any) (map[string]any, error) {
		return map[string]any{}, nil
	}}
	p := repeatProvider(toolCallResponse(models.ToolCallRequest{ID: "c", Name: "noop"}))
	e := newTestExecutor(t, p, 2, tool)
	state := models.NewAgentState("run-1", "request")

	err := e.Execute(context.Background(), TriageRole(), state)

	var runErr *RunError
	if !errors.As(err, &runErr) {
		t.Fatalf("expected RunError, got %v", err)
	}
	if runErr.Kind != FailureToolLoopExhausted {
		t.Errorf("expected tool_loop_exhausted, got %q", runErr.Kind)
	}
	if len(runErr.Transcript) == 0 {
		t.Error("exhaustion must carry the partial transcript")
	}
	// 2 permitted rounds means the third tool-call response overruns.
	if len(p.requests) != 3 {
		t.Errorf("expected 3 inference calls before exhaustion, got %d", len(p.requests))
	}
}

func TestExecuteOmitsToolsForNonToolRoles(t *testing.T) {
	p := scriptProvider(textResponse("plan text"))
	e := newTestExecutor(t, p, 10)
	role := AgentRole{Name: "summarizer", Instructions: "summarize", UsesTools: false, Marker: models.MarkerFinalPlan}

	if err := e.Execute(context.Background(), role, models.NewAgentState("run-1", "request")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.requests[0].Tools) != 0 {
		t.Errorf("non-tool role must not receive tool declarations, got %d", len(p.requests[0].Tools))
	}
}

func TestExecuteTreatsRefusalAsCompletedTurn(t *testing.T) {
	p := scriptProvider(refusalResponse("safety"))
	e := newTestExecutor(t, p, 10)
	state := models.NewAgentState("run-1", "request")

	if err := e.Execute(context.Background(), TriageRole(), state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msgs := state.Messages()
	last := msgs[len(msgs)-1]
	if last.Marker != models.MarkerFindings {
		t.Errorf("refusal should still stamp the marker, got %q", last.Marker)
	}
}

func TestExecuteEnforcesTotalStepBound(t *testing.T) {
	p := repeatProvider(toolCallResponse(models.ToolCallRequest{ID: "c", Name: "noop"}))
	e := newTestExecutor(t, p, 10)
	e.maxTotalSteps = 2
	state := models.NewAgentState("run-1", "request")

	err := e.Execute(context.Background(), TriageRole(), state)

	var runErr *RunError
	if !errors.As(err, &runErr) {
		t.Fatalf("expected RunError, got %v", err)
	}
	if runErr.Kind != FailureBudgetExceeded {
		t.Errorf("expected budget_exceeded, got %q", runErr.Kind)
	}
}
