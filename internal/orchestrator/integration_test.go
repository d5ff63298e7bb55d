package orchestrator

import (
	"context"
	"strings"
	"testing"

	"careflow/internal/clinic"
	"careflow/internal/orchestrator/adapter"
	"careflow/internal/orchestrator/models"
	"careflow/internal/policy"
)

// Wires the real domain tools and the deterministic policy evaluator under a
// scripted model, covering the full pipeline short of a live inference call.
func TestRunAgainstRealToolsAndPolicies(t *testing.T) {
	store, err := policy.NewStaticStore(policy.DefaultDocuments())
	if err != nil {
		t.Fatalf("failed to build policy store: %v", err)
	}
	evaluator := policy.NewEvaluator(store, policy.NewRuleInterpreter())

	tools := clinic.Tools(clinic.NewDirectory())
	tools = append(tools, policy.NewCheckTool(evaluator))
	registry, err := adapter.NewRegistry(tools...)
	if err != nil {
		t.Fatalf("failed to build registry: %v", err)
	}

	p := scriptProvider(
		// triage: look up the patient, run the policy check, gather slots
		toolCallResponse(
			models.ToolCallRequest{ID: "c1", Name: "patient_record", Args: map[string]any{"patient_id": "PT-1001"}},
			models.ToolCallRequest{ID: "c2", Name: "policy_check", Args: map[string]any{
				"request_type": "medication_request",
				"details":      "oxycodone via telehealth",
			}},
		),
		toolCallResponse(
			models.ToolCallRequest{ID: "c3", Name: "appointment_slots", Args: map[string]any{
				"clinic":     "Downtown Primary Care",
				"specialty":  "primary_care",
				"date_range": "next_7_days",
			}},
		),
		textResponse("Findings: controlled substance via telehealth is blocked; in-person evaluation required. Dr. Kim has an in-person slot 2025-07-02 15:30."),
		// coordinator: synthesis only, from the triage notes
		textResponse("Plan: in-person visit with Dr. Kim on 2025-07-02 at 15:30 for evaluation; oxycodone cannot be prescribed via telehealth."),
	)

	log := &recordingLogger{}
	orch := New(p, registry, DefaultRoles(), log, Options{})

	plan, err := orch.Run(context.Background(), "Patient PT-1001 wants oxycodone via a telehealth visit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(plan, "in-person") {
		t.Errorf("expected an in-person alternative in the plan, got %q", plan)
	}

	// The policy verdict fed back to the model must be BLOCKED.
	var sawBlocked bool
	for _, e := range log.byKind("tool_result") {
		if e.Payload["tool"] != "policy_check" {
			continue
		}
		payload, ok := e.Payload["payload"].(map[string]any)
		if !ok {
			t.Fatalf("policy_check entry missing payload: %v", e.Payload)
		}
		if payload["status"] == string(policy.StatusBlocked) {
			sawBlocked = true
		}
	}
	if !sawBlocked {
		t.Error("expected a BLOCKED policy_check result in the audit trail")
	}

	// Only the information-gathering agent receives tool declarations; the
	// synthesis agent receives none.
	if len(p.requests) != 4 {
		t.Fatalf("expected 4 inference calls, got %d", len(p.requests))
	}
	triageReq := p.requests[0]
	if len(triageReq.Tools) != 5 {
		names := make([]string, 0, len(triageReq.Tools))
		for _, d := range triageReq.Tools {
			names = append(names, d.Name)
		}
		t.Errorf("expected 5 tool declarations on the triage turn, got %v", names)
	}
	coordinatorReq := p.requests[3]
	if len(coordinatorReq.Tools) != 0 {
		t.Errorf("expected zero tool declarations on the coordinator turn, got %d", len(coordinatorReq.Tools))
	}
}
