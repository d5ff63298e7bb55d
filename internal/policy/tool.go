package policy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"careflow/internal/orchestrator/adapter"
	"careflow/internal/orchestrator/models"
	provider "careflow/internal/provider/models"
)

// CheckRequest is the argument shape for the policy_check tool.
type CheckRequest struct {
	RequestType string `json:"request_type" mapstructure:"request_type"`
	Details     string `json:"details" mapstructure:"details"`
}

// Validate implements adapter.Validator.
func (r CheckRequest) Validate() error {
	if strings.TrimSpace(r.RequestType) == "" {
		return errors.New("request_type cannot be empty")
	}
	return nil
}

// NewCheckTool wraps the evaluator as the policy_check tool. A malformed
// interpreter verdict is tagged so the tool execution loop reports it as a
// malformed_policy_response result instead of a generic execution failure.
func NewCheckTool(eval *Evaluator) adapter.Tool {
	execute := func(ctx context.Context, req CheckRequest) (*Decision, error) {
		request := req.RequestType
		if req.Details != "" {
			request = fmt.Sprintf("%s: %s", req.RequestType, req.Details)
		}
		decision, err := eval.Evaluate(ctx, request)
		if err != nil {
			if errors.Is(err, ErrMalformedResponse) {
				return nil, adapter.WithCode(models.ToolErrorMalformedPolicy, err)
			}
			return nil, err
		}
		return decision, nil
	}
	return adapter.NewBaseAdapter(
		"policy_check",
		"Evaluate a proposed action against clinical and coverage policies. Returns PASS, REQUIRES_REVIEW or BLOCKED with violations, warnings and requirements.",
		&provider.ParameterSchema{
			Type: "object",
			Properties: map[string]provider.PropertySchema{
				"request_type": {
					Type:        "string",
					Description: "Kind of action being checked, e.g. medication_request, imaging_order, appointment_booking",
				},
				"details": {
					Type:        "string",
					Description: "Free-text details: drug or service names, visit modality, patient context",
				},
			},
			Required: []string{"request_type"},
		},
		execute,
	)
}
