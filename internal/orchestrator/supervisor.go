package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"careflow/internal/orchestrator/models"
	provider "careflow/internal/provider/models"
)

// ErrInvalidRoute reports a routing decision that matches neither a
// registered agent nor the end token.
var ErrInvalidRoute = errors.New("invalid routing decision")

// Supervisor decides which agent acts next. Routing is driven by completion
// markers in the transcript: each role in order must contribute its marker
// before the run can end. The marker rule is deterministic; the model is
// consulted only when a registered role carries no marker, so the rule
// cannot tell whether that role has finished.
type Supervisor struct {
	provider provider.Provider
	roles    []AgentRole
}

// NewSupervisor creates a supervisor over the given roles in routing order.
// The provider may be nil when every role carries a marker.
func NewSupervisor(p provider.Provider, roles []AgentRole) *Supervisor {
	return &Supervisor{provider: p, roles: roles}
}

// Route returns the next routing decision: a role name or DecisionEnd.
// The same transcript always yields the same decision.
func (s *Supervisor) Route(ctx context.Context, state *models.AgentState) (string, error) {
	for _, role := range s.roles {
		if role.Marker == models.MarkerNone {
			// Unmarked role: the rule cannot discriminate, ask the model.
			return s.consult(ctx, state)
		}
		if !state.HasMarker(role.Marker) {
			return role.Name, nil
		}
	}
	return DecisionEnd, nil
}

const routingPromptHeader = `You are the supervisor of a care coordination team. Read the conversation and decide who acts next.

Agents:
`

// consult asks the model for a routing decision and strict-parses the
// reply: the trimmed response must be exactly one agent name or "end".
// No fuzzy matching, no default agent.
func (s *Supervisor) consult(ctx context.Context, state *models.AgentState) (string, error) {
	if s.provider == nil {
		return "", fmt.Errorf("%w: no provider configured for routing consultation", ErrInvalidRoute)
	}

	var b strings.Builder
	b.WriteString(routingPromptHeader)
	valid := map[string]bool{DecisionEnd: true}
	for _, role := range s.roles {
		valid[role.Name] = true
		fmt.Fprintf(&b, "- %s\n", role.Name)
	}
	b.WriteString("\nReply with exactly one agent name, or \"end\" when the final plan for the patient is complete. No other text.")

	history := append([]models.Message{
		{Role: models.RoleSystem, Content: b.String()},
	}, state.Messages()...)

	resp, err := s.provider.Generate(ctx, &provider.GenerateRequest{History: history})
	if err != nil {
		return "", fmt.Errorf("routing consultation: %w", err)
	}
	if resp.Content.Type != provider.ResponseTypeText {
		return "", fmt.Errorf("%w: expected text, got %s", ErrInvalidRoute, resp.Content.Type)
	}

	decision := strings.TrimSpace(resp.Content.Text)
	if !valid[decision] {
		return "", fmt.Errorf("%w: %q", ErrInvalidRoute, decision)
	}
	return decision, nil
}
