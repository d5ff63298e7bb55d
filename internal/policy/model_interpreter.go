package policy

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"careflow/internal/orchestrator/models"
	provider "careflow/internal/provider/models"
)

// ModelInterpreter interprets policy documents with a language-inference
// backend. Both phases exchange strict JSON with the model; anything that
// does not parse surfaces as ErrMalformedResponse.
type ModelInterpreter struct {
	provider provider.Provider
}

// NewModelInterpreter creates an interpreter backed by the given provider.
func NewModelInterpreter(p provider.Provider) *ModelInterpreter {
	return &ModelInterpreter{provider: p}
}

const selectSystemPrompt = `You select compliance policies for a healthcare care-coordination request.
You are given a policy index (identifier, title, description) and a request.
Reply with a JSON array containing only the identifiers of policies relevant
to the request, for example ["controlled_substances"]. Reply with [] if no
policy applies. Use only identifiers from the index. No prose.`

const evaluateSystemPrompt = `You evaluate a healthcare care-coordination request against the policy
documents provided. Reply with a single JSON object of the form
{"status": "...", "violations": [...], "warnings": [...], "requirements": [...]}
where status is exactly one of PASS, REQUIRES_REVIEW or BLOCKED:
- BLOCKED if any rule forbids the request as stated
- REQUIRES_REVIEW if the request needs warnings addressed or requirements met
- PASS otherwise
Base the verdict only on the documents provided. No prose.`

// Select implements Interpreter.
func (m *ModelInterpreter) Select(ctx context.Context, request string, index []Info) ([]string, error) {
	var sb strings.Builder
	sb.WriteString("Policy index:\n")
	for _, info := range index {
		fmt.Fprintf(&sb, "- %s: %s — %s\n", info.ID, info.Title, info.Description)
	}
	fmt.Fprintf(&sb, "\nRequest:\n%s\n", request)

	text, err := m.generate(ctx, selectSystemPrompt, sb.String())
	if err != nil {
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &ids); err != nil {
		return nil, fmt.Errorf("%w: selection %q", ErrMalformedResponse, truncateForError(text))
	}
	return ids, nil
}

// Evaluate implements Interpreter.
func (m *ModelInterpreter) Evaluate(ctx context.Context, request string, docs []Document) (*Decision, error) {
	var sb strings.Builder
	sb.WriteString("Policy documents:\n")
	for _, doc := range docs {
		fmt.Fprintf(&sb, "\n## %s (%s)\n%s\n", doc.Title, doc.ID, doc.Rules)
	}
	fmt.Fprintf(&sb, "\nRequest:\n%s\n", request)

	text, err := m.generate(ctx, evaluateSystemPrompt, sb.String())
	if err != nil {
		return nil, err
	}

	var decision Decision
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &decision); err != nil {
		return nil, fmt.Errorf("%w: verdict %q", ErrMalformedResponse, truncateForError(text))
	}
	if !decision.Status.Valid() {
		return nil, fmt.Errorf("%w: status %q", ErrMalformedResponse, decision.Status)
	}
	return &decision, nil
}

func (m *ModelInterpreter) generate(ctx context.Context, system, user string) (string, error) {
	resp, err := m.provider.Generate(ctx, &provider.GenerateRequest{
		History: []models.Message{
			{Role: models.RoleSystem, Content: system},
			{Role: models.RoleUser, Content: user},
		},
	})
	if err != nil {
		return "", err
	}
	if resp.Content.Type != provider.ResponseTypeText {
		return "", fmt.Errorf("%w: expected text, got %s", ErrMalformedResponse, resp.Content.Type)
	}
	return strings.TrimSpace(resp.Content.Text), nil
}

// stripCodeFence unwraps a ```json ... ``` fenced reply. Models add fences
// even when told not to.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func truncateForError(text string) string {
	const max = 120
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
