package policy

import (
	"context"
	"fmt"
)

// Evaluator runs the two-phase compliance check: phase 1 selects the subset
// of documents topically relevant to a request, phase 2 evaluates the
// request against only the selected documents. The split bounds the volume
// of rule text presented to phase 2.
//
// Evaluator holds no state across calls; each Evaluate is independent and
// idempotent given identical inputs and an idempotent interpreter.
type Evaluator struct {
	store       Store
	interpreter Interpreter
}

// NewEvaluator creates an Evaluator over the given store and interpreter.
func NewEvaluator(store Store, interpreter Interpreter) *Evaluator {
	return &Evaluator{store: store, interpreter: interpreter}
}

// Evaluate checks the request against the policy set and returns a verdict.
func (e *Evaluator) Evaluate(ctx context.Context, request string) (*Decision, error) {
	index, err := e.store.ListIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("list policy index: %w", err)
	}

	known := make(map[string]bool, len(index))
	candidates := make([]string, 0, len(index))
	for _, info := range index {
		known[info.ID] = true
		candidates = append(candidates, info.ID)
	}

	picked, err := e.interpreter.Select(ctx, request, index)
	if err != nil {
		return nil, fmt.Errorf("policy selection: %w", err)
	}

	// Identifiers outside the index are dropped, never treated as new
	// policies.
	selected := make([]string, 0, len(picked))
	dropped := make([]string, 0)
	seen := make(map[string]bool, len(picked))
	for _, id := range picked {
		if seen[id] {
			continue
		}
		seen[id] = true
		if known[id] {
			selected = append(selected, id)
		} else {
			dropped = append(dropped, id)
		}
	}

	meta := SelectionMeta{Candidates: candidates, Selected: selected, Dropped: dropped}

	// An empty selection is valid: no policy applies.
	if len(selected) == 0 {
		return &Decision{Status: StatusPass, Selection: meta}, nil
	}

	docs := make([]Document, 0, len(selected))
	for _, id := range selected {
		doc, err := e.store.Load(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load policy %q: %w", id, err)
		}
		docs = append(docs, doc)
	}

	decision, err := e.interpreter.Evaluate(ctx, request, docs)
	if err != nil {
		return nil, err
	}
	if decision == nil || !decision.Status.Valid() {
		status := Status("")
		if decision != nil {
			status = decision.Status
		}
		return nil, fmt.Errorf("%w: status %q", ErrMalformedResponse, status)
	}

	decision.AppliedPolicies = selected
	decision.Selection = meta
	return decision, nil
}
