package policy

import (
	"context"
	"strings"
)

// RuleInterpreter is a deterministic keyword-based Interpreter. It serves
// two purposes: it is the offline fallback when no inference backend is
// configured, and it anchors tests that need reproducible verdicts.
type RuleInterpreter struct{}

// NewRuleInterpreter creates a deterministic interpreter.
func NewRuleInterpreter() *RuleInterpreter {
	return &RuleInterpreter{}
}

// selectionKeywords maps document identifiers to the request keywords that
// make them relevant.
var selectionKeywords = map[string][]string{
	"controlled_substances":  {"oxycodone", "opioid", "controlled"},
	"antibiotic_stewardship": {"amoxicillin", "antibiotic", "penicillin"},
	"imaging_services":       {"mri", "imaging", "radiology"},
	"minor_consent":          {"minor", "guardian"},
	"telehealth_limits":      {"telehealth"},
}

// Select implements Interpreter. Only identifiers present in the index are
// ever returned, in index order.
func (r *RuleInterpreter) Select(ctx context.Context, request string, index []Info) ([]string, error) {
	lowered := strings.ToLower(request)
	out := make([]string, 0, len(index))
	for _, info := range index {
		for _, kw := range selectionKeywords[info.ID] {
			if strings.Contains(lowered, kw) {
				out = append(out, info.ID)
				break
			}
		}
	}
	return out, nil
}

// Evaluate implements Interpreter. Each selected document contributes its
// rule outcomes; the verdict is BLOCKED if any violation exists,
// REQUIRES_REVIEW if only warnings or requirements exist, PASS otherwise.
func (r *RuleInterpreter) Evaluate(ctx context.Context, request string, docs []Document) (*Decision, error) {
	lowered := strings.ToLower(request)
	decision := &Decision{}

	for _, doc := range docs {
		switch doc.ID {
		case "controlled_substances":
			decision.Violations = append(decision.Violations,
				"Controlled substance request: not allowed via telehealth; in-person evaluation required.")
			decision.Requirements = append(decision.Requirements,
				"Verify identity and follow the controlled-substance protocol; require clinician assessment.")

		case "antibiotic_stewardship":
			decision.Warnings = append(decision.Warnings,
				"Antibiotics generally require clinician assessment; avoid prescribing without evaluation.")
			if strings.Contains(lowered, "penicillin") {
				decision.Violations = append(decision.Violations,
					"Potential penicillin allergy conflict; alternative must be assessed by a clinician.")
			}

		case "imaging_services":
			decision.Requirements = append(decision.Requirements,
				"Prior authorization required for MRI under most plans.")
			decision.Warnings = append(decision.Warnings,
				"MRI typically scheduled after clinical evaluation unless red-flag criteria are met.")

		case "minor_consent":
			decision.Requirements = append(decision.Requirements,
				"Guardian consent required for scheduling and communications.")

		case "telehealth_limits":
			if len(decision.Violations) > 0 {
				decision.Violations = append(decision.Violations,
					"Telehealth visit type not permitted for this request.")
			}
		}
	}

	switch {
	case len(decision.Violations) > 0:
		decision.Status = StatusBlocked
	case len(decision.Warnings) > 0 || len(decision.Requirements) > 0:
		decision.Status = StatusRequiresReview
	default:
		decision.Status = StatusPass
	}
	return decision, nil
}
