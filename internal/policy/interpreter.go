package policy

import (
	"context"
)

// Interpreter is the pluggable compliance-logic capability. A
// language-inference backend is one valid implementation; a deterministic
// rule engine is another. The evaluator depends only on this contract, so
// the interpretation strategy is replaceable and independently testable.
type Interpreter interface {
	// Select returns the identifiers from index that are relevant to the
	// request. Implementations may return identifiers outside the index;
	// the evaluator drops those.
	Select(ctx context.Context, request string, index []Info) ([]string, error)

	// Evaluate returns a verdict for the request against the given
	// documents only. A verdict that does not parse into an enumerated
	// status must surface as ErrMalformedResponse.
	Evaluate(ctx context.Context, request string, docs []Document) (*Decision, error)
}
