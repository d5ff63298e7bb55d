package orchestrator

import (
	"fmt"

	"careflow/internal/orchestrator/models"
)

// FailureKind classifies run-scoped fatal failures. Unlike tool-scoped
// errors, these terminate the run.
type FailureKind string

const (
	// FailureToolLoopExhausted: an agent turn hit the tool-round bound
	// without producing a final text response.
	FailureToolLoopExhausted FailureKind = "tool_loop_exhausted"

	// FailureInvalidRouting: the supervisor produced a decision that is
	// neither a registered agent nor the end token.
	FailureInvalidRouting FailureKind = "invalid_routing"

	// FailureNoFinalAnswer: the run ended without a final plan in the
	// transcript.
	FailureNoFinalAnswer FailureKind = "no_final_answer"

	// FailureBudgetExceeded: a supervisor-call or total-step bound was hit.
	FailureBudgetExceeded FailureKind = "budget_exceeded"
)

// RunError is the only error type Run returns. It carries the partial
// transcript so callers can inspect how far the run got.
type RunError struct {
	Kind       FailureKind
	Transcript []models.Message
	Err        error
}

func (e *RunError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("run failed (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("run failed (%s)", e.Kind)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// newRunError snapshots the state's transcript into a RunError.
func newRunError(kind FailureKind, state *models.AgentState, err error) *RunError {
	return &RunError{Kind: kind, Transcript: state.Transcript(), Err: err}
}
