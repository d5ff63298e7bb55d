package models

// Role identifies who produced a message in the transcript.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Marker is a structured sentinel stamped on assistant messages so routing
// decisions never depend on free-text pattern matching.
type Marker string

const (
	// MarkerNone is the zero marker; the message carries no routing signal.
	MarkerNone Marker = ""

	// MarkerFindings signals that the information-gathering agent has
	// finished collecting facts for this request.
	MarkerFindings Marker = "findings"

	// MarkerFinalPlan signals that the synthesis agent has produced the
	// final patient-facing plan.
	MarkerFinalPlan Marker = "final_plan"
)

// Message is a single entry in the conversation transcript.
// Messages are immutable once appended to an AgentState.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content,omitempty"`

	// Agent names the agent that produced this message, for assistant and
	// tool messages. Empty for the initial user request.
	Agent string `json:"agent,omitempty"`

	// Marker carries the routing sentinel for assistant messages.
	Marker Marker `json:"marker,omitempty"`

	// ToolCalls is set on assistant messages that request tool invocations.
	ToolCalls []ToolCallRequest `json:"tool_calls,omitempty"`

	// ToolCallID links a tool message back to the request that produced it.
	ToolCallID string `json:"tool_call_id,omitempty"`

	// Result carries the tool outcome for tool messages.
	Result *ToolResult `json:"result,omitempty"`
}

// ToolCallRequest is a structured tool invocation requested by the model.
type ToolCallRequest struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// ToolErrorCode classifies recoverable, tool-scoped failures. These are fed
// back into the conversation as error-descriptor results so the agent can
// self-correct on the next round.
type ToolErrorCode string

const (
	ToolErrorNone            ToolErrorCode = ""
	ToolErrorUnknownTool     ToolErrorCode = "unknown_tool"
	ToolErrorInvalidArgs     ToolErrorCode = "invalid_tool_arguments"
	ToolErrorExecutionFailed ToolErrorCode = "tool_execution_failed"
	ToolErrorMalformedPolicy ToolErrorCode = "malformed_policy_response"
)

// ToolResult is the outcome of exactly one dispatched ToolCallRequest.
type ToolResult struct {
	ID      string         `json:"id"` // Matches ToolCallRequest.ID
	Name    string         `json:"name"`
	Payload map[string]any `json:"payload,omitempty"`

	// ErrorCode and Error describe a tool-scoped failure. A result with a
	// non-empty ErrorCode still counts as a delivered result; tool faults
	// never propagate as run-level failures.
	ErrorCode ToolErrorCode `json:"error_code,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// Failed reports whether this result is an error descriptor.
func (r *ToolResult) Failed() bool {
	return r.ErrorCode != ToolErrorNone
}

// AgentState is the single mutable object threaded through a run: the
// canonical transcript plus routing and budget counters. It has exactly one
// writer at any instant (the orchestrator or the agent executor holding the
// turn), so no locking is needed.
type AgentState struct {
	RunID    string
	messages []Message

	// Next holds the supervisor's last routing decision.
	Next string

	// Budget counters. Monotonically non-decreasing.
	SupervisorInvocations int
	TotalSteps            int
}

// NewAgentState seeds a fresh state with the initial user request.
func NewAgentState(runID, request string) *AgentState {
	return &AgentState{
		RunID: runID,
		messages: []Message{
			{Role: RoleUser, Content: request},
		},
	}
}

// Append adds messages to the transcript. This is the only mutation the
// transcript supports; messages are never deleted or reordered.
func (s *AgentState) Append(msgs ...Message) {
	s.messages = append(s.messages, msgs...)
}

// Messages returns the transcript in append order. The returned slice must
// be treated as read-only.
func (s *AgentState) Messages() []Message {
	return s.messages
}

// Transcript returns an independent copy of the transcript, for attaching to
// failure reports and audit records.
func (s *AgentState) Transcript() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// HasMarker reports whether any message in the transcript carries the marker.
func (s *AgentState) HasMarker(m Marker) bool {
	for _, msg := range s.messages {
		if msg.Marker == m {
			return true
		}
	}
	return false
}

// LastWithMarker returns the most recent message carrying the marker.
func (s *AgentState) LastWithMarker(m Marker) (Message, bool) {
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Marker == m {
			return s.messages[i], true
		}
	}
	return Message{}, false
}
