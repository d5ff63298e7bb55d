package orchestrator

import (
	"context"
	"fmt"

	"careflow/internal/audit"
	"careflow/internal/orchestrator/models"
	provider "careflow/internal/provider/models"
)

// Executor runs one routed agent turn: role instructions plus the shared
// transcript go to the model; tool-call responses are dispatched through the
// ToolLoop and fed back until the model answers in text. The final text is
// stamped with the role's completion marker, which is what moves the
// supervisor's routing rule forward.
type Executor struct {
	provider      provider.Provider
	loop          *ToolLoop
	log           audit.Logger
	maxToolRounds int
	maxTotalSteps int
	genConfig     *provider.GenerateConfig
}

// Execute appends this turn's messages to state. It returns nil on a
// completed turn; any non-nil error is a *RunError.
func (e *Executor) Execute(ctx context.Context, role AgentRole, state *models.AgentState) error {
	history := append([]models.Message{
		{Role: models.RoleSystem, Content: role.Instructions},
	}, state.Messages()...)

	req := &provider.GenerateRequest{
		History: history,
		Config:  e.genConfig,
	}
	if role.UsesTools {
		req.Tools = e.loop.registry.Declarations()
	}

	rounds := 0
	for {
		if ctx.Err() != nil {
			return newRunError(FailureBudgetExceeded, state, ctx.Err())
		}
		if state.TotalSteps >= e.maxTotalSteps {
			return newRunError(FailureBudgetExceeded, state,
				fmt.Errorf("total step bound (%d) reached during %s turn", e.maxTotalSteps, role.Name))
		}
		state.TotalSteps++

		e.log.Record(ctx, audit.Entry{
			RunID:  state.RunID,
			Caller: role.Name,
			Kind:   audit.KindModelRequest,
			Payload: map[string]any{
				"messages":   len(req.History),
				"tools":      len(req.Tools),
				"tool_round": rounds,
			},
		})

		resp, err := e.provider.Generate(ctx, req)
		if err != nil {
			return newRunError(FailureToolLoopExhausted, state,
				fmt.Errorf("%s inference failed: %w", role.Name, err))
		}

		e.log.Record(ctx, audit.Entry{
			RunID:  state.RunID,
			Caller: role.Name,
			Kind:   audit.KindModelResponse,
			Payload: map[string]any{
				"type":       string(resp.Content.Type),
				"tool_calls": len(resp.Content.ToolCalls),
				"tokens":     resp.Metadata.TotalTokens,
			},
		})

		switch resp.Content.Type {
		case provider.ResponseTypeText:
			state.Append(models.Message{
				Role:    models.RoleAssistant,
				Agent:   role.Name,
				Content: resp.Content.Text,
				Marker:  role.Marker,
			})
			return nil

		case provider.ResponseTypeToolCall:
			rounds++
			if rounds > e.maxToolRounds {
				return newRunError(FailureToolLoopExhausted, state,
					fmt.Errorf("%s exceeded %d tool rounds", role.Name, e.maxToolRounds))
			}

			state.Append(models.Message{
				Role:      models.RoleAssistant,
				Agent:     role.Name,
				Content:   resp.Content.Text,
				ToolCalls: resp.Content.ToolCalls,
			})

			results := e.loop.Dispatch(ctx, state.RunID, role.Name, resp.Content.ToolCalls)
			for i := range results {
				res := results[i]
				state.Append(models.Message{
					Role:       models.RoleTool,
					Agent:      role.Name,
					ToolCallID: res.ID,
					Result:     &res,
				})
			}

			req.History = append([]models.Message{
				{Role: models.RoleSystem, Content: role.Instructions},
			}, state.Messages()...)

		case provider.ResponseTypeRefusal:
			// A refusal still completes the turn; the marker keeps the
			// routing rule moving so the run terminates with an explicit
			// answer instead of looping.
			state.Append(models.Message{
				Role:    models.RoleAssistant,
				Agent:   role.Name,
				Content: fmt.Sprintf("Unable to proceed with this request: %s", resp.Content.RefusalReason),
				Marker:  role.Marker,
			})
			return nil

		default:
			return newRunError(FailureToolLoopExhausted, state,
				fmt.Errorf("%s returned unknown response type %q", role.Name, resp.Content.Type))
		}
	}
}
