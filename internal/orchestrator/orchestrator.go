package orchestrator

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"careflow/internal/audit"
	"careflow/internal/orchestrator/adapter"
	"careflow/internal/orchestrator/models"
	provider "careflow/internal/provider/models"
)

// Options bounds a run and configures generation. Zero values fall back to
// the defaults below.
type Options struct {
	MaxSupervisorCalls int // default 12
	MaxToolRounds      int // default 10
	MaxTotalSteps      int // default 60
	GenerateConfig     *provider.GenerateConfig
}

const (
	defaultMaxSupervisorCalls = 12
	defaultMaxToolRounds      = 10
	defaultMaxTotalSteps      = 60
)

// Orchestrator drives one request through the supervisor/agent state
// machine until an end decision or a run failure. It is safe to reuse
// across sequential runs; each Run gets a fresh AgentState.
type Orchestrator struct {
	supervisor *Supervisor
	executor   *Executor
	roles      map[string]AgentRole
	log        audit.Logger
	opts       Options
}

// New wires an orchestrator. Roles route in slice order; the registry holds
// the tools offered to tool-capable roles. A nil logger disables auditing.
func New(p provider.Provider, registry *adapter.Registry, roles []AgentRole, log audit.Logger, opts Options) *Orchestrator {
	if log == nil {
		log = audit.NopLogger{}
	}
	if opts.MaxSupervisorCalls <= 0 {
		opts.MaxSupervisorCalls = defaultMaxSupervisorCalls
	}
	if opts.MaxToolRounds <= 0 {
		opts.MaxToolRounds = defaultMaxToolRounds
	}
	if opts.MaxTotalSteps <= 0 {
		opts.MaxTotalSteps = defaultMaxTotalSteps
	}

	byName := make(map[string]AgentRole, len(roles))
	for _, role := range roles {
		byName[role.Name] = role
	}

	return &Orchestrator{
		supervisor: NewSupervisor(p, roles),
		executor: &Executor{
			provider:      p,
			loop:          NewToolLoop(registry, log),
			log:           log,
			maxToolRounds: opts.MaxToolRounds,
			maxTotalSteps: opts.MaxTotalSteps,
			genConfig:     opts.GenerateConfig,
		},
		roles: byName,
		log:   log,
		opts:  opts,
	}
}

// Run executes one care coordination request and returns the final plan.
// Any non-nil error is a *RunError carrying the partial transcript.
func (o *Orchestrator) Run(ctx context.Context, request string) (string, error) {
	runID := uuid.NewString()
	state := models.NewAgentState(runID, request)

	plan, err := o.run(ctx, state)

	end := audit.Entry{
		RunID:  runID,
		Caller: "orchestrator",
		Kind:   audit.KindRunEnd,
		Payload: map[string]any{
			"status":                 "completed",
			"supervisor_invocations": state.SupervisorInvocations,
			"total_steps":            state.TotalSteps,
		},
	}
	if err != nil {
		end.Payload["status"] = "failed"
		if runErr, ok := err.(*RunError); ok {
			end.Payload["failure_kind"] = string(runErr.Kind)
		}
	}
	o.log.Record(ctx, end)

	return plan, err
}

func (o *Orchestrator) run(ctx context.Context, state *models.AgentState) (string, error) {
	for {
		if ctx.Err() != nil {
			return "", newRunError(FailureBudgetExceeded, state, ctx.Err())
		}
		if state.SupervisorInvocations >= o.opts.MaxSupervisorCalls {
			return "", newRunError(FailureBudgetExceeded, state,
				fmt.Errorf("supervisor call bound (%d) reached", o.opts.MaxSupervisorCalls))
		}
		if state.TotalSteps >= o.opts.MaxTotalSteps {
			return "", newRunError(FailureBudgetExceeded, state,
				fmt.Errorf("total step bound (%d) reached", o.opts.MaxTotalSteps))
		}
		state.SupervisorInvocations++
		state.TotalSteps++

		decision, err := o.supervisor.Route(ctx, state)
		if err != nil {
			return "", newRunError(FailureInvalidRouting, state, err)
		}
		state.Next = decision

		o.log.Record(ctx, audit.Entry{
			RunID:  state.RunID,
			Caller: "supervisor",
			Kind:   audit.KindRouting,
			Payload: map[string]any{
				"decision":   decision,
				"invocation": state.SupervisorInvocations,
			},
		})

		if decision == DecisionEnd {
			final, ok := state.LastWithMarker(models.MarkerFinalPlan)
			if !ok {
				return "", newRunError(FailureNoFinalAnswer, state,
					fmt.Errorf("run ended without a final plan"))
			}
			return final.Content, nil
		}

		role, ok := o.roles[decision]
		if !ok {
			return "", newRunError(FailureInvalidRouting, state,
				fmt.Errorf("%w: %q", ErrInvalidRoute, decision))
		}

		if err := o.executor.Execute(ctx, role, state); err != nil {
			return "", err
		}
	}
}
