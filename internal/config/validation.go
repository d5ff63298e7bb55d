package config

import (
	"fmt"
)

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	// Orchestrator budgets
	if c.Orchestrator.MaxSupervisorCalls < 1 {
		errs = append(errs, "orchestrator.max_supervisor_calls must be >= 1")
	}
	if c.Orchestrator.MaxToolRounds < 1 {
		errs = append(errs, "orchestrator.max_tool_rounds must be >= 1")
	}
	if c.Orchestrator.MaxTotalSteps < 1 {
		errs = append(errs, "orchestrator.max_total_steps must be >= 1")
	}

	// Semantic validation: the global ceiling must admit at least one
	// supervisor step.
	if c.Orchestrator.MaxTotalSteps < c.Orchestrator.MaxSupervisorCalls {
		errs = append(errs, "orchestrator.max_total_steps must be >= orchestrator.max_supervisor_calls")
	}

	// Provider validation
	if c.Provider.Model == "" {
		errs = append(errs, "provider.model cannot be empty")
	}
	if c.Provider.Temperature < 0 || c.Provider.Temperature > 2 {
		errs = append(errs, "provider.temperature must be between 0 and 2")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
