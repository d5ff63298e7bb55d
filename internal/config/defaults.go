package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Orchestrator OrchestratorConfig `json:"orchestrator"`
	Provider     ProviderConfig     `json:"provider"`
	Policy       PolicyConfig       `json:"policy"`
	Audit        AuditConfig        `json:"audit"`
}

type OrchestratorConfig struct {
	// Routing budget: maximum supervisor invocations per run
	MaxSupervisorCalls int `json:"max_supervisor_calls"` // Default: 12

	// Per-agent-turn budget: maximum tool rounds before the turn fails
	MaxToolRounds int `json:"max_tool_rounds"` // Default: 10

	// Global step ceiling across supervisor and agent steps
	MaxTotalSteps int `json:"max_total_steps"` // Default: 60
}

type ProviderConfig struct {
	Model       string  `json:"model"`       // Default: gemini-2.5-flash
	Temperature float32 `json:"temperature"` // Default: 0.2
}

type PolicyConfig struct {
	// DocsDir points at a directory of YAML policy documents. Empty means
	// the built-in policy set.
	DocsDir string `json:"docs_dir"` // Default: ""
}

type AuditConfig struct {
	// LogDir is where per-run event logs are written. Empty selects the
	// default location.
	LogDir string `json:"log_dir"` // Default: ~/.local/share/careflow/runs (resolved by the CLI)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Orchestrator: OrchestratorConfig{
			MaxSupervisorCalls: 12,
			MaxToolRounds:      10,
			MaxTotalSteps:      60,
		},
		Provider: ProviderConfig{
			Model:       "gemini-2.5-flash",
			Temperature: 0.2,
		},
		Policy: PolicyConfig{},
		Audit:  AuditConfig{},
	}
}
