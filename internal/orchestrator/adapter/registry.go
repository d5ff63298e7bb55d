package adapter

import (
	"fmt"
	"sort"

	provider "careflow/internal/provider/models"
)

// Registry maps tool names to handlers. Registration happens at wiring time;
// afterwards the registry is read-only and safe to share across runs.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry creates a registry from the given tools.
// Duplicate names are rejected so wiring mistakes surface at startup.
func NewRegistry(tools ...Tool) (*Registry, error) {
	m := make(map[string]Tool, len(tools))
	for _, t := range tools {
		name := t.Name()
		if name == "" {
			return nil, fmt.Errorf("tool name cannot be empty")
		}
		if _, exists := m[name]; exists {
			return nil, fmt.Errorf("duplicate tool name %q", name)
		}
		m[name] = t
	}
	return &Registry{tools: m}, nil
}

// Lookup returns the tool registered under name. Exact match only.
func (r *Registry) Lookup(name string) (Tool, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
	return t, nil
}

// Declarations returns the tool definitions for all registered tools,
// sorted by name for a stable prompt layout.
func (r *Registry) Declarations() []provider.ToolDefinition {
	out := make([]provider.ToolDefinition, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t.Definition())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
