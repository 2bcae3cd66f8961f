package tools

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateTool is returned when a name is registered twice.
	ErrDuplicateTool = errors.New("tool already registered")
	// ErrUnknownTool is returned when a lookup finds no definition.
	ErrUnknownTool = errors.New("unknown tool")
)

// Registry is the catalog of invocable tools. It is populated once at startup
// and read-only afterwards, so lookups need no synchronisation and are safe
// for concurrent use.
type Registry struct {
	byName map[string]ToolDefinition
	order  []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]ToolDefinition)}
}

// Register adds a definition. Names must be unique; custom tools must carry a
// handler, embedded tools a provider type and a compatible-model list.
func (r *Registry) Register(def ToolDefinition) error {
	if def.Name == "" {
		return errors.New("tool name is empty")
	}
	if _, exists := r.byName[def.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, def.Name)
	}
	if def.Embedded {
		if def.EmbeddedType == "" {
			return fmt.Errorf("embedded tool %s must have an embedded type", def.Name)
		}
		if len(def.CompatibleModels) == 0 {
			return fmt.Errorf("embedded tool %s must declare compatible models", def.Name)
		}
	} else if def.Function == nil {
		return fmt.Errorf("tool %s has no handler", def.Name)
	}

	r.byName[def.Name] = def
	r.order = append(r.order, def.Name)
	return nil
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (ToolDefinition, error) {
	def, ok := r.byName[name]
	if !ok {
		return ToolDefinition{}, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return def, nil
}

// Definitions returns all definitions in registration order.
func (r *Registry) Definitions() []ToolDefinition {
	out := make([]ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// ForModel returns the definitions advertisable to model, in registration
// order.
func (r *Registry) ForModel(model string) []ToolDefinition {
	var out []ToolDefinition
	for _, name := range r.order {
		if def := r.byName[name]; def.CompatibleWith(model) {
			out = append(out, def)
		}
	}
	return out
}
