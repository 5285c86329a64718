package agents

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages registered agents.
type Registry struct {
	mu     sync.RWMutex
	agents map[string]Definition
}

// NewRegistry creates an empty agent registry.
func NewRegistry() *Registry {
	return &Registry{
		agents: make(map[string]Definition),
	}
}

// Register adds an agent to the registry.
// Returns an error if an agent with the same name is already registered.
func (r *Registry) Register(def Definition) error {
	if def.Name == "" {
		return fmt.Errorf("agent name is required")
	}
	if def.New == nil {
		return fmt.Errorf("agent %q has no factory", def.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.agents[def.Name]; exists {
		return fmt.Errorf("agent %q already registered", def.Name)
	}

	r.agents[def.Name] = def
	return nil
}

// MustRegister adds an agent to the registry, panicking on error.
func (r *Registry) MustRegister(def Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Get retrieves an agent by name.
func (r *Registry) Get(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.agents[name]
	return def, ok
}

// List returns all registered agents sorted by name.
func (r *Registry) List() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.agents))
	for _, def := range r.agents {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].Name < defs[j].Name
	})
	return defs
}

// Names returns the names of all registered agents, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.agents))
	for name := range r.agents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry holds the builtin agents.
var DefaultRegistry = newBuiltinRegistry()

// Get retrieves an agent from the default registry by name.
func Get(name string) (Definition, bool) {
	return DefaultRegistry.Get(name)
}

// List returns all agents from the default registry.
func List() []Definition {
	return DefaultRegistry.List()
}
