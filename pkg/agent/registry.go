package agent

import (
	"sort"
	"sync"

	"github.com/germanamz/openrouter/pkg/errs"
)

// Registry is a thread-safe directory of agents keyed by name.
type Registry struct {
	mu     sync.RWMutex
	agents map[string]*Agent
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{agents: make(map[string]*Agent)}
}

// Register adds a to the registry. Agents must be named and names must be
// unique.
func (r *Registry) Register(a *Agent) error {
	name := a.Name()
	if name == "" {
		return errs.Validation(op, "agent name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.agents[name]; dup {
		return errs.Validation(op, "duplicate agent name %q", name)
	}
	r.agents[name] = a

	return nil
}

// Get returns the named agent and true, or nil and false if not found.
func (r *Registry) Get(name string) (*Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.agents[name]
	return a, ok
}

// Names returns the registered agent names, sorted.
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

// Len returns the number of registered agents.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.agents)
}
