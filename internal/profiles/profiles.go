// Package profiles holds the instruction profiles ("functions") a caller can
// select by id. The registry is built once at startup and never mutated.
package profiles

// Profile is a named set of model parameters and a system instruction.
type Profile struct {
	ID           string  `json:"id" yaml:"id" doc:"Stable action identifier"`
	Name         string  `json:"name" yaml:"name" doc:"Display label"`
	Description  string  `json:"description" yaml:"description"`
	Icon         string  `json:"icon" yaml:"icon" doc:"Display glyph"`
	Model        string  `json:"model" yaml:"model" doc:"Upstream model identifier"`
	MaxTokens    int     `json:"maxTokens" yaml:"maxTokens" doc:"Upper bound on generated tokens"`
	Temperature  float64 `json:"temperature" yaml:"temperature" doc:"Sampling temperature"`
	SystemPrompt string  `json:"systemPrompt" yaml:"systemPrompt" doc:"Instruction sent as the system role"`
}

// Registry is an ordered, read-only id -> Profile table.
// Concurrent reads need no locking because nothing writes after construction.
type Registry struct {
	order []string
	byID  map[string]Profile
}

// New builds a registry from profiles in registration order.
// A later profile with an id already seen replaces the earlier one in place.
func New(list ...Profile) *Registry {
	r := &Registry{byID: make(map[string]Profile, len(list))}
	for _, p := range list {
		if _, exists := r.byID[p.ID]; !exists {
			r.order = append(r.order, p.ID)
		}
		r.byID[p.ID] = p
	}
	return r
}

// Get returns the profile registered under id.
func (r *Registry) Get(id string) (Profile, bool) {
	if r == nil {
		return Profile{}, false
	}
	p, ok := r.byID[id]
	return p, ok
}

// List returns every profile in registration order.
func (r *Registry) List() []Profile {
	if r == nil {
		return nil
	}
	out := make([]Profile, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Len returns the number of registered profiles.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}
