package agent

import "context"

type Tool interface {
	Name() string
	Description() string
	InputSchema() any
	Execute(ctx context.Context, input string) (string, error)
}

type Registry struct {
	tools map[string]Tool
	order []string
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

func (r *Registry) Register(t Tool) {
	if _, ok := r.tools[t.Name()]; !ok {
		r.order = append(r.order, t.Name())
	}
	r.tools[t.Name()] = t
}

func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// All returns tools in registration order.
func (r *Registry) All() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Scope returns a registry restricted to the named tools. An empty list
// means no restriction.
func (r *Registry) Scope(names []string) *Registry {
	if len(names) == 0 {
		return r
	}
	scoped := NewRegistry()
	for _, name := range names {
		if t, ok := r.tools[name]; ok {
			scoped.Register(t)
		}
	}
	return scoped
}
