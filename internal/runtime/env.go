package runtime

import "sort"

// Environment represents a variable scope with an optional parent chain.
// Get walks the chain; Define always mutates the local map, overwriting an
// existing binding (VAR is the language's only assignment form).
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a new environment with an optional parent scope.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Get looks up a variable by walking the scope chain.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if val, exists := env.values[name]; exists {
			return val, true
		}
	}
	return nil, false
}

// Define binds a name in the current scope only.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Names returns the names bound in the local scope, sorted.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
