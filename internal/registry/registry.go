package registry

import (
	"log/slog"
	"sort"
)

// Registry holds the components registered by extensions for a single host
// instance. Keys map to ordered lists: multiple components can be registered
// under the same key, insertion order within a key is preserved, and nothing
// is ever removed or replaced.
//
// The registry is populated single-threaded during composition and is
// read-mostly afterwards. It performs no locking of its own.
type Registry struct {
	components map[string][]any
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		components: make(map[string][]any),
	}
}

// Add appends a component to the ordered list at key, creating the key if it
// is absent. Components are not deduplicated: registering the same component
// twice under one key yields two entries.
func (r *Registry) Add(key string, component any) {
	slog.Debug("Registering component.", "key", key)
	r.components[key] = append(r.components[key], component)
}

// GetOrCreate returns the ordered list of components at key, creating an
// empty entry as a side effect if the key was never touched. Repeated calls
// for an absent key observe the same (empty) entry; only Add changes it.
func (r *Registry) GetOrCreate(key string) []any {
	if _, ok := r.components[key]; !ok {
		r.components[key] = nil
	}
	return r.components[key]
}

// Get returns the ordered list of components at key without mutating the
// registry. Unknown keys yield an empty list.
func (r *Registry) Get(key string) []any {
	return r.components[key]
}

// Has reports whether key has been created, either by Add or by GetOrCreate.
func (r *Registry) Has(key string) bool {
	_, ok := r.components[key]
	return ok
}

// Keys returns all known keys in lexical order. The order of keys carries no
// meaning; sorting only keeps logs and iteration reproducible.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.components))
	for key := range r.components {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of known keys.
func (r *Registry) Len() int {
	return len(r.components)
}
