package loader

import "fmt"

// StaticNamespace is a compiled-in plugin namespace: entry points and the
// installed-distribution inventory are registered explicitly at startup.
// It is the namespace used for builtin extensions and for tests.
type StaticNamespace struct {
	entries   []EntryPoint
	installed map[string]Dist
}

// NewStaticNamespace creates an empty static namespace.
func NewStaticNamespace() *StaticNamespace {
	return &StaticNamespace{
		installed: make(map[string]Dist),
	}
}

// Add registers an entry point.
func (n *StaticNamespace) Add(ep EntryPoint) {
	n.entries = append(n.entries, ep)
}

// Install records an installed distribution for dependency checks.
func (n *StaticNamespace) Install(d Dist) {
	n.installed[d.Name] = d
}

// Enumerate returns a copy of all registered entry points.
func (n *StaticNamespace) Enumerate() []EntryPoint {
	entries := make([]EntryPoint, len(n.entries))
	copy(entries, n.entries)
	return entries
}

// Resolve returns the reference itself; in a static table the reference is
// already the loaded value.
func (n *StaticNamespace) Resolve(ref any) (any, error) {
	if ref == nil {
		return nil, fmt.Errorf("entry point reference is nil")
	}
	return ref, nil
}

// Require checks each declared requirement against the installed inventory.
func (n *StaticNamespace) Require(ep EntryPoint) error {
	for _, req := range ep.Requires {
		dist, ok := n.installed[req.Name]
		if !ok {
			return &DependencyNotFoundError{Requirement: req}
		}
		if !req.Satisfied(dist.Version) {
			return &VersionConflictError{Requirement: req, Found: dist}
		}
	}
	return nil
}
