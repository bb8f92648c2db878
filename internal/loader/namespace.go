package loader

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// EntryPoint is one plugin-namespace registration: a name, an opaque
// loadable reference, and the declared dependencies of the distribution
// behind it.
type EntryPoint struct {
	Name     string
	Ref      any
	Requires []Requirement
}

// Requirement names a distribution the extension needs at runtime, with an
// optional version constraint such as ">=1.2.0".
type Requirement struct {
	Name       string
	Constraint string
}

// String renders the requirement the way it is reported in logs.
func (r Requirement) String() string {
	if r.Constraint == "" {
		return r.Name
	}
	return r.Name + " " + r.Constraint
}

// Satisfied reports whether an installed version meets the constraint. An
// empty constraint accepts any version. Supported operators are >=, >, <=,
// < and =; a bare version means =.
func (r Requirement) Satisfied(version string) bool {
	if r.Constraint == "" {
		return true
	}
	op, want := splitConstraint(r.Constraint)
	cmp := semver.Compare(canonical(version), canonical(want))
	switch op {
	case ">=":
		return cmp >= 0
	case ">":
		return cmp > 0
	case "<=":
		return cmp <= 0
	case "<":
		return cmp < 0
	default:
		return cmp == 0
	}
}

// splitConstraint separates the comparison operator from the version.
func splitConstraint(constraint string) (op, version string) {
	for _, candidate := range []string{">=", "<=", ">", "<", "="} {
		if strings.HasPrefix(constraint, candidate) {
			return candidate, strings.TrimSpace(constraint[len(candidate):])
		}
	}
	return "=", strings.TrimSpace(constraint)
}

// canonical normalizes a version into the form x/mod/semver compares.
func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// Dist describes one installed distribution the dependency check resolves
// against.
type Dist struct {
	Name     string
	Version  string
	Location string
}

// DependencyNotFoundError reports a declared dependency with no installed
// distribution at all.
type DependencyNotFoundError struct {
	Requirement Requirement
}

func (e *DependencyNotFoundError) Error() string {
	return fmt.Sprintf("dependency %s not found", e.Requirement)
}

// VersionConflictError reports an installed distribution whose version does
// not satisfy the declared constraint.
type VersionConflictError struct {
	Requirement Requirement
	Found       Dist
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("%s required, but found %s %s at %s",
		e.Requirement, e.Found.Name, e.Found.Version, e.Found.Location)
}

// Namespace is the plugin-namespace collaborator discovery consumes: an
// enumerable set of entry points, a resolution operation, and a dependency
// check. Implementations may hit the filesystem or other slow media; any
// failure they return degrades to "skip this extension", never to an aborted
// bootstrap.
type Namespace interface {
	// Enumerate returns all registered entry points. Order is not
	// significant; Discover sorts by name before use.
	Enumerate() []EntryPoint

	// Resolve turns an entry point's opaque reference into the value it
	// loads, typically an extension.Factory.
	Resolve(ref any) (any, error)

	// Require checks the entry point's declared dependencies against the
	// installed distributions, returning *DependencyNotFoundError or
	// *VersionConflictError on the first unsatisfied requirement.
	Require(ep EntryPoint) error
}
