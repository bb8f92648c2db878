// Package loader discovers extension candidates from a plugin namespace and
// packages each constructible one into a Descriptor for validation.
//
// The Namespace abstraction stands in for a dynamic entry point mechanism: a
// set of (name, reference) pairs plus resolution and dependency checking. The
// default implementation is a static compiled-in table, but anything
// satisfying Namespace can be injected, which is how tests drive discovery
// with doubles.
//
// Discovery isolates per-candidate failures: a candidate that fails to
// resolve, instantiate, or expose its metadata is logged and skipped, and
// Discover never fails as a whole.
package loader
