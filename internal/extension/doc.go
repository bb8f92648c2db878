// Package extension defines the contract every PlugHub extension implements.
//
// An extension is a self-contained unit that teaches the host new behavior.
// At bootstrap the loader discovers extension entry points, the validator
// decides which extensions are fit to run, and each surviving extension's
// Setup method registers its components into the shared registry.
//
// Implementations embed Base to inherit the defaulted operations and must
// provide DefaultConfig and Setup themselves; both are required by the
// Extension interface and have no default on purpose.
package extension
