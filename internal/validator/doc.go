// Package validator decides whether a discovered extension is fit to run.
//
// Validation is a sequential, short-circuiting pipeline over each
// descriptor: identity first, then declared dependencies, environment
// fitness, config schema shape, and finally default config presence. The
// first failing check disables the extension and logs the reason; later
// checks never run. Cheap structural checks come first so clearly
// misconfigured extensions never trigger dependency resolution or
// environment probes.
package validator
