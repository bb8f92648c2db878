// Package app wires the PlugHub bootstrap sequence together.
//
// NewApp runs the whole startup pipeline on a single goroutine: discover all
// extension candidates, validate each, load the effective configuration, and
// compose the accepted extensions into the shared registry. Run then
// assembles the runtime topology by starting every frontend and backend
// component the extensions registered.
//
// No extension failure crashes the bootstrap; broken extensions are logged
// and excluded. Only operator errors, such as an unreadable config file,
// panic out of NewApp and are recovered at the process entry point.
package app
