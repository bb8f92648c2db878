// Package config implements the host's configuration subsystem.
//
// Every extension describes its configuration surface with a Schema, an
// ordered mapping from option name to a config value type such as Boolean or
// Port. The host merges each extension's default config text with any user
// supplied HCL files into a single Model, one section per extension, which is
// then handed to components and commands at runtime.
package config
