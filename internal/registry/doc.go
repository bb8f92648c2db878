// Package registry provides the shared component registry that extensions
// populate during composition.
//
// The Registry is a multi-valued mapping from string keys to ordered lists of
// component references. Extensions call Add from their Setup method to
// contribute backends, frontends, and other components; after composition the
// host reads the registry to assemble its runtime topology.
//
// Some keys have a special meaning to the host, including, but not limited to:
//
//   - "backend" holds backend component factories.
//   - "frontend" holds frontend component factories.
//
// Extensions can also use the registry to let others extend the extension
// itself, by reading a key of their own. Custom keys must be namespaced with
// the owning extension's name, e.g. "httpapi:routes".
package registry
