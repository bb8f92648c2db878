// Package httpapi is the builtin extension exposing the host's HTTP API.
//
// It registers a frontend component that serves host status and registry
// contents over HTTP, and owns the "httpapi:routes" registry key: other
// extensions can register RouteProvider values there to mount routes of
// their own on the API router.
package httpapi

import (
	"github.com/vk/plughub/internal/component"
	"github.com/vk/plughub/internal/config"
	"github.com/vk/plughub/internal/extension"
	"github.com/vk/plughub/internal/loader"
	"github.com/vk/plughub/internal/registry"
)

// Version is the builtin extension's version, reported in API responses and
// used for dependency checks by extensions building on the HTTP API.
const Version = "0.1.0"

// RoutesKey is the registry key other extensions use to contribute routes.
const RoutesKey = "httpapi:routes"

const defaultConfig = `enabled  = true
hostname = "127.0.0.1"
port     = 6680
`

// Extension implements the extension contract for the HTTP API.
type Extension struct {
	extension.Base
}

// New is the extension factory registered in the plugin namespace.
func New() extension.Extension {
	return &Extension{Base: extension.Base{
		Dist: "plughub-httpapi",
		Name: "httpapi",
		Ver:  Version,
	}}
}

// EntryPoint returns the plugin-namespace registration for this extension.
func EntryPoint() loader.EntryPoint {
	return loader.EntryPoint{
		Name: "httpapi",
		Ref:  extension.Factory(New),
	}
}

func (e *Extension) DefaultConfig() string {
	return defaultConfig
}

func (e *Extension) ConfigSchema() *config.Schema {
	schema := e.Base.ConfigSchema()
	schema.Set("hostname", config.Hostname{})
	schema.Set("port", config.Port{})
	return schema
}

func (e *Extension) Setup(r *registry.Registry) error {
	r.Add("frontend", component.Factory(newFrontend))
	// Touch the extension point so it exists even when nobody contributes.
	r.GetOrCreate(RoutesKey)
	return nil
}
