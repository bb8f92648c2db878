// Package siobridge is the builtin extension that bridges host lifecycle
// events onto a socket.io server.
//
// It registers a frontend component that connects to the configured server
// and emits periodic heartbeat events, a status route on the HTTP API's
// extension point, and the "sio-emit" subcommand for one-off events. The
// bridge is disabled by default since it needs a server to talk to.
package siobridge

import (
	"fmt"
	"net/url"

	"github.com/vk/plughub/extensions/httpapi"
	"github.com/vk/plughub/internal/component"
	"github.com/vk/plughub/internal/config"
	"github.com/vk/plughub/internal/extension"
	"github.com/vk/plughub/internal/loader"
	"github.com/vk/plughub/internal/registry"
)

// Version is the builtin extension's version.
const Version = "0.1.0"

// defaultURL is the compiled-in bridge target; the environment check
// validates its scheme before any config is loaded.
const defaultURL = "http://127.0.0.1:3000"

const defaultConfig = `enabled              = false
url                  = "` + defaultURL + `"
namespace            = "/"
event                = "plughub:heartbeat"
interval             = 30
insecure_skip_verify = false
`

// Extension implements the extension contract for the socket.io bridge.
type Extension struct {
	extension.Base
	url string
}

// New is the extension factory registered in the plugin namespace.
func New() extension.Extension {
	return &Extension{
		Base: extension.Base{
			Dist: "plughub-siobridge",
			Name: "siobridge",
			Ver:  Version,
		},
		url: defaultURL,
	}
}

// ValidateEnvironment rejects the extension when its bridge URL uses a
// scheme the socket.io clients cannot dial.
func (e *Extension) ValidateEnvironment() error {
	u, err := url.Parse(e.url)
	if err != nil {
		return &extension.Error{
			Message: fmt.Sprintf("invalid bridge URL %q", e.url),
			Err:     err,
		}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &extension.Error{
			Message: fmt.Sprintf("unsupported bridge URL scheme %q, use http or https", u.Scheme),
		}
	}
	return nil
}

// EntryPoint returns the plugin-namespace registration for this extension.
// The bridge contributes a route to the HTTP API, so it declares the httpapi
// distribution as a dependency.
func EntryPoint() loader.EntryPoint {
	return loader.EntryPoint{
		Name: "siobridge",
		Ref:  extension.Factory(New),
		Requires: []loader.Requirement{
			{Name: "plughub-httpapi", Constraint: ">=0.1.0"},
		},
	}
}

func (e *Extension) DefaultConfig() string {
	return defaultConfig
}

func (e *Extension) ConfigSchema() *config.Schema {
	schema := e.Base.ConfigSchema()
	schema.Set("url", config.String{})
	schema.Set("namespace", config.String{})
	schema.Set("event", config.String{})
	schema.Set("interval", config.Integer{})
	schema.Set("insecure_skip_verify", config.Boolean{})
	return schema
}

func (e *Extension) Setup(r *registry.Registry) error {
	r.Add("frontend", component.Factory(newBridge))
	r.Add(httpapi.RoutesKey, &statusRoute{})
	return nil
}
