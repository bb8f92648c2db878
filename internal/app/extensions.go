package app

import (
	"github.com/vk/plughub/extensions/httpapi"
	"github.com/vk/plughub/extensions/siobridge"
	"github.com/vk/plughub/internal/loader"
)

// builtinNamespace returns the plugin namespace holding the definitive list
// of extensions compiled into the plughub binary. Each builtin is also
// recorded as an installed distribution so extensions can declare
// dependencies on one another.
func builtinNamespace() *loader.StaticNamespace {
	ns := loader.NewStaticNamespace()

	ns.Add(httpapi.EntryPoint())
	ns.Install(loader.Dist{Name: "plughub-httpapi", Version: httpapi.Version, Location: "builtin"})

	ns.Add(siobridge.EntryPoint())
	ns.Install(loader.Dist{Name: "plughub-siobridge", Version: siobridge.Version, Location: "builtin"})

	return ns
}
