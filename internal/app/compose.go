package app

import (
	"context"
	"fmt"

	"github.com/vk/plughub/internal/ctxlog"
	"github.com/vk/plughub/internal/extension"
	"github.com/vk/plughub/internal/loader"
	"github.com/vk/plughub/internal/registry"
)

// compose invokes each accepted extension's Setup exactly once, in discovery
// order, against the shared registry, and returns the descriptors that
// activated cleanly.
//
// A Setup that returns an error or panics is a contract violation: the
// extension passed validation yet cannot compose. It is logged prominently
// and the extension's activation is dropped, but the bootstrap continues
// with the remaining extensions.
func compose(ctx context.Context, reg *registry.Registry, descriptors []*loader.Descriptor) []*loader.Descriptor {
	logger := ctxlog.FromContext(ctx)

	var active []*loader.Descriptor
	for _, d := range descriptors {
		if err := setup(d.Extension, reg); err != nil {
			logger.Error("Extension setup failed; this is a bug in the extension.",
				"name", d.Extension.ExtName(), "error", err)
			continue
		}
		active = append(active, d)
		logger.Debug("Extension composed.", "name", d.Extension.ExtName())
	}

	logger.Debug("Composition finished.",
		"active", len(active), "registry_keys", reg.Keys())
	return active
}

// setup calls the extension's Setup, converting a panic into an error so one
// malformed extension cannot abort composition.
func setup(ext extension.Extension, reg *registry.Registry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("setup panicked: %v", r)
		}
	}()
	return ext.Setup(reg)
}
