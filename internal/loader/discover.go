package loader

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vk/plughub/internal/command"
	"github.com/vk/plughub/internal/config"
	"github.com/vk/plughub/internal/ctxlog"
	"github.com/vk/plughub/internal/extension"
)

// Descriptor is the immutable metadata bundle produced for every
// successfully instantiated extension candidate. The entry point is kept as
// the handle back into the plugin namespace for identity and dependency
// checks.
type Descriptor struct {
	Extension      extension.Extension
	EntryPoint     EntryPoint
	ConfigSchema   *config.Schema
	ConfigDefaults string
	Command        *command.Command
}

// Discover enumerates every entry point in the namespace, resolves and
// instantiates each candidate, and returns one descriptor per candidate that
// was fully constructible. Candidates are processed in name order so that
// downstream registry contents are reproducible.
//
// Discover never fails as a whole: each per-candidate failure is logged with
// the candidate's name and only that candidate is skipped.
func Discover(ctx context.Context, ns Namespace) []*Descriptor {
	logger := ctxlog.FromContext(ctx)

	entries := ns.Enumerate()
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	var found []*Descriptor
	for _, ep := range entries {
		logger.Debug("Loading entry point.", "name", ep.Name)

		resolved, err := ns.Resolve(ep.Ref)
		if err != nil {
			logger.Error("Failed to load extension.", "name", ep.Name, "error", err)
			continue
		}

		factory, ok := resolved.(extension.Factory)
		if !ok {
			logger.Error("Entry point did not contain a valid extension factory.",
				"name", ep.Name, "type", fmt.Sprintf("%T", resolved))
			continue
		}

		desc, err := buildDescriptor(ep, factory)
		if err != nil {
			logger.Error("Setup of extension from entry point failed, ignoring extension.",
				"name", ep.Name, "error", err)
			continue
		}

		found = append(found, desc)
		logger.Debug("Loaded extension.",
			"dist", desc.Extension.DistName(), "version", desc.Extension.Version())
	}

	names := make([]string, len(found))
	for i, desc := range found {
		names[i] = desc.Extension.ExtName()
	}
	logger.Debug("Discovered extensions.", "names", strings.Join(names, ", "))
	return found
}

// buildDescriptor instantiates the candidate and gathers its metadata into a
// descriptor. Panics anywhere in extension code are converted into errors so
// that one broken candidate cannot abort the discovery pass.
func buildDescriptor(ep EntryPoint, factory extension.Factory) (desc *Descriptor, err error) {
	defer func() {
		if r := recover(); r != nil {
			desc = nil
			err = fmt.Errorf("extension panicked: %v", r)
		}
	}()

	ext := factory()
	if ext == nil {
		return nil, fmt.Errorf("extension factory returned nil")
	}
	if ext.DistName() == "" || ext.ExtName() == "" || ext.Version() == "" {
		return nil, fmt.Errorf("missing required metadata (dist name, extension name, version)")
	}

	return &Descriptor{
		Extension:      ext,
		EntryPoint:     ep,
		ConfigSchema:   ext.ConfigSchema(),
		ConfigDefaults: ext.DefaultConfig(),
		Command:        ext.Command(),
	}, nil
}
