package validator

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/plughub/internal/config"
	"github.com/vk/plughub/internal/ctxlog"
	"github.com/vk/plughub/internal/extension"
	"github.com/vk/plughub/internal/loader"
)

// Validator runs the acceptance pipeline against discovered extension
// descriptors. The namespace is the same one the extensions were discovered
// from; it performs the dependency checks.
type Validator struct {
	ns loader.Namespace
}

// New creates a validator backed by the given plugin namespace.
func New(ns loader.Namespace) *Validator {
	return &Validator{ns: ns}
}

// Validate reports whether the extension behind the descriptor should run.
// Every rejection is logged with the extension's name and the reason; the
// checks run in a fixed order and stop at the first failure.
func (v *Validator) Validate(ctx context.Context, d *loader.Descriptor) bool {
	logger := ctxlog.FromContext(ctx)
	name := d.Extension.ExtName()
	logger.Debug("Validating extension.", "name", name)

	// Identity: the extension must carry the name it was registered under.
	if name != d.EntryPoint.Name {
		logger.Warn("Disabled extension: entry point name does not match extension name.",
			"entry_point", d.EntryPoint.Name, "extension", name)
		return false
	}

	// Declared dependencies, resolved through the namespace.
	if err := v.ns.Require(d.EntryPoint); err != nil {
		var notFound *loader.DependencyNotFoundError
		var conflict *loader.VersionConflictError
		switch {
		case errors.As(err, &notFound):
			logger.Info("Disabled extension: dependency not found.",
				"name", name, "dependency", notFound.Requirement.String())
		case errors.As(err, &conflict):
			logger.Info("Disabled extension: dependency version conflict.",
				"name", name,
				"required", conflict.Requirement.String(),
				"found", conflict.Found.Version,
				"location", conflict.Found.Location)
		default:
			logger.Info("Disabled extension: dependency check failed.",
				"name", name, "error", err)
		}
		return false
	}

	// Environment fitness, as judged by the extension itself.
	if err := validateEnvironment(d.Extension); err != nil {
		var extErr *extension.Error
		if errors.As(err, &extErr) {
			logger.Info("Disabled extension.", "name", name, "reason", extErr.Message)
		} else {
			logger.Error("Validating extension failed unexpectedly; this is a bug in the extension.",
				"name", name, "error", err)
		}
		return false
	}

	// Schema shape.
	if d.ConfigSchema == nil || d.ConfigSchema.Len() == 0 {
		logger.Error("Disabled extension: no config schema.", "name", name)
		return false
	}
	if _, ok := d.ConfigSchema.Get("enabled").(config.Boolean); !ok {
		logger.Error("Disabled extension: config schema is missing the required 'enabled' boolean option.",
			"name", name)
		return false
	}
	for _, key := range d.ConfigSchema.Keys() {
		if d.ConfigSchema.Get(key) == nil {
			logger.Error("Disabled extension: config schema contains an invalid value.",
				"name", name, "option", key)
			return false
		}
	}

	// Defaults presence.
	if d.ConfigDefaults == "" {
		logger.Error("Disabled extension: no default config.", "name", name)
		return false
	}

	return true
}

// validateEnvironment calls the extension's environment check, converting a
// panic into a plain error so a broken check disables the extension instead
// of aborting bootstrap.
func validateEnvironment(ext extension.Extension) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("environment check panicked: %v", r)
		}
	}()
	return ext.ValidateEnvironment()
}
