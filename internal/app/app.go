package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/plughub/internal/command"
	"github.com/vk/plughub/internal/config"
	"github.com/vk/plughub/internal/ctxlog"
	"github.com/vk/plughub/internal/loader"
	"github.com/vk/plughub/internal/registry"
	"github.com/vk/plughub/internal/validator"
)

// App encapsulates the host's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	model    *config.Model
	active   []*loader.Descriptor
	commands map[string]*command.Command
}

// NewApp is the constructor for the host application. It runs the full
// bootstrap sequence — discovery, validation, configuration, composition —
// and returns a fully initialized App with its own isolated logger,
// registry, and config model. Passing a nil namespace selects the builtin
// extensions; tests inject their own.
func NewApp(outW io.Writer, appConfig *Config, ns loader.Namespace) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if ns == nil {
		ns = builtinNamespace()
	}

	// Discover every constructible candidate, then keep only the ones the
	// validator accepts. Both stages isolate per-extension failures.
	descriptors := loader.Discover(ctx, ns)
	v := validator.New(ns)
	var accepted []*loader.Descriptor
	for _, d := range descriptors {
		if v.Validate(ctx, d) {
			accepted = append(accepted, d)
		}
	}
	logger.Debug("Extensions validated.",
		"discovered", len(descriptors), "accepted", len(accepted))

	// Build the effective config: accepted extensions' defaults overlaid
	// with user config. An unreadable user config is an operator error and
	// a fatal startup condition.
	defaults := make([]config.Defaults, 0, len(accepted))
	for _, d := range accepted {
		defaults = append(defaults, config.Defaults{
			Section: d.Extension.ExtName(),
			Text:    d.ConfigDefaults,
			Schema:  d.ConfigSchema,
		})
	}
	model, err := config.Load(ctx, defaults, appConfig.ConfigPath)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}

	// Drop extensions switched off in the effective config before they get
	// a chance to register anything.
	var enabled []*loader.Descriptor
	for _, d := range accepted {
		if !model.Enabled(d.Extension.ExtName()) {
			logger.Info("Extension disabled by configuration.",
				"name", d.Extension.ExtName())
			continue
		}
		enabled = append(enabled, d)
	}

	reg := registry.New()
	active := compose(ctx, reg, enabled)

	commands := make(map[string]*command.Command)
	for _, d := range active {
		if d.Command == nil {
			continue
		}
		if _, exists := commands[d.Command.Name]; exists {
			logger.Warn("Ignoring duplicate extension command.",
				"command", d.Command.Name, "extension", d.Extension.ExtName())
			continue
		}
		commands[d.Command.Name] = d.Command
	}

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		model:    model,
		active:   active,
		commands: commands,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Model returns the effective configuration model.
func (a *App) Model() *config.Model {
	return a.model
}

// ActiveExtensions returns the names of the extensions that completed
// composition, in activation order.
func (a *App) ActiveExtensions() []string {
	names := make([]string, len(a.active))
	for i, d := range a.active {
		names[i] = d.Extension.ExtName()
	}
	return names
}
