package app

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/vk/plughub/internal/component"
	"github.com/vk/plughub/internal/ctxlog"
)

// Run assembles and executes the runtime topology: every component factory
// registered under the host-reserved "frontend" and "backend" keys is
// invoked, and the resulting components run concurrently until the context
// is cancelled or one of them fails.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	g, ctx := errgroup.WithContext(ctx)
	started := 0
	for _, key := range []string{"frontend", "backend"} {
		for _, c := range a.registry.Get(key) {
			factory, ok := c.(component.Factory)
			if !ok {
				a.logger.Debug("Skipping non-runnable registry entry.",
					"key", key, "type", fmt.Sprintf("%T", c))
				continue
			}
			runnable, err := factory(a.model, a.registry)
			if err != nil {
				a.logger.Error("Failed to build component, skipping.",
					"key", key, "error", err)
				continue
			}
			started++
			g.Go(func() error { return runnable.Run(ctx) })
		}
	}

	if started == 0 {
		a.logger.Warn("No runnable components registered, nothing to do.")
		return nil
	}

	a.logger.Info("Runtime topology assembled.", "components", started)
	err := g.Wait()
	a.logger.Debug("App.Run method finished.")
	return err
}

// RunCommand dispatches an extension-provided subcommand by name, passing
// through the remaining arguments.
func (a *App) RunCommand(ctx context.Context, name string, args []string) error {
	cmd, ok := a.commands[name]
	if !ok {
		available := make([]string, 0, len(a.commands))
		for cmdName := range a.commands {
			available = append(available, cmdName)
		}
		sort.Strings(available)
		return fmt.Errorf("unknown command %q (available: %v)", name, available)
	}

	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("Running extension command.", "command", name)
	return cmd.Run(ctx, a.model, args)
}
