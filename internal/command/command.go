// Package command defines the descriptor for subcommands that extensions can
// expose to command line users of the host binary.
package command

import (
	"context"

	"github.com/vk/plughub/internal/config"
)

// Command describes one extension-provided subcommand. The host dispatches
// `plughub <name> [args...]` to the matching command after bootstrap, passing
// the effective configuration model.
type Command struct {
	// Name is the subcommand name as typed on the command line.
	Name string
	// Help is a one-line description shown in usage output.
	Help string
	// Run executes the command. Remaining command line arguments are passed
	// through untouched.
	Run func(ctx context.Context, model *config.Model, args []string) error
}
