package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/plughub/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// the remaining positional arguments (an extension subcommand and its
// arguments, if any), and a boolean indicating if the program should exit
// cleanly.
func Parse(args []string, output io.Writer) (*app.Config, []string, bool, error) {
	flagSet := flag.NewFlagSet("plughub", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
PlugHub - an extensible service host assembled from extensions.

Usage:
  plughub [options] [command [args...]]

Without a command, plughub starts every frontend and backend component its
enabled extensions registered. With a command, plughub runs the matching
extension-provided subcommand instead.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to a config file or a directory of .hcl config files.")
	cFlag := flagSet.String("c", "", "Path to a config file or directory (shorthand).")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, nil, true, nil
		}
		return nil, nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	configPath := *configFlag
	if configPath == "" {
		configPath = *cFlag
	}

	appConfig, err := app.NewConfig(app.Config{
		ConfigPath: configPath,
		LogFormat:  strings.ToLower(*logFormatFlag),
		LogLevel:   strings.ToLower(*logLevelFlag),
	})
	if err != nil {
		return nil, nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return appConfig, flagSet.Args(), false, nil
}
