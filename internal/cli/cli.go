package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"github.com/vic/van/internal/app"
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

// DefaultRootPath is where fragments live unless a directory is given.
const DefaultRootPath = "nix"

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("van", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
van - a declarative development environment composer.

Usage:
  van [options] [COMMAND] [CONFIG_DIR]

Commands:
  build    Merge fragments and materialize artifacts (default).
  lock     Regenerate the pinned dependency lockfile.

Arguments:
  CONFIG_DIR
    Directory containing .hcl configuration fragments (default "nix").

Options:
`)
		flagSet.PrintDefaults()
	}

	platformFlag := flagSet.String("platform", HostPlatform(), "Target platform identifier.")
	outFlag := flagSet.String("out", "out", "Output directory for materialized artifacts.")
	lockFlag := flagSet.String("lockfile", "van.lock", "Path of the generated lockfile.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	watchFlag := flagSet.Bool("watch", false, "With lock: stay running and regenerate on fragment changes.")
	checkFlag := flagSet.Bool("check", false, "With lock: verify the lockfile is current instead of writing it.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	command := app.CommandBuild
	rootPath := DefaultRootPath
	switch positional := flagSet.Args(); len(positional) {
	case 0:
	case 1:
		// A single positional is either a command or a fragment directory.
		if positional[0] == app.CommandBuild || positional[0] == app.CommandLock {
			command = positional[0]
		} else {
			rootPath = positional[0]
		}
	case 2:
		command = positional[0]
		rootPath = positional[1]
	default:
		return nil, false, &ExitError{Code: 2, Message: "too many arguments"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Command:   command,
		RootPath:  rootPath,
		Platform:  *platformFlag,
		OutDir:    *outFlag,
		LockPath:  *lockFlag,
		LogFormat: logFormat,
		LogLevel:  logLevel,
		Watch:     *watchFlag,
		Check:     *checkFlag,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// HostPlatform maps the running Go toolchain's GOARCH/GOOS pair onto the
// platform identifier convention used in fragment platform sets.
func HostPlatform() string {
	arch := runtime.GOARCH
	switch arch {
	case "amd64":
		arch = "x86_64"
	case "arm64":
		arch = "aarch64"
	case "386":
		arch = "i686"
	}
	return arch + "-" + runtime.GOOS
}
