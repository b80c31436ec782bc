package app

import (
	"errors"
	"fmt"
)

// Commands understood by the application.
const (
	CommandBuild = "build"
	CommandLock  = "lock"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command  string // build or lock
	RootPath string // fragment directory

	Platform string // target platform identifier
	OutDir   string // artifact output directory (build)
	LockPath string // lockfile location (lock)

	LogFormat string
	LogLevel  string

	Watch bool // lock: stay running and regenerate on change
	Check bool // lock: verify instead of writing
}

// NewConfig validates a Config and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.RootPath == "" {
		return nil, errors.New("RootPath is a required configuration field and cannot be empty")
	}
	if cfg.Command == "" {
		cfg.Command = CommandBuild
	}

	switch cfg.Command {
	case CommandBuild, CommandLock:
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}

	if cfg.Command == CommandBuild {
		if cfg.Watch {
			return nil, errors.New("-watch is only valid with the lock command")
		}
		if cfg.Check {
			return nil, errors.New("-check is only valid with the lock command")
		}
		if cfg.Platform == "" {
			return nil, errors.New("Platform is required for build")
		}
	}

	if cfg.Watch && cfg.Check {
		return nil, errors.New("-watch and -check are mutually exclusive")
	}

	return &cfg, nil
}
