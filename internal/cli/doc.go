// Package cli parses command-line arguments into a validated app.Config.
// It owns the user-facing usage text and the ExitError type that carries
// process exit codes out of the run loop.
package cli
