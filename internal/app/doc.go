// Package app wires the pipeline together: fragment loading, import
// ordering, merging, and the build and lock commands built on top of the
// merged result. It owns the application logger and the validated runtime
// configuration.
package app
