// Package config defines the format-agnostic fragment model, along with
// the Loader interface for reading fragments from disk.
//
// The loaded []*Fragment slice is the single source of truth for the
// `imports` and `merge` packages. Concrete Loader implementations, such as
// for HCL, are provided in separate packages.
package config
