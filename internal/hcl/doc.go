// Package hcl provides the concrete HCL implementation of the fragment
// loading interface defined in the `config` package. It is responsible for
// file discovery, parsing, import chasing, and the HCL-to-model
// translation.
package hcl
