// Package materialize evaluates a merged configuration against a target
// platform, producing concrete artifacts: development shell activation
// scripts, wrapped binary launchers and formatter drivers.
//
// Materialization is a stateless single pass. External dependency
// references are resolved through the fetch package before any artifact is
// built; a reference with no satisfying entry fails the whole run, as does
// a target platform outside the configured platform set.
package materialize
