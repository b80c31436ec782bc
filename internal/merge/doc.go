// Package merge combines an ordered sequence of fragments into a single
// resolved configuration.
//
// The merge is applied key-path by key-path, in fragment order:
//
//   - mappings union their keys and recurse on overlaps;
//   - sequences concatenate in fragment order;
//   - scalars are last-writer-wins, unless a value is force-marked, in
//     which case it wins regardless of order. Two distinct force-marked
//     values at the same path are a ConflictError.
//
// Unknown option paths pass through verbatim (open schema). The merge is
// pure: no I/O, and the Result is read-only once built.
package merge
