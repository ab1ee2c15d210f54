// Package assemble turns chains of pragma-annotated tree elements into
// fully specified PV configuration packages.
//
// Key capabilities:
//   - Cartesian expansion of per-element configuration intents
//   - Per-path binding of PV fragments onto element copies
//   - Completeness checks against the versioned rule tables
//   - Accepted/rejected partitioning with per-path diagnostics
package assemble
