// Package pragma parses TwinCAT pragma blocks into structured
// configuration lines.
//
// Key capabilities:
//   - Splitting a raw pragma string into title/tag lines
//   - Breaking field tags into their name/setting parts
//   - Grouping lines into per-PV configuration intents
//   - Nested-key lookup used by rule matching
package pragma
