// Package diagnostic provides structured warnings, errors, and
// per-path reports for the PV assembly pipeline.
//
// Key capabilities:
//   - Structural errors with element and PV-path context
//   - Incomplete-configuration reports listing missing rule lines
//   - Combined error rendering for CLI output
package diagnostic
