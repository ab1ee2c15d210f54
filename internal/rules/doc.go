// Package rules declares the versioned tables of pragma fields a
// complete PV configuration must contain.
//
// Each version is a closed variant carrying its ordered rule lines, a
// stub-usage flag, and a per-line list of auto-fill strategies. New
// versions are added by adding a variant, never by mutating a table at
// runtime; the shipped tables are read-only and safe for concurrent use.
package rules
