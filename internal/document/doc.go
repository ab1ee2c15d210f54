// Package document loads TwinCAT .tmc files into an element tree the
// assembler can walk.
//
// Key capabilities:
//   - Symbols, data types, and sub-items from the tmc XML
//   - Insertion-ordered collections with a pragma-carrying view
//   - Root-to-leaf chain extraction for pragma-annotated variables
package document
