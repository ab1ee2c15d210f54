// Package render emits the textual artifacts for accepted configuration
// packages: EPICS record definitions and stream protocol stubs.
package render
