package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Diagnostic codes emitted by the assembly pipeline.
const (
	CodeMissingPV        = "missing-pv"
	CodeIncompleteConfig = "incomplete-config"
	CodeUnknownVersion   = "unknown-version"
	CodeNoIntents        = "no-intents"
	CodeBadPragma        = "bad-pragma"
)

// Diagnostics holds all diagnostic information from one assembly run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Element names the tree element this relates to (if any).
	Element string
	// PvPath is the complete or partial PV path this relates to (if any).
	PvPath string
	// Missing lists unmet rule lines for incomplete configurations.
	Missing []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, element, pvPath string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Element:  element,
		PvPath:   pvPath,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, element, pvPath string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Element:  element,
		PvPath:   pvPath,
	})
}

// AddIncomplete adds a warning describing a rejected package and the
// rule lines it is missing.
func (d *Diagnostics) AddIncomplete(element, pvPath string, missing []string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     CodeIncompleteConfig,
		Message:  "configuration incomplete, missing: " + strings.Join(missing, ", "),
		Element:  element,
		PvPath:   pvPath,
		Missing:  missing,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, element, pvPath string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
		Element:  element,
		PvPath:   pvPath,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// Error returns a combined error from all error diagnostics, or nil if
// valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Element != "" {
		prefix = append(prefix, "["+d.Element+"]")
	}

	if d.PvPath != "" {
		prefix = append(prefix, d.PvPath)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
