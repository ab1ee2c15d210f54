package rules

import (
	"errors"
	"fmt"
	"strings"

	"pv-generator/internal/pragma"
)

//go:generate go tool stringer -type=Version -output=version_string.go

// Version selects which rule table and guess-strategy table apply to a
// configuration package.
type Version int

const (
	// VersionLegacy is the original rule set: a pv, type, str, and io
	// line plus DTYP, SCAN, and INP fields.
	VersionLegacy Version = iota

	versionTotal = int(iota)
)

// ErrUnknownVersion is returned when a requested version is not
// registered.
var ErrUnknownVersion = errors.New("unknown rule table version")

// ParseVersion maps a configuration string to a Version.
func ParseVersion(s string) (Version, error) {
	switch s {
	case "legacy", "":
		return VersionLegacy, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownVersion, s)
}

// Name returns the configuration-file spelling of the version.
func (v Version) Name() string {
	if v == VersionLegacy {
		return "legacy"
	}

	return v.String()
}

// Term is one requirement inside a rule line: the value found by walking
// Path into a pragma line must equal Value.
type Term struct {
	Path  []string
	Value string
}

// Line is an ordered set of terms that must all hold on a single pragma
// line for that line to satisfy the rule.
type Line struct {
	Terms []Term
}

// String renders the rule line for diagnostics, e.g.
// "title=field tag.f_name=DTYP".
func (l Line) String() string {
	parts := make([]string, len(l.Terms))
	for i, t := range l.Terms {
		parts[i] = strings.Join(t.Path, ".") + "=" + t.Value
	}

	return strings.Join(parts, " ")
}

// Matches reports whether a single pragma line satisfies every term.
func (l Line) Matches(line pragma.Line) bool {
	for _, term := range l.Terms {
		v, ok := line.Lookup(term.Path)
		if !ok || v != term.Value {
			return false
		}
	}

	return true
}

// Strategy is an auto-fill hook: given the pragma group of an incomplete
// package and the rule line it is missing, it may synthesize the missing
// line. The shipped tables carry empty strategy lists; the hook exists
// so future versions can populate them.
type Strategy func(group []pragma.Line, missing Line) (pragma.Line, bool)

// Table is the full rule set for one version.
type Table struct {
	// Lines are the required-field rules, in declaration order.
	Lines []Line
	// UsesStub reports whether packages of this version derive get/set
	// stub names.
	UsesStub bool
	// Guess holds the auto-fill strategies for each rule line, indexed
	// in parallel with Lines.
	Guess [][]Strategy
}

var tables = [versionTotal]Table{
	VersionLegacy: {
		Lines: []Line{
			titled(pragma.TitlePV),
			titled(pragma.TitleType),
			titled(pragma.TitleStr),
			titled(pragma.TitleIO),
			field("DTYP"),
			field("SCAN"),
			field("INP"),
		},
		UsesStub: true,
		Guess:    make([][]Strategy, 7),
	},
}

// TableFor returns the rule table registered for the version.
func TableFor(v Version) (Table, error) {
	if v < 0 || int(v) >= versionTotal {
		return Table{}, fmt.Errorf("%w: %d", ErrUnknownVersion, int(v))
	}

	return tables[v], nil
}

// titled builds a rule requiring a line with the given title.
func titled(title string) Line {
	return Line{Terms: []Term{{Path: []string{"title"}, Value: title}}}
}

// field builds a rule requiring a field line with the given field name.
func field(name string) Line {
	return Line{Terms: []Term{
		{Path: []string{"title"}, Value: pragma.TitleField},
		{Path: []string{"tag", "f_name"}, Value: name},
	}}
}
