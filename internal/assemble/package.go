package assemble

import (
	"errors"
	"fmt"

	"pv-generator/internal/pragma"
	"pv-generator/internal/rules"
)

// DefaultSeparator joins PV fragments along a path.
const DefaultSeparator = ":"

// ErrMissingPvDeclaration is returned when a configuration-intent group
// declares zero or more than one "pv" line. The source tree's pragma
// grammar requires exactly one per group; anything else would produce a
// wrong PV name, so it is rejected instead of repaired.
var ErrMissingPvDeclaration = errors.New("configuration group must declare exactly one pv line")

// Package is one fully resolved candidate output: a single expanded path
// through the element tree together with the leaf's chosen configuration
// group and the naming derived from both.
type Package struct {
	// TargetPath is the ordered root-to-leaf sequence of bound element
	// copies this package resolves.
	TargetPath []BoundElement
	// Pragma is an independent deep copy of the chosen intent group.
	// Mutating it never affects the element that produced it.
	Pragma []pragma.Line
	// PvPartial is the "pv" value declared in this package's own group.
	PvPartial string
	// PvComplete is every ancestor's PV fragment, each followed by the
	// separator, then PvPartial.
	PvComplete string
	// ProtoName and ProtoFileName name the optional get/set stub. Both
	// are empty when stub usage is not requested.
	ProtoName     string
	ProtoFileName string
	// UseStub records whether stub naming applies to this package.
	UseStub bool
	// Version selects the rule table and guess strategies that apply.
	Version rules.Version
	// GuessingApplied is false until an auto-fill pass has run.
	GuessingApplied bool
}

// NewPackage builds and validates a package for one expanded path. The
// final element of targetPath owns the group; ancestors contribute only
// their PV fragments. Fails with ErrMissingPvDeclaration when the group
// does not declare exactly one pv line and with rules.ErrUnknownVersion
// when the version is not registered.
func NewPackage(
	targetPath []BoundElement,
	group []pragma.Line,
	protoName, protoFileName string,
	useStub bool,
	version rules.Version,
	separator string,
) (*Package, error) {
	if _, err := rules.TableFor(version); err != nil {
		return nil, err
	}

	if separator == "" {
		separator = DefaultSeparator
	}

	pvLines := pragma.LinesTitled(group, pragma.TitlePV)
	if len(pvLines) != 1 {
		return nil, fmt.Errorf("%w: found %d", ErrMissingPvDeclaration, len(pvLines))
	}

	partial := pvLines[0].Tag.Value

	prefix := ""
	for _, ancestor := range targetPath[:max(len(targetPath)-1, 0)] {
		prefix += ancestor.PV() + separator
	}

	if !useStub {
		protoName = ""
		protoFileName = ""
	}

	return &Package{
		TargetPath:    targetPath,
		Pragma:        pragma.CloneLines(group),
		PvPartial:     partial,
		PvComplete:    prefix + partial,
		ProtoName:     protoName,
		ProtoFileName: protoFileName,
		UseStub:       useStub,
		Version:       version,
	}, nil
}

// TermExists reports whether at least one line of the package's pragma
// group satisfies every term of the rule line.
func (p *Package) TermExists(rule rules.Line) bool {
	for _, line := range p.Pragma {
		if rule.Matches(line) {
			return true
		}
	}

	return false
}

// MissingRuleLines returns the rule lines of the active version's table
// that no pragma line satisfies, in table declaration order.
func (p *Package) MissingRuleLines() []rules.Line {
	table, err := rules.TableFor(p.Version)
	if err != nil {
		// The version was validated at construction; an unregistered
		// version here means the package was built by hand.
		panic(err)
	}

	var missing []rules.Line
	for _, rule := range table.Lines {
		if !p.TermExists(rule) {
			missing = append(missing, rule)
		}
	}

	return missing
}

// IsComplete reports whether every rule line of the active version's
// table is satisfied.
func (p *Package) IsComplete() bool {
	return len(p.MissingRuleLines()) == 0
}

// ApplyGuessing runs the version's auto-fill strategies over the rule
// lines the package is still missing, appending any synthesized lines to
// the pragma group. The shipped strategy lists are empty, so this only
// marks the pass as applied; the hook is the extension point for future
// versions.
func (p *Package) ApplyGuessing() {
	table, err := rules.TableFor(p.Version)
	if err != nil {
		panic(err)
	}

	for i, rule := range table.Lines {
		if p.TermExists(rule) {
			continue
		}

		for _, strategy := range table.Guess[i] {
			if line, ok := strategy(p.Pragma, rule); ok {
				p.Pragma = append(p.Pragma, line)
				break
			}
		}
	}

	p.GuessingApplied = true
}

// Equal reports whether two packages were built from identical inputs.
// The version-scoped rule and guess tables are derived lookups, not part
// of package identity, and elements compare by name and bound PV.
func (p *Package) Equal(other *Package) bool {
	if p == nil || other == nil {
		return p == other
	}

	if len(p.TargetPath) != len(other.TargetPath) {
		return false
	}

	for i := range p.TargetPath {
		if p.TargetPath[i].Name() != other.TargetPath[i].Name() ||
			p.TargetPath[i].PV() != other.TargetPath[i].PV() {
			return false
		}
	}

	return pragma.LinesEqual(p.Pragma, other.Pragma) &&
		p.PvPartial == other.PvPartial &&
		p.PvComplete == other.PvComplete &&
		p.ProtoName == other.ProtoName &&
		p.ProtoFileName == other.ProtoFileName &&
		p.UseStub == other.UseStub &&
		p.Version == other.Version &&
		p.GuessingApplied == other.GuessingApplied
}

// Leaf returns the element that owns this package's group.
func (p *Package) Leaf() BoundElement {
	return p.TargetPath[len(p.TargetPath)-1]
}
