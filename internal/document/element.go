package document

import (
	"regexp"
	"strconv"

	"pv-generator/internal/pragma"
)

var stringTypePattern = regexp.MustCompile(`^STRING\((\d+)\)$`)

// TreeElement is one node of the loaded tree: a Symbol, DataType, or
// SubItem. The assembler consumes this surface through its own interface
// of the same shape.
type TreeElement interface {
	// Name is the variable name declared in the tmc file.
	Name() string
	// PV is the element's path-contribution fragment, taken from the
	// first configuration group's pv line.
	PV() string
	// ConfigByPV produces one group of pragma lines per PV this element
	// declares.
	ConfigByPV() ([][]pragma.Line, error)
	// HasConfig reports whether the element carries a pragma block.
	HasConfig() bool
}

// base holds what every element kind shares: the name, the raw pragma
// text, and the lazily parsed configuration groups.
type base struct {
	name string
	raw  string

	parsed   bool
	groups   [][]pragma.Line
	parseErr error
}

func (b *base) Name() string { return b.name }

// RawConfig returns the unparsed pragma text, "" when none is attached.
func (b *base) RawConfig() string { return b.raw }

// HasConfig reports whether a pragma block is attached to this element.
func (b *base) HasConfig() bool { return b.raw != "" }

// ConfigByPV parses the pragma block once and returns its
// configuration-intent groups. Elements without a pragma yield no
// groups.
func (b *base) ConfigByPV() ([][]pragma.Line, error) {
	if !b.parsed {
		b.parsed = true
		if b.raw != "" {
			lines, err := pragma.Parse(b.raw)
			if err != nil {
				b.parseErr = err
			} else {
				b.groups = pragma.GroupByPV(lines)
			}
		}
	}

	return b.groups, b.parseErr
}

// PV returns the pv fragment of the element's first configuration
// group. Chains bind a per-path fragment instead; this is the
// element's own, unbound contribution.
func (b *base) PV() string {
	groups, err := b.ConfigByPV()
	if err != nil || len(groups) == 0 {
		return ""
	}

	for _, line := range groups[0] {
		if line.Title == pragma.TitlePV {
			return line.Tag.Value
		}
	}

	return ""
}

// Symbol is an instantiated top-level variable.
type Symbol struct {
	base

	baseType  string
	bitSize   int
	arrayInfo *xmlArrayInfo
}

// TCType returns the declared TwinCAT type name, normalized to "STRING"
// for sized string declarations.
func (s *Symbol) TCType() string {
	if s.IsString() {
		return "STRING"
	}

	return s.baseType
}

// IsArray reports whether the symbol declares array info.
func (s *Symbol) IsArray() bool { return s.arrayInfo != nil }

// IsString reports whether the symbol's base type is a sized string.
func (s *Symbol) IsString() bool {
	return stringTypePattern.MatchString(s.baseType)
}

// Length returns the element count for arrays, the declared size for
// strings, and 0 otherwise.
func (s *Symbol) Length() int {
	if s.arrayInfo != nil {
		return s.arrayInfo.Elements
	}

	if m := stringTypePattern.FindStringSubmatch(s.baseType); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}

	return 0
}

// DataType is the template for a struct, function block, enum, union,
// or alias.
type DataType struct {
	base

	extends  string
	isEnum   bool
	children []*SubItem
}

// Extends returns the name of the data type this one is built upon, or
// "" when it stands alone.
func (d *DataType) Extends() string { return d.extends }

// IsEnum reports whether the data type declares enum info.
func (d *DataType) IsEnum() bool { return d.isEnum }

// Children returns the sub-items declared inside this data type.
func (d *DataType) Children() []*SubItem { return d.children }

// SubItem is a variable instantiated within a DataType.
type SubItem struct {
	base

	tcType    string
	bitSize   int
	arrayInfo *xmlArrayInfo
	parent    *DataType
}

// TCType returns the declared type name of the sub-item, normalized to
// "STRING" for sized string declarations.
func (s *SubItem) TCType() string {
	if stringTypePattern.MatchString(s.tcType) {
		return "STRING"
	}

	return s.tcType
}

// IsArray reports whether the sub-item declares array info.
func (s *SubItem) IsArray() bool { return s.arrayInfo != nil }

// Parent returns the data type this sub-item belongs to.
func (s *SubItem) Parent() *DataType { return s.parent }
