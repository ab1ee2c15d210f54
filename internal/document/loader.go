package document

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"
)

const (
	// DefaultPragmaKey is the property name marking pragma blocks
	// intended for the generator.
	DefaultPragmaKey = "pytmc"
	// DefaultDataArea is the data area holding the PLC task's symbols.
	DefaultDataArea = "PlcTask Internal"
)

// LoadOptions configures tmc loading.
type LoadOptions struct {
	// PragmaKey overrides the property name that marks pragma blocks.
	PragmaKey string
	// DataArea overrides the data area symbols are read from.
	DataArea string
	// Logger receives load-time progress; nil uses slog's default.
	Logger *slog.Logger
}

func (o LoadOptions) withDefaults() LoadOptions {
	if o.PragmaKey == "" {
		o.PragmaKey = DefaultPragmaKey
	}

	if o.DataArea == "" {
		o.DataArea = DefaultDataArea
	}

	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	return o
}

// Document is the loaded view of one tmc file: every symbol, data type,
// and per-type sub-item collection.
type Document struct {
	Path      string
	Symbols   *Collector[*Symbol]
	DataTypes *Collector[*DataType]
	// SubItems maps a data type name to the sub-items declared in it.
	SubItems map[string]*Collector[*SubItem]
}

// Load reads and parses a tmc file from disk.
func Load(path string, opts LoadOptions) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tmc file %s: %w", path, err)
	}

	doc, err := Parse(data, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tmc file %s: %w", path, err)
	}

	doc.Path = path

	return doc, nil
}

// Parse decodes tmc XML and isolates its symbols, data types, and
// sub-items into ordered collections.
func Parse(data []byte, opts LoadOptions) (*Document, error) {
	opts = opts.withDefaults()

	var raw xmlDocument
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode tmc XML: %w", err)
	}

	doc := &Document{
		Symbols:   NewCollector[*Symbol](),
		DataTypes: NewCollector[*DataType](),
		SubItems:  make(map[string]*Collector[*SubItem]),
	}

	for _, area := range raw.DataAreas {
		if area.Name != opts.DataArea {
			continue
		}

		for _, xs := range area.Symbols {
			doc.Symbols.Add(&Symbol{
				base: base{
					name: xs.Name,
					raw:  property(xs.Properties, opts.PragmaKey),
				},
				baseType:  xs.BaseType,
				bitSize:   xs.BitSize,
				arrayInfo: xs.ArrayInfo,
			})
		}
	}

	for _, xd := range raw.DataTypes {
		dt := &DataType{
			base: base{
				name: xd.Name,
				raw:  property(xd.Properties, opts.PragmaKey),
			},
			extends: xd.ExtendsType,
			isEnum:  len(xd.EnumInfo) > 0,
		}
		doc.DataTypes.Add(dt)

		items := NewCollector[*SubItem]()
		for _, xi := range xd.SubItems {
			item := &SubItem{
				base: base{
					name: xi.Name,
					raw:  property(xi.Properties, opts.PragmaKey),
				},
				tcType:    xi.Type,
				bitSize:   xi.BitSize,
				arrayInfo: xi.ArrayInfo,
				parent:    dt,
			}
			dt.children = append(dt.children, item)
			items.Add(item)
		}

		doc.SubItems[xd.Name] = items
	}

	opts.Logger.Debug("tmc document parsed",
		"symbols", doc.Symbols.Len(),
		"data_types", doc.DataTypes.Len(),
	)

	return doc, nil
}

// Chains produces one root-to-leaf element chain per pragma-annotated
// variable: a registered symbol of a structured type fans out through
// its data type's registered sub-items, recursively; every other
// registered symbol is a chain of one.
func (d *Document) Chains() [][]TreeElement {
	var chains [][]TreeElement

	for _, sym := range d.Symbols.Registered() {
		chains = append(chains, d.expand([]TreeElement{sym}, sym.baseType)...)
	}

	return chains
}

func (d *Document) expand(prefix []TreeElement, typeName string) [][]TreeElement {
	items, ok := d.SubItems[typeName]
	if ok {
		registered := items.Registered()
		if len(registered) > 0 {
			var chains [][]TreeElement
			for _, item := range registered {
				next := make([]TreeElement, len(prefix), len(prefix)+1)
				copy(next, prefix)
				chains = append(chains, d.expand(append(next, item), item.tcType)...)
			}

			return chains
		}
	}

	return [][]TreeElement{prefix}
}
