package document

// Raw XML shapes of the tmc format. Only the parts the generator reads
// are declared; everything else is skipped by the decoder.

type xmlDocument struct {
	DataTypes []xmlDataType `xml:"DataTypes>DataType"`
	DataAreas []xmlDataArea `xml:"Modules>Module>DataAreas>DataArea"`
}

type xmlDataArea struct {
	Name    string      `xml:"Name"`
	Symbols []xmlSymbol `xml:"Symbol"`
}

type xmlSymbol struct {
	Name       string        `xml:"Name"`
	BaseType   string        `xml:"BaseType"`
	BitSize    int           `xml:"BitSize"`
	ArrayInfo  *xmlArrayInfo `xml:"ArrayInfo"`
	Properties []xmlProperty `xml:"Properties>Property"`
}

type xmlDataType struct {
	Name        string        `xml:"Name"`
	ExtendsType string        `xml:"ExtendsType"`
	EnumInfo    []xmlEnumInfo `xml:"EnumInfo"`
	SubItems    []xmlSubItem  `xml:"SubItem"`
	Properties  []xmlProperty `xml:"Properties>Property"`
}

type xmlSubItem struct {
	Name       string        `xml:"Name"`
	Type       string        `xml:"Type"`
	BitSize    int           `xml:"BitSize"`
	ArrayInfo  *xmlArrayInfo `xml:"ArrayInfo"`
	Properties []xmlProperty `xml:"Properties>Property"`
}

type xmlArrayInfo struct {
	LBound   int `xml:"LBound"`
	Elements int `xml:"Elements"`
}

type xmlEnumInfo struct {
	Text string `xml:"Text"`
	Enum int    `xml:"Enum"`
}

type xmlProperty struct {
	Name  string `xml:"Name"`
	Value string `xml:"Value"`
}

// property returns the value of the named property, or "" when absent.
func property(props []xmlProperty, name string) string {
	for _, p := range props {
		if p.Name == name {
			return p.Value
		}
	}

	return ""
}
