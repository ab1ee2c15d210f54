package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"pv-generator/internal/assemble"
	"pv-generator/internal/pragma"
)

var recordTemplate = template.Must(template.New("record").Parse(
	`record({{.Type}}, "{{.PV}}") {
{{- range .Fields}}
    field({{.Name}}, {{.Setting}})
{{- end}}
}
`))

var protoTemplate = template.Must(template.New("proto").Parse(
	`{{.Name}} {
    out "{{.Out}}";
    in "{{.In}}";
}
`))

// GeneratedFile is one rendered output artifact.
type GeneratedFile struct {
	Filename string
	Content  []byte
}

type recordData struct {
	Type   string
	PV     string
	Fields []fieldData
}

type fieldData struct {
	Name    string
	Setting string
}

type protoData struct {
	Name string
	Out  string
	In   string
}

// Records renders one EPICS record block per package, in order.
func Records(packages []*assemble.Package) ([]byte, error) {
	var buf bytes.Buffer

	for i, pkg := range packages {
		data, err := recordFor(pkg)
		if err != nil {
			return nil, err
		}

		if i > 0 {
			buf.WriteByte('\n')
		}

		if err := recordTemplate.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("rendering record %s: %w", pkg.PvComplete, err)
		}
	}

	return buf.Bytes(), nil
}

func recordFor(pkg *assemble.Package) (recordData, error) {
	typeLines := pragma.LinesTitled(pkg.Pragma, pragma.TitleType)
	if len(typeLines) == 0 {
		return recordData{}, fmt.Errorf("package %s has no type line", pkg.PvComplete)
	}

	data := recordData{
		Type: typeLines[0].Tag.Value,
		PV:   pkg.PvComplete,
	}

	for _, line := range pragma.LinesTitled(pkg.Pragma, pragma.TitleField) {
		data.Fields = append(data.Fields, fieldData{
			Name:    line.Tag.Field.Name,
			Setting: quote(line.Tag.Field.Setting),
		})
	}

	return data, nil
}

// Protos renders the get/set stream stubs for every package that carries
// a stub name. The target variable is the dotted path of element names;
// the "str" line supplies the value format.
func Protos(packages []*assemble.Package) ([]byte, error) {
	var buf bytes.Buffer

	for _, pkg := range packages {
		if !pkg.UseStub || pkg.ProtoName == "" {
			continue
		}

		data := protoFor(pkg)

		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}

		if err := protoTemplate.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("rendering proto %s: %w", pkg.ProtoName, err)
		}
	}

	return buf.Bytes(), nil
}

func protoFor(pkg *assemble.Package) protoData {
	names := make([]string, len(pkg.TargetPath))
	for i, el := range pkg.TargetPath {
		names[i] = el.Name()
	}

	target := strings.Join(names, ".")

	format := "%d"
	if strLines := pragma.LinesTitled(pkg.Pragma, pragma.TitleStr); len(strLines) > 0 {
		format = strLines[0].Tag.Value
	}

	if strings.HasPrefix(pkg.ProtoName, "Set") {
		return protoData{
			Name: pkg.ProtoName,
			Out:  target + "=" + format,
			In:   "OK",
		}
	}

	return protoData{
		Name: pkg.ProtoName,
		Out:  target + "?",
		In:   format,
	}
}

// quote wraps a field setting in double quotes unless it already is.
func quote(s string) string {
	if strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) && len(s) >= 2 {
		return s
	}

	return `"` + s + `"`
}
