package pragma

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// Lines end at a semicolon, a newline, or the end of the block.
	lineDelim = regexp.MustCompile(`[;\r\n]+`)
	// A line is a title, a colon, then the remainder as the tag.
	linePattern = regexp.MustCompile(`^(\S+):\s*(.*)$`)
	// A field tag is a field name followed by its setting.
	fieldPattern = regexp.MustCompile(`^(\S+)\s*(.*)$`)
)

// Parse splits a raw pragma block into configuration lines. Field lines
// have their tag broken into name/setting parts.
func Parse(raw string) ([]Line, error) {
	var lines []Line

	for _, chunk := range lineDelim.Split(raw, -1) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}

		m := linePattern.FindStringSubmatch(chunk)
		if m == nil {
			return nil, fmt.Errorf("malformed pragma line %q", chunk)
		}

		title := m[1]
		tag := strings.TrimSpace(m[2])

		if title == TitleField {
			fm := fieldPattern.FindStringSubmatch(tag)
			if fm == nil {
				return nil, fmt.Errorf("malformed field tag %q", tag)
			}

			lines = append(lines, MakeField(fm[1], strings.TrimSpace(fm[2])))
			continue
		}

		lines = append(lines, MakeLine(title, tag))
	}

	return lines, nil
}

// GroupByPV splits formatted lines into configuration-intent groups, one
// per "pv" line. Lines appearing before the first "pv" line form a
// headless leading group; downstream package construction rejects such a
// group loudly instead of silently dropping the lines.
func GroupByPV(lines []Line) [][]Line {
	var groups [][]Line

	for _, line := range lines {
		if line.Title == TitlePV || len(groups) == 0 {
			groups = append(groups, nil)
		}

		idx := len(groups) - 1
		groups[idx] = append(groups[idx], line)
	}

	return groups
}

// ConfigNames lists the PV name declared by each configuration group.
func ConfigNames(lines []Line) []string {
	var names []string

	for _, group := range GroupByPV(lines) {
		for _, line := range group {
			if line.Title == TitlePV {
				names = append(names, line.Tag.Value)
			}
		}
	}

	return names
}

// SelectConfig returns the configuration group declaring the given PV
// name, or nil if no group declares it.
func SelectConfig(lines []Line, name string) []Line {
	for _, group := range GroupByPV(lines) {
		for _, line := range group {
			if line.Title == TitlePV && line.Tag.Value == name {
				return group
			}
		}
	}

	return nil
}

// LinesTitled returns all lines with the given title, in order.
func LinesTitled(lines []Line, title string) []Line {
	var out []Line

	for _, line := range lines {
		if line.Title == title {
			out = append(out, line)
		}
	}

	return out
}

// FieldsNamed returns all field lines whose field name matches, in order.
func FieldsNamed(lines []Line, name string) []Line {
	var out []Line

	for _, line := range LinesTitled(lines, TitleField) {
		if line.Tag.Field != nil && line.Tag.Field.Name == name {
			out = append(out, line)
		}
	}

	return out
}

// Seek returns every line whose value at the given key path equals
// target. Lines missing a key along the path simply do not match.
func Seek(lines []Line, path []string, target string) []Line {
	var out []Line

	for _, line := range lines {
		if v, ok := line.Lookup(path); ok && v == target {
			out = append(out, line)
		}
	}

	return out
}
