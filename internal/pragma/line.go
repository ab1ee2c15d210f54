package pragma

// Well-known line titles.
const (
	TitlePV    = "pv"
	TitleType  = "type"
	TitleStr   = "str"
	TitleIO    = "io"
	TitleField = "field"
)

// FieldTag is the structured tag of a "field" line. A line such as
// "field: DTYP stream" carries Name "DTYP" and Setting "stream".
type FieldTag struct {
	Name    string
	Setting string
}

// Tag is the value part of a configuration line. Field lines carry a
// structured tag; every other title carries a literal string value.
type Tag struct {
	// Value is the literal tag for non-field lines.
	Value string
	// Field is set instead of Value when the line's title is "field".
	Field *FieldTag
}

// Line is one parsed configuration line of a pragma block.
type Line struct {
	Title string
	Tag   Tag
}

// MakeLine builds a plain configuration line with a literal tag.
func MakeLine(title, value string) Line {
	return Line{Title: title, Tag: Tag{Value: value}}
}

// MakeField builds a "field" line with a structured tag.
func MakeField(name, setting string) Line {
	return Line{
		Title: TitleField,
		Tag:   Tag{Field: &FieldTag{Name: name, Setting: setting}},
	}
}

// Lookup walks a nested key path into the line and returns the string
// found there. The supported paths mirror the line's shape: "title",
// "tag" (literal lines only), "tag.f_name" and "tag.f_set" (field lines
// only). A path that does not exist on this line reports ok == false; a
// missing key is not an error, merely a non-match.
func (l Line) Lookup(path []string) (string, bool) {
	if len(path) == 0 {
		return "", false
	}

	switch path[0] {
	case "title":
		if len(path) != 1 {
			return "", false
		}

		return l.Title, true

	case "tag":
		if len(path) == 1 {
			if l.Tag.Field != nil {
				// Field tags are structured; there is no literal
				// value at "tag" to compare against.
				return "", false
			}

			return l.Tag.Value, true
		}

		if l.Tag.Field == nil || len(path) != 2 {
			return "", false
		}

		switch path[1] {
		case "f_name":
			return l.Tag.Field.Name, true
		case "f_set":
			return l.Tag.Field.Setting, true
		}
	}

	return "", false
}

// Clone returns an independent copy of the line.
func (l Line) Clone() Line {
	out := l
	if l.Tag.Field != nil {
		f := *l.Tag.Field
		out.Tag.Field = &f
	}

	return out
}

// Equal reports whether two lines carry the same title and tag.
func (l Line) Equal(other Line) bool {
	if l.Title != other.Title || l.Tag.Value != other.Tag.Value {
		return false
	}

	if (l.Tag.Field == nil) != (other.Tag.Field == nil) {
		return false
	}

	if l.Tag.Field != nil && *l.Tag.Field != *other.Tag.Field {
		return false
	}

	return true
}

// CloneLines deep-copies a slice of lines.
func CloneLines(lines []Line) []Line {
	if lines == nil {
		return nil
	}

	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = l.Clone()
	}

	return out
}

// LinesEqual reports whether two line slices are element-wise equal.
func LinesEqual(a, b []Line) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}

	return true
}
