package pragma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SingleConfig(t *testing.T) {
	lines, err := Parse("pv: TEST:MAIN:ULIMIT; type: ao; io: o; field: DTYP stream")
	require.NoError(t, err)
	require.Len(t, lines, 4)

	assert.Equal(t, MakeLine(TitlePV, "TEST:MAIN:ULIMIT"), lines[0])
	assert.Equal(t, MakeLine(TitleType, "ao"), lines[1])
	assert.Equal(t, MakeLine(TitleIO, "o"), lines[2])

	require.NotNil(t, lines[3].Tag.Field)
	assert.Equal(t, "DTYP", lines[3].Tag.Field.Name)
	assert.Equal(t, "stream", lines[3].Tag.Field.Setting)
}

func TestParse_NewlineDelimitersAndBlankLines(t *testing.T) {
	raw := "pv: COUNT\n\ntype: ai;;\r\nfield: SCAN .5 second\n"

	lines, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, lines, 3)

	assert.Equal(t, "COUNT", lines[0].Tag.Value)
	assert.Equal(t, "ai", lines[1].Tag.Value)
	assert.Equal(t, ".5 second", lines[2].Tag.Field.Setting)
}

func TestParse_NoSpaceAfterColon(t *testing.T) {
	lines, err := Parse("pv:COUNT")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, TitlePV, lines[0].Title)
	assert.Equal(t, "COUNT", lines[0].Tag.Value)
}

func TestParse_MalformedLine(t *testing.T) {
	_, err := Parse("pv: COUNT; nonsense without a title")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed pragma line")
}

func TestGroupByPV_FanOut(t *testing.T) {
	lines, err := Parse("pv: FIRST; type: ai; pv: SECOND; type: ao; field: DTYP stream")
	require.NoError(t, err)

	groups := GroupByPV(lines)
	require.Len(t, groups, 2)
	assert.Len(t, groups[0], 2)
	assert.Len(t, groups[1], 3)
	assert.Equal(t, "FIRST", groups[0][0].Tag.Value)
	assert.Equal(t, "SECOND", groups[1][0].Tag.Value)
}

func TestGroupByPV_HeadlessLeadingGroup(t *testing.T) {
	lines, err := Parse("type: ai; pv: ONLY")
	require.NoError(t, err)

	groups := GroupByPV(lines)
	require.Len(t, groups, 2)

	// The leading type line has no pv and must survive as its own
	// group so package construction can reject it loudly.
	assert.Equal(t, TitleType, groups[0][0].Title)
	assert.Equal(t, TitlePV, groups[1][0].Title)
}

func TestConfigNamesAndSelect(t *testing.T) {
	lines, err := Parse("pv: A; type: ai; pv: B; type: ao")
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, ConfigNames(lines))

	sel := SelectConfig(lines, "B")
	require.Len(t, sel, 2)
	assert.Equal(t, "ao", sel[1].Tag.Value)

	assert.Nil(t, SelectConfig(lines, "C"))
}

func TestLookup(t *testing.T) {
	field := MakeField("DTYP", "stream")
	plain := MakeLine(TitleIO, "i")

	tests := []struct {
		name  string
		line  Line
		path  []string
		want  string
		found bool
	}{
		{"title on plain line", plain, []string{"title"}, "io", true},
		{"tag on plain line", plain, []string{"tag"}, "i", true},
		{"tag on field line is structured", field, []string{"tag"}, "", false},
		{"field name", field, []string{"tag", "f_name"}, "DTYP", true},
		{"field setting", field, []string{"tag", "f_set"}, "stream", true},
		{"nested key on plain line", plain, []string{"tag", "f_name"}, "", false},
		{"unknown key", plain, []string{"bogus"}, "", false},
		{"empty path", plain, nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.line.Lookup(tt.path)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeek(t *testing.T) {
	lines := []Line{
		MakeLine(TitlePV, "X"),
		MakeField("DTYP", "stream"),
		MakeField("SCAN", ".5 second"),
	}

	hits := Seek(lines, []string{"tag", "f_name"}, "SCAN")
	require.Len(t, hits, 1)
	assert.Equal(t, ".5 second", hits[0].Tag.Field.Setting)

	assert.Empty(t, Seek(lines, []string{"tag", "f_name"}, "INP"))
}

func TestLinesTitledAndFieldsNamed(t *testing.T) {
	lines := []Line{
		MakeLine(TitlePV, "X"),
		MakeField("DTYP", "stream"),
		MakeField("DTYP", "asynInt32"),
		MakeField("SCAN", ".5 second"),
	}

	assert.Len(t, LinesTitled(lines, TitleField), 3)
	assert.Len(t, FieldsNamed(lines, "DTYP"), 2)
	assert.Empty(t, FieldsNamed(lines, "INP"))
}

func TestCloneLines_Independent(t *testing.T) {
	original := []Line{MakeField("DTYP", "stream")}

	copied := CloneLines(original)
	copied[0].Tag.Field.Setting = "changed"

	assert.Equal(t, "stream", original[0].Tag.Field.Setting)
	assert.False(t, LinesEqual(original, copied))
	assert.True(t, LinesEqual(original, CloneLines(original)))
}
