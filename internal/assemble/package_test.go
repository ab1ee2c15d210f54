package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pv-generator/internal/pragma"
	"pv-generator/internal/rules"
)

// fakeElement is a minimal tree element for assembly tests.
type fakeElement struct {
	name   string
	pv     string
	groups [][]pragma.Line
	err    error
}

func (f *fakeElement) Name() string { return f.name }
func (f *fakeElement) PV() string   { return f.pv }

func (f *fakeElement) ConfigByPV() ([][]pragma.Line, error) {
	return f.groups, f.err
}

// completeGroup builds a legacy-complete configuration group.
func completeGroup(pv string) []pragma.Line {
	return []pragma.Line{
		pragma.MakeLine(pragma.TitlePV, pv),
		pragma.MakeLine(pragma.TitleType, "ai"),
		pragma.MakeLine(pragma.TitleStr, "%d"),
		pragma.MakeLine(pragma.TitleIO, "i"),
		pragma.MakeField("DTYP", "stream"),
		pragma.MakeField("SCAN", ".5 second"),
		pragma.MakeField("INP", "@test.proto GetValue"),
	}
}

func boundPath(fragments ...string) []BoundElement {
	path := make([]BoundElement, len(fragments))
	for i, pv := range fragments {
		path[i] = Bind(&fakeElement{name: "el" + pv, pv: pv}, pv)
	}

	return path
}

func TestNewPackage_Naming(t *testing.T) {
	pkg, err := NewPackage(
		boundPath("TEST", "MAIN", "count"),
		completeGroup("count"),
		"", "", false,
		rules.VersionLegacy,
		"",
	)
	require.NoError(t, err)

	assert.Equal(t, "count", pkg.PvPartial)
	assert.Equal(t, "TEST:MAIN:count", pkg.PvComplete)
	assert.False(t, pkg.GuessingApplied)
	assert.Empty(t, pkg.ProtoName)
	assert.Empty(t, pkg.ProtoFileName)
}

func TestNewPackage_CustomSeparator(t *testing.T) {
	pkg, err := NewPackage(
		boundPath("A", "B", "leaf"),
		completeGroup("leaf"),
		"", "", false,
		rules.VersionLegacy,
		".",
	)
	require.NoError(t, err)
	assert.Equal(t, "A.B.leaf", pkg.PvComplete)
}

func TestNewPackage_MissingPv(t *testing.T) {
	group := []pragma.Line{pragma.MakeLine(pragma.TitleType, "ai")}

	_, err := NewPackage(boundPath("X"), group, "", "", false, rules.VersionLegacy, "")
	require.ErrorIs(t, err, ErrMissingPvDeclaration)
	assert.Contains(t, err.Error(), "found 0")
}

func TestNewPackage_DuplicatePv(t *testing.T) {
	group := []pragma.Line{
		pragma.MakeLine(pragma.TitlePV, "A"),
		pragma.MakeLine(pragma.TitlePV, "B"),
	}

	_, err := NewPackage(boundPath("X"), group, "", "", false, rules.VersionLegacy, "")
	require.ErrorIs(t, err, ErrMissingPvDeclaration)
	assert.Contains(t, err.Error(), "found 2")
}

func TestNewPackage_UnknownVersion(t *testing.T) {
	_, err := NewPackage(
		boundPath("X"),
		completeGroup("X"),
		"", "", false,
		rules.Version(99),
		"",
	)
	require.ErrorIs(t, err, rules.ErrUnknownVersion)
}

func TestNewPackage_PragmaIsIndependentCopy(t *testing.T) {
	group := completeGroup("count")

	pkg, err := NewPackage(boundPath("count"), group, "", "", false, rules.VersionLegacy, "")
	require.NoError(t, err)

	pkg.Pragma[4].Tag.Field.Setting = "mutated"
	assert.Equal(t, "stream", group[4].Tag.Field.Setting)
}

func TestTermExists(t *testing.T) {
	pkg, err := NewPackage(boundPath("count"), completeGroup("count"), "", "", false, rules.VersionLegacy, "")
	require.NoError(t, err)

	table, err := rules.TableFor(rules.VersionLegacy)
	require.NoError(t, err)

	for _, rule := range table.Lines {
		assert.True(t, pkg.TermExists(rule), "rule %s should match", rule)
	}
}

func TestMissingRuleLines_OrderAndCompleteness(t *testing.T) {
	group := []pragma.Line{
		pragma.MakeLine(pragma.TitlePV, "count"),
		pragma.MakeLine(pragma.TitleType, "ai"),
		pragma.MakeLine(pragma.TitleIO, "i"),
	}

	pkg, err := NewPackage(boundPath("count"), group, "", "", false, rules.VersionLegacy, "")
	require.NoError(t, err)

	missing := pkg.MissingRuleLines()
	require.Len(t, missing, 4)
	assert.Equal(t, "title=str", missing[0].String())
	assert.Equal(t, "title=field tag.f_name=DTYP", missing[1].String())
	assert.Equal(t, "title=field tag.f_name=SCAN", missing[2].String())
	assert.Equal(t, "title=field tag.f_name=INP", missing[3].String())
	assert.False(t, pkg.IsComplete())
}

func TestIsComplete_FlipsWhenRecordRemoved(t *testing.T) {
	pkg, err := NewPackage(boundPath("count"), completeGroup("count"), "", "", false, rules.VersionLegacy, "")
	require.NoError(t, err)
	require.True(t, pkg.IsComplete())

	// Drop the SCAN field line.
	var trimmed []pragma.Line
	for _, line := range pkg.Pragma {
		if line.Tag.Field != nil && line.Tag.Field.Name == "SCAN" {
			continue
		}
		trimmed = append(trimmed, line)
	}
	pkg.Pragma = trimmed

	assert.False(t, pkg.IsComplete())
	require.Len(t, pkg.MissingRuleLines(), 1)
	assert.Equal(t, "title=field tag.f_name=SCAN", pkg.MissingRuleLines()[0].String())
}

func TestPackageEqual(t *testing.T) {
	build := func() *Package {
		pkg, err := NewPackage(
			boundPath("MAIN", "count"),
			completeGroup("count"),
			"GetCount", "test.proto", true,
			rules.VersionLegacy,
			"",
		)
		require.NoError(t, err)

		return pkg
	}

	a := build()
	b := build()
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))

	b.Pragma[0].Tag.Value = "other"
	assert.False(t, a.Equal(b))

	c := build()
	c.GuessingApplied = true
	assert.False(t, a.Equal(c))
}

func TestApplyGuessing_ScaffoldOnly(t *testing.T) {
	group := []pragma.Line{pragma.MakeLine(pragma.TitlePV, "count")}

	pkg, err := NewPackage(boundPath("count"), group, "", "", false, rules.VersionLegacy, "")
	require.NoError(t, err)

	before := len(pkg.Pragma)
	pkg.ApplyGuessing()

	assert.True(t, pkg.GuessingApplied)
	assert.Len(t, pkg.Pragma, before)
	assert.False(t, pkg.IsComplete())
}
