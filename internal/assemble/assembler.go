package assemble

import (
	"errors"
	"fmt"
	"strings"

	"pv-generator/internal/diagnostic"
	"pv-generator/internal/pragma"
	"pv-generator/internal/rules"
)

// ErrEmptyChain is returned when assembly is invoked with no elements.
// The caller owns chain construction, so this signals a programming
// error there, not bad input data.
var ErrEmptyChain = errors.New("element chain is empty")

// Options configures one assembly run.
type Options struct {
	// BaseProtoName is the stub name stem; "Get"/"Set" is prefixed
	// according to the leaf group's io direction.
	BaseProtoName string
	// ProtoFileName names the file the stubs will live in.
	ProtoFileName string
	// UseStub requests stub naming explicitly. Supplying either name
	// above implies it.
	UseStub bool
	// Version selects the rule table applied to every package.
	Version rules.Version
	// Separator joins PV fragments; defaults to ":".
	Separator string
}

// Reject pairs an incomplete package with the rule lines it is missing.
type Reject struct {
	Package *Package
	Missing []rules.Line
}

// Result is the outcome of assembling one element chain.
type Result struct {
	// Accepted holds the complete packages, ready for emission.
	Accepted []*Package
	// Rejected holds incomplete packages with their missing rule lines.
	Rejected []Reject
	// Diags carries per-path structural errors and incompleteness
	// warnings for caller-side reporting.
	Diags diagnostic.Diagnostics
}

// chainLink is one resolved step of an in-progress chain: a bound
// element copy plus the intent group chosen for it.
type chainLink struct {
	elem  BoundElement
	group []pragma.Line
}

// Assemble expands an ordered root-to-leaf element chain into every
// reachable configuration package and partitions the results. A path
// whose group lacks a single pv declaration is dropped with an error
// diagnostic; the remaining paths are unaffected.
func Assemble(chain []Element, opts Options) (*Result, error) {
	if len(chain) == 0 {
		return nil, ErrEmptyChain
	}

	if _, err := rules.TableFor(opts.Version); err != nil {
		return nil, err
	}

	useStub := opts.UseStub || opts.BaseProtoName != "" || opts.ProtoFileName != ""

	result := &Result{}

	paths, err := expandChain(chain, result)
	if err != nil {
		return nil, err
	}

	for _, path := range paths {
		pkg, err := buildPackage(path, useStub, opts)
		if err != nil {
			leaf := path[len(path)-1]
			result.Diags.AddError(
				diagnostic.CodeMissingPV,
				err.Error(),
				leaf.elem.Name(),
				pathNames(path),
			)

			continue
		}

		if missing := pkg.MissingRuleLines(); len(missing) > 0 {
			result.Rejected = append(result.Rejected, Reject{Package: pkg, Missing: missing})
			result.Diags.AddIncomplete(pkg.Leaf().Name(), pkg.PvComplete, ruleStrings(missing))

			continue
		}

		result.Accepted = append(result.Accepted, pkg)
	}

	return result, nil
}

// expandChain walks the chain root to leaf, growing the collection of
// in-progress chains. For each element, the first intent group extends
// every existing chain in place and each additional group branches a
// structural copy, yielding the Cartesian product of all fan-outs.
func expandChain(chain []Element, result *Result) ([][]chainLink, error) {
	var chains [][]chainLink

	for _, elem := range chain {
		groups, err := elem.ConfigByPV()
		if err != nil {
			return nil, fmt.Errorf("element %s: %w", elem.Name(), err)
		}

		if len(groups) == 0 {
			result.Diags.AddWarning(
				diagnostic.CodeNoIntents,
				"element declares no configuration intents; chain produces no packages",
				elem.Name(),
				"",
			)

			return nil, nil
		}

		links := make([]chainLink, 0, len(groups))
		for _, group := range groups {
			pv, count := groupPV(group)
			if count != 1 {
				result.Diags.AddError(
					diagnostic.CodeMissingPV,
					fmt.Sprintf("configuration group declares %d pv records, expected exactly 1", count),
					elem.Name(),
					"",
				)

				continue
			}

			links = append(links, chainLink{elem: Bind(elem, pv), group: group})
		}

		// Every group for this element was unusable, so no path
		// survives; the errors above already name the element.
		if len(links) == 0 {
			return nil, nil
		}

		if len(chains) == 0 {
			for _, link := range links {
				chains = append(chains, []chainLink{link})
			}

			continue
		}

		n := len(chains)
		for i := 0; i < n; i++ {
			// Snapshot before extension so branches do not share the
			// choice made for this element.
			base := cloneChain(chains[i])

			chains[i] = append(chains[i], links[0])
			for _, link := range links[1:] {
				branch := append(cloneChain(base), link)
				chains = append(chains, branch)
			}
		}
	}

	return chains, nil
}

// buildPackage constructs the package for one expanded path, deriving
// stub naming from the leaf group's io direction.
func buildPackage(path []chainLink, useStub bool, opts Options) (*Package, error) {
	leaf := path[len(path)-1]

	protoName := ""
	if useStub {
		protoName = stubName(opts.BaseProtoName, leaf.group)
	}

	bound := make([]BoundElement, len(path))
	for i, link := range path {
		bound[i] = link.elem
	}

	return NewPackage(
		bound,
		leaf.group,
		protoName,
		opts.ProtoFileName,
		useStub,
		opts.Version,
		opts.Separator,
	)
}

// stubName derives the stub method name from the group's io line: an
// output direction gets "Set", an input direction "Get", and a group
// without an io line keeps the base name unchanged.
func stubName(base string, group []pragma.Line) string {
	ioLines := pragma.LinesTitled(group, pragma.TitleIO)
	if len(ioLines) == 0 {
		return base
	}

	io := ioLines[0].Tag.Value
	switch {
	case strings.Contains(io, "o"):
		return "Set" + base
	case strings.Contains(io, "i"):
		return "Get" + base
	}

	return base
}

// groupPV returns the pv fragment declared by a group together with
// the number of pv records the group carries. Expansion rejects any
// group whose count is not exactly one, on every chain position, so a
// malformed ancestor can never leak an empty prefix into a PV name.
func groupPV(group []pragma.Line) (string, int) {
	pv := ""
	count := 0

	for _, line := range group {
		if line.Title == pragma.TitlePV {
			if count == 0 {
				pv = line.Tag.Value
			}
			count++
		}
	}

	return pv, count
}

func cloneChain(chain []chainLink) []chainLink {
	out := make([]chainLink, len(chain))
	copy(out, chain)

	return out
}

func pathNames(path []chainLink) string {
	names := make([]string, len(path))
	for i, link := range path {
		names[i] = link.elem.Name()
	}

	return strings.Join(names, "/")
}

func ruleStrings(lines []rules.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}

	return out
}
