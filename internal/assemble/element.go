package assemble

import "pv-generator/internal/pragma"

// Element is the assembler's view of one node in the source tree. The
// document loader provides implementations; the assembler never mutates
// an element, it only binds per-path PV fragments onto copies.
type Element interface {
	// Name is the element's stable identity within the tree.
	Name() string
	// PV is the element's own path-contribution fragment.
	PV() string
	// ConfigByPV produces the element's independent configuration-intent
	// groups, each an ordered sequence of pragma lines.
	ConfigByPV() ([][]pragma.Line, error)
}

// BoundElement is an element copy with its PV fragment frozen for one
// expanded path. Two paths that diverge at the same element hold
// distinct BoundElements, so binding never aliases between siblings.
type BoundElement struct {
	Element

	pv string
}

// Bind freezes the given PV fragment onto a copy of the element.
func Bind(el Element, pv string) BoundElement {
	return BoundElement{Element: el, pv: pv}
}

// PV returns the frozen per-path fragment rather than the element's own.
func (b BoundElement) PV() string {
	return b.pv
}
