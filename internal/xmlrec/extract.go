package xmlrec

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/hatvp-dataviz/internal/normalize"
)

// Lookup reads the value of a leaf tag under an element.
type Lookup func(parent *etree.Element, tag string) string

// Text returns the trimmed text of the first child of parent named tag.
// Absent parent, absent child and blank text all give "".
func Text(parent *etree.Element, tag string) string {
	child := Child(parent, tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

// LocalText is Text with a namespace-agnostic child lookup. No-break spaces
// and newlines become plain spaces before trimming.
func LocalText(parent *etree.Element, tag string) string {
	child := LocalChild(parent, tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(normalize.CleanSpecialSpaces(child.Text()))
}
