package xmlrec

import (
	"github.com/beevik/etree"
)

const (
	TagDeclaration = "declaration"
	TagGeneral     = "general"
	TagDeclarant   = "declarant"
)

// matches is the strict comparison: the element must be in no namespace,
// neither through a prefix nor through a default xmlns.
func matches(el *etree.Element, tag string) bool {
	return el.Tag == tag && el.Space == "" && el.NamespaceURI() == ""
}

// matchesLocal ignores the prefix; etree keeps it apart in Space.
func matchesLocal(el *etree.Element, tag string) bool {
	return el.Tag == tag
}

func descendants(parent *etree.Element, tag string, match func(*etree.Element, string) bool) []*etree.Element {
	if parent == nil {
		return nil
	}
	var found []*etree.Element
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		for _, child := range el.ChildElements() {
			if match(child, tag) {
				found = append(found, child)
			}
			walk(child)
		}
	}
	walk(parent)
	return found
}

// Descendants returns every element below parent named tag, in document
// order. parent itself is never part of the result.
func Descendants(parent *etree.Element, tag string) []*etree.Element {
	return descendants(parent, tag, matches)
}

// IterLocal returns el itself followed by its descendants whose local name
// is tag, ignoring namespaces.
func IterLocal(el *etree.Element, tag string) []*etree.Element {
	if el == nil {
		return nil
	}
	var found []*etree.Element
	if matchesLocal(el, tag) {
		found = append(found, el)
	}
	return append(found, descendants(el, tag, matchesLocal)...)
}

// Children returns the direct children of parent named tag.
func Children(parent *etree.Element, tag string) []*etree.Element {
	if parent == nil {
		return nil
	}
	var found []*etree.Element
	for _, child := range parent.ChildElements() {
		if matches(child, tag) {
			found = append(found, child)
		}
	}
	return found
}

// LocalChildren is Children compared on local names.
func LocalChildren(parent *etree.Element, tag string) []*etree.Element {
	if parent == nil {
		return nil
	}
	var found []*etree.Element
	for _, child := range parent.ChildElements() {
		if matchesLocal(child, tag) {
			found = append(found, child)
		}
	}
	return found
}

// Child returns the first direct child of parent named tag, or nil.
func Child(parent *etree.Element, tag string) *etree.Element {
	if parent == nil {
		return nil
	}
	for _, child := range parent.ChildElements() {
		if matches(child, tag) {
			return child
		}
	}
	return nil
}

// LocalChild is Child compared on local names.
func LocalChild(parent *etree.Element, tag string) *etree.Element {
	if parent == nil {
		return nil
	}
	for _, child := range parent.ChildElements() {
		if matchesLocal(child, tag) {
			return child
		}
	}
	return nil
}

// ChildPath follows a chain of direct children ("./items/items") and
// returns every element reached by the last step.
func ChildPath(parent *etree.Element, tags ...string) []*etree.Element {
	if parent == nil {
		return nil
	}
	level := []*etree.Element{parent}
	for _, tag := range tags {
		var next []*etree.Element
		for _, el := range level {
			next = append(next, Children(el, tag)...)
		}
		level = next
	}
	return level
}

// FindAll is the ".//container/a/b" lookup: every container below parent,
// then the child path under each of them.
func FindAll(parent *etree.Element, container string, path ...string) []*etree.Element {
	var found []*etree.Element
	for _, el := range Descendants(parent, container) {
		found = append(found, ChildPath(el, path...)...)
	}
	return found
}

// FindUnique returns the only descendant of parent named tag. A missing
// element is not an error: (nil, nil) is returned, also when parent is nil.
// More than one match returns a *StructuralAmbiguityError.
func FindUnique(parent *etree.Element, tag string) (*etree.Element, error) {
	found := Descendants(parent, tag)
	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return found[0], nil
	default:
		return nil, &StructuralAmbiguityError{Tag: tag, Count: len(found)}
	}
}

// LocateDeclaration returns the declaration node of doc: the root itself
// when it is a <declaration>, otherwise its unique <declaration> descendant.
func LocateDeclaration(doc *Document) (*etree.Element, error) {
	if doc == nil || doc.Root == nil {
		return nil, nil
	}
	if matches(doc.Root, TagDeclaration) {
		return doc.Root, nil
	}
	return FindUnique(doc.Root, TagDeclaration)
}

// LocateDeclarant walks declaration -> general -> declarant, each step
// required to be unique within the previous one.
func LocateDeclarant(doc *Document) (declaration, declarant *etree.Element, err error) {
	declaration, err = LocateDeclaration(doc)
	if err != nil {
		return nil, nil, err
	}
	general, err := FindUnique(declaration, TagGeneral)
	if err != nil {
		return nil, nil, err
	}
	declarant, err = FindUnique(general, TagDeclarant)
	if err != nil {
		return nil, nil, err
	}
	return declaration, declarant, nil
}
