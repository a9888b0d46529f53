// Package xmlrec locates declaration records inside HATVP XML files and
// extracts their leaf values.
package xmlrec

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// Document is one parsed declaration file.
type Document struct {
	Name string // base file name, e.g. "0a1b...-2.xml"
	Raw  []byte
	Root *etree.Element
}

// ParseError reports a file that is not well-formed XML.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid XML in %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	errNoRoot        = errors.New("no root element")
	errMultipleRoots = errors.New("more than one root element")
	errTrailingText  = errors.New("text outside the root element")
)

// Parse builds a Document from the raw contents of the file called name.
func Parse(name string, data []byte) (*Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel

	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &ParseError{File: name, Err: err}
	}
	if err := checkTopLevel(doc); err != nil {
		return nil, &ParseError{File: name, Err: err}
	}

	return &Document{Name: name, Raw: data, Root: doc.Root()}, nil
}

// checkTopLevel rejects documents etree reads leniently: a well-formed file
// has exactly one root element, and anything beside it is a processing
// instruction, a comment, a directive or whitespace.
func checkTopLevel(doc *etree.Document) error {
	roots := 0
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.Element:
			roots++
		case *etree.CharData:
			if !t.IsWhitespace() {
				return errTrailingText
			}
		}
	}

	switch {
	case roots == 0:
		return errNoRoot
	case roots > 1:
		return errMultipleRoots
	}
	return nil
}

// ReadFile reads and parses the declaration at path.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(filepath.Base(path), data)
}
