// Package declaration turns parsed declaration files into rows. Every
// dataset is described by a Schema: where its repeated items live and how
// each column is read from an item. One engine runs all of them.
package declaration

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/samber/lo"

	"github.com/hatvp-dataviz/internal/table"
	"github.com/hatvp-dataviz/internal/xmlrec"
)

// Scope selects the element a Field reads its tags from.
type Scope int

const (
	ScopeItem Scope = iota
	ScopeDeclaration
)

// ItemContext is what a Field sees when it is evaluated.
type ItemContext struct {
	Doc         *xmlrec.Document
	Source      string
	Declaration *etree.Element
	Item        *etree.Element
}

// Field describes one output column.
type Field struct {
	Column string
	Scope  Scope

	// Tags is a fallback chain: the first tag whose cleaned value is not
	// empty wins.
	Tags []string

	// Lookup defaults to xmlrec.Text.
	Lookup xmlrec.Lookup

	// Clean is applied to each candidate before the emptiness test.
	Clean func(string) string

	// Value replaces the tag lookup entirely when set.
	Value func(ItemContext) string
}

// Extract evaluates the field for one item.
func (f Field) Extract(ctx ItemContext) string {
	if f.Value != nil {
		return f.Value(ctx)
	}

	el := ctx.Item
	if f.Scope == ScopeDeclaration {
		el = ctx.Declaration
	}
	lookup := f.Lookup
	if lookup == nil {
		lookup = xmlrec.Text
	}

	for _, tag := range f.Tags {
		v := lookup(el, tag)
		if f.Clean != nil {
			v = f.Clean(v)
		}
		if v != "" {
			return v
		}
	}
	return ""
}

// Items is the output of a Source lookup.
type Items struct {
	Declaration *etree.Element
	Elements    []*etree.Element
}

// Source locates one family of repeated items inside a document.
type Source struct {
	Label  string
	Find   func(doc *xmlrec.Document) (Items, error)
	Fields []Field
}

// Schema describes one output dataset.
type Schema struct {
	Name    string
	Sources []Source

	// Extra columns are filled by Expand, after the field columns.
	Extra []string

	// Expand turns the field row of one item into zero or more output rows.
	// Without it every item gives exactly one row.
	Expand func(ctx ItemContext, row table.Row) ([]table.Row, []Diagnostic)
}

// Result holds the rows and diagnostics of one document.
type Result struct {
	Rows        []table.Row
	Diagnostics []Diagnostic
}

// Columns returns the header of the dataset. All sources of a schema share
// the field list of the first one.
func (s *Schema) Columns() []string {
	if len(s.Sources) == 0 {
		return append([]string(nil), s.Extra...)
	}
	columns := lo.Map(s.Sources[0].Fields, func(f Field, _ int) string {
		return f.Column
	})
	return append(columns, s.Extra...)
}

// NewTable creates an empty table with the schema header.
func (s *Schema) NewTable() *table.Table {
	return table.New(s.Name, s.Columns()...)
}

// Extract runs every source of the schema over doc. Any lookup error, such
// as a structural ambiguity, discards the whole document for this schema.
func (s *Schema) Extract(doc *xmlrec.Document) (Result, error) {
	var result Result

	for _, src := range s.Sources {
		items, err := src.Find(doc)
		if err != nil {
			return Result{}, fmt.Errorf("%s in %s: %w", s.Name, doc.Name, err)
		}

		for _, item := range items.Elements {
			ctx := ItemContext{
				Doc:         doc,
				Source:      src.Label,
				Declaration: items.Declaration,
				Item:        item,
			}

			row := make(table.Row, len(src.Fields))
			for i, field := range src.Fields {
				row[i] = field.Extract(ctx)
			}

			if s.Expand == nil {
				result.Rows = append(result.Rows, row)
				continue
			}
			rows, diags := s.Expand(ctx, row)
			result.Rows = append(result.Rows, rows...)
			for _, d := range diags {
				d.File = doc.Name
				d.Schema = s.Name
				result.Diagnostics = append(result.Diagnostics, d)
			}
		}
	}

	return result, nil
}

// FileName is a Field.Value reporting the document file name.
func FileName(ctx ItemContext) string {
	return ctx.Doc.Name
}

// SourceLabel is a Field.Value reporting the label of the item's source.
func SourceLabel(ctx ItemContext) string {
	return ctx.Source
}
