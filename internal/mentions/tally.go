// Package mentions counts the declaration files whose raw text contains
// each name of a catalogue. Matching is a plain case-sensitive substring
// test: "Acme Corp" is found inside "Acme Corporation".
package mentions

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/hatvp-dataviz/internal/table"
)

// Catalogue labels, used as the first column header of the output.
const (
	LabelOrganization = "organization"
	LabelPerson       = "person"
)

// ErrUnreadableFile is returned by Decode for text that is not valid UTF-8.
var ErrUnreadableFile = errors.New("unreadable file")

// Catalogue is a list of known names.
type Catalogue struct {
	Label string
	Names []string
}

// Mention is the tally of one name.
type Mention struct {
	Name  string
	Files []string
}

// Tally accumulates matches for one catalogue across files.
type Tally struct {
	label string
	names []string
	files map[string]map[string]struct{}
}

// NewTally creates a tally for the catalogue. Empty names are dropped and
// duplicates keep their first position.
func NewTally(catalogue Catalogue) *Tally {
	names := lo.Uniq(lo.Compact(catalogue.Names))

	files := make(map[string]map[string]struct{}, len(names))
	for _, name := range names {
		files[name] = map[string]struct{}{}
	}

	return &Tally{label: catalogue.Label, names: names, files: files}
}

// Label returns the catalogue label.
func (t *Tally) Label() string {
	return t.label
}

// Observe records file against every name contained in text and returns
// how many names matched.
func (t *Tally) Observe(file, text string) int {
	matched := 0
	for _, name := range t.names {
		if strings.Contains(text, name) {
			t.files[name][file] = struct{}{}
			matched++
		}
	}
	return matched
}

// Mentions returns one entry per catalogue name, in catalogue order, with
// file names sorted.
func (t *Tally) Mentions() []Mention {
	return lo.Map(t.names, func(name string, _ int) Mention {
		files := lo.Keys(t.files[name])
		slices.Sort(files)
		return Mention{Name: name, Files: files}
	})
}

// Table renders the tally as "<label>, mentions, filenames".
func (t *Tally) Table(name string) *table.Table {
	tbl := table.New(name, t.label, "mentions", "filenames")
	for _, m := range t.Mentions() {
		tbl.Append(table.Row{m.Name, strconv.Itoa(len(m.Files)), strings.Join(m.Files, ",")})
	}
	return tbl
}

// Decode turns raw file contents into searchable text. Invalid UTF-8 is an
// error unless lenient is set, in which case invalid bytes are dropped.
func Decode(data []byte, lenient bool) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	if !lenient {
		return "", fmt.Errorf("%w: invalid UTF-8", ErrUnreadableFile)
	}
	return strings.ToValidUTF8(string(data), ""), nil
}

// TableName returns the dataset name of a catalogue label:
// "organization_mentions", "people_mentions".
func TableName(label string) string {
	if label == LabelPerson {
		return "people_mentions"
	}
	return label + "_mentions"
}
