package declaration

import "fmt"

// Kind classifies a non-fatal extraction problem.
type Kind string

const (
	IncompleteMandate           Kind = "IncompleteMandate"
	IncompleteRemunerationEntry Kind = "IncompleteRemunerationEntry"
	NoRemuneration              Kind = "NoRemuneration"
)

// Diagnostic reports a record that was skipped or degraded while the rest
// of the file was still extracted.
type Diagnostic struct {
	File    string
	Schema  string
	Kind    Kind
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s (%s)", d.File, d.Schema, d.Message, d.Kind)
}

// Informational reports diagnostics that describe valid data, as opposed to
// records that were dropped.
func (d Diagnostic) Informational() bool {
	return d.Kind == NoRemuneration
}
