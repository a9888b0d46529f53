package declaration

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/hatvp-dataviz/internal/table"
	"github.com/hatvp-dataviz/internal/xmlrec"
)

// Field positions in the MandateRemuneration source row.
const (
	mandateDescription = 1
	mandateStart       = 2
	mandateEnd         = 3
)

// expandMandate writes one row per remuneration year. A mandate without
// description or dates is dropped; a complete mandate without any entry is
// kept as a single row with empty annee and montant.
func expandMandate(ctx ItemContext, row table.Row) ([]table.Row, []Diagnostic) {
	description := row[mandateDescription]
	if description == "" || row[mandateStart] == "" || row[mandateEnd] == "" {
		return nil, []Diagnostic{{
			Kind:    IncompleteMandate,
			Message: fmt.Sprintf("mandate %q skipped: missing descriptionMandat, dateDebut or dateFin", description),
		}}
	}

	container := lo.FirstOrEmpty(xmlrec.ChildPath(ctx.Item, "remuneration", tagMontant))
	entries := xmlrec.Children(container, tagMontant)

	if len(entries) == 0 {
		return []table.Row{withYear(row, "", "")}, []Diagnostic{{
			Kind:    NoRemuneration,
			Message: fmt.Sprintf("no remuneration entries for mandate %q", description),
		}}
	}

	var rows []table.Row
	var diags []Diagnostic
	for _, entry := range entries {
		year := xmlrec.Text(entry, "annee")
		amount := xmlrec.Text(entry, tagMontant)
		if year == "" || amount == "" {
			diags = append(diags, Diagnostic{
				Kind:    IncompleteRemunerationEntry,
				Message: fmt.Sprintf("remuneration entry of mandate %q skipped: missing annee or montant", description),
			})
			continue
		}
		rows = append(rows, withYear(row, year, amount))
	}
	return rows, diags
}

func withYear(row table.Row, year, amount string) table.Row {
	out := make(table.Row, 0, len(row)+2)
	out = append(out, row...)
	return append(out, year, amount)
}
