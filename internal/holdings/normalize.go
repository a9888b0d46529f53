// Package holdings cleans the financial participations dataset and builds
// the per-person holdings report.
package holdings

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hatvp-dataviz/internal/normalize"
	"github.com/hatvp-dataviz/internal/table"
)

// ColumnCleanName is appended to the participations columns by Normalize.
const ColumnCleanName = "clean_name"

// Names of the produced datasets.
const (
	NameNormalized = "normalized_holdings"
	NameReport     = "person_holdings_report"
)

// legalForms are stripped from the end of a name, one pass per entry in
// this order.
var legalForms = []string{
	" SA", " SAS", " SASU", " SARL", " SE", " SCA", " SCS", " SCI", " GIE", " SNC",
	" EURL", " SASP", " LTD", " PLC", " INC", " BV", " NV", " AG", " GMBH",
}

var placeholderNames = map[string]struct{}{
	"DONNEE NON PUBLIEE":   {},
	"DONNEES NON PUBLIEES": {},
	"VALEUR NON DECLAREE":  {},
	"SANS OBJET":           {},
	"NEANT":                {},
	"NON RENSEIGNE":        {},
	"NON RENSEIGNEE":       {},
	"NC":                   {},
	"NA":                   {},
}

// CleanCompanyName folds a company name to a comparable key:
// "Société Générale SA" -> "SOCIETE GENERALE".
func CleanCompanyName(name string) string {
	name = cases.Upper(language.Und).String(normalize.FoldAccents(name))
	for _, form := range legalForms {
		name = strings.TrimSuffix(name, form)
	}

	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '&', r == ' ':
			return r
		}
		return ' '
	}, name)
	return normalize.CollapseSpace(name)
}

// IsPlaceholder reports whether a cleaned name stands for withheld data.
func IsPlaceholder(clean string) bool {
	if _, ok := placeholderNames[clean]; ok {
		return true
	}
	return strings.Contains(clean, "DONNEE") || strings.Contains(clean, "NON PUBLIE")
}

// Normalize adds clean_name to the participations and drops rows naming a
// placeholder instead of a company, or whose evaluation says "non ...".
func Normalize(participations *table.Table) (*table.Table, error) {
	name := participations.Index("nomSociete")
	evaluation := participations.Index("evaluation")
	if name < 0 || evaluation < 0 {
		return nil, fmt.Errorf("%s: nomSociete and evaluation columns are required", participations.Name)
	}

	columns := append(append([]string(nil), participations.Columns...), ColumnCleanName)
	out := table.New(NameNormalized, columns...)

	for _, row := range participations.Rows {
		clean := CleanCompanyName(row[name])
		if IsPlaceholder(clean) {
			continue
		}
		if strings.Contains(strings.ToLower(row[evaluation]), "non") {
			continue
		}
		out.Append(append(append(table.Row(nil), row...), clean))
	}
	return out, nil
}
