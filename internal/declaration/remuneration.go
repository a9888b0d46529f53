package declaration

import (
	"github.com/beevik/etree"

	"github.com/hatvp-dataviz/internal/normalize"
	"github.com/hatvp-dataviz/internal/xmlrec"
)

const tagMontant = "montant"

// SumRemuneration adds up every leaf <montant> below el. Wrappers that hold
// nested <montant> elements are not counted, and entries that do not parse
// as an amount are ignored. A zero total is reported as "".
func SumRemuneration(el *etree.Element) string {
	var total float64
	for _, m := range xmlrec.Descendants(el, tagMontant) {
		if xmlrec.Child(m, tagMontant) != nil {
			continue
		}
		amount, err := normalize.ParseAmount(m.Text())
		if err != nil {
			continue
		}
		total += amount
	}

	if total == 0 {
		return ""
	}
	return normalize.FormatAmount(total)
}
