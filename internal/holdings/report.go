package holdings

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/hatvp-dataviz/internal/normalize"
	"github.com/hatvp-dataviz/internal/table"
)

// ReportColumns is the header of the person holdings report.
var ReportColumns = []string{
	"uuid", "nom", "prenom", "declarations", "latest_declaration",
	"stock_count", "average_valuation", "total_valuation", "min_valuation", "max_valuation",
}

type person struct {
	uuid, nom, prenom string
	files             map[string]struct{}
	latest            time.Time
	rows              int
	holdings          int
	valuations        []float64
}

// PersonReport aggregates holdings per declarant. Holdings are attached to
// a person through the declaration file recorded in the personal info
// dataset; files absent from it are left out. Rows are sorted by total
// valuation, highest first.
func PersonReport(holdings, personal *table.Table) (*table.Table, error) {
	if err := requireColumns(holdings, "file", "nomSociete", "evaluation"); err != nil {
		return nil, err
	}
	if err := requireColumns(personal, "file", "uuid", "nom", "prenom", "dateDepot"); err != nil {
		return nil, err
	}

	people := map[string]*person{}
	byFile := map[string]*person{}

	for _, row := range personal.Rows {
		uuid := personal.Value(row, "uuid")
		if uuid == "" {
			continue
		}
		p, ok := people[uuid]
		if !ok {
			p = &person{
				uuid:   uuid,
				nom:    personal.Value(row, "nom"),
				prenom: personal.Value(row, "prenom"),
				files:  map[string]struct{}{},
			}
			people[uuid] = p
		}
		file := personal.Value(row, "file")
		p.files[file] = struct{}{}
		byFile[file] = p

		if deposited, err := normalize.ParseDate(personal.Value(row, "dateDepot")); err == nil && deposited.After(p.latest) {
			p.latest = deposited
		}
	}

	for _, row := range holdings.Rows {
		p, ok := byFile[holdings.Value(row, "file")]
		if !ok {
			continue
		}
		p.rows++
		if holdings.Value(row, "nomSociete") != "" {
			p.holdings++
		}
		if v, err := normalize.ParseAmount(holdings.Value(row, "evaluation")); err == nil {
			p.valuations = append(p.valuations, v)
		}
	}

	holders := lo.Filter(lo.Values(people), func(p *person, _ int) bool {
		return p.rows > 0
	})
	slices.SortFunc(holders, func(a, b *person) int {
		if c := cmp.Compare(lo.Sum(b.valuations), lo.Sum(a.valuations)); c != 0 {
			return c
		}
		return cmp.Compare(a.uuid, b.uuid)
	})

	report := table.New(NameReport, ReportColumns...)
	for _, p := range holders {
		report.Append(p.row())
	}
	return report, nil
}

func (p *person) row() table.Row {
	latest := ""
	if !p.latest.IsZero() {
		latest = p.latest.Format("2006-01-02")
	}

	total := lo.Sum(p.valuations)
	average, lowest, highest := "", "", ""
	if len(p.valuations) > 0 {
		average = normalize.FormatAmount(total / float64(len(p.valuations)))
		lowest = normalize.FormatAmount(lo.Min(p.valuations))
		highest = normalize.FormatAmount(lo.Max(p.valuations))
	}

	return table.Row{
		p.uuid, p.nom, p.prenom,
		strconv.Itoa(len(p.files)), latest,
		strconv.Itoa(p.holdings),
		average, normalize.FormatAmount(total), lowest, highest,
	}
}

func requireColumns(t *table.Table, columns ...string) error {
	for _, c := range columns {
		if t.Index(c) < 0 {
			return fmt.Errorf("%s: missing column %q", t.Name, c)
		}
	}
	return nil
}
