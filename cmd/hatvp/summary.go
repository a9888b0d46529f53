package main

import (
	"io"
	"os"

	pretty "github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/hatvp-dataviz/internal/etl"
)

// summaryWriter keeps stdout free for CSV when a dataset is streamed there.
func summaryWriter(exports []export) io.Writer {
	if lo.ContainsBy(exports, func(e export) bool { return e.path == etl.Stdout }) {
		return os.Stderr
	}
	return os.Stdout
}

// printSummary renders the datasets written by a run and its skip counts.
func printSummary(result *etl.Result, exports []export) {
	t := pretty.NewWriter()
	t.SetOutputMirror(summaryWriter(exports))
	t.AppendHeader(pretty.Row{"Dataset", "Rows", "Output"})

	for _, e := range exports {
		rows := 0
		if tbl := result.Table(e.name); tbl != nil {
			rows = tbl.Len()
		}
		t.AppendRow(pretty.Row{e.name, rows, e.path})
	}

	t.AppendFooter(pretty.Row{"files", len(result.Files), ""})
	t.AppendFooter(pretty.Row{"skipped", len(result.Skipped), ""})
	t.AppendFooter(pretty.Row{"diagnostics", len(result.Diagnostics), ""})
	t.SetStyle(pretty.StyleRounded)
	t.Render()
}

// printCounts renders a two-column table of named counters.
func printCounts(w io.Writer, title string, counts [][2]any) {
	t := pretty.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	for _, c := range counts {
		t.AppendRow(pretty.Row{c[0], c[1]})
	}
	t.SetStyle(pretty.StyleRounded)
	t.Render()
}
