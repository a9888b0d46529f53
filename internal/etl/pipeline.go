package etl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hatvp-dataviz/internal/debug"
	"github.com/hatvp-dataviz/internal/declaration"
	"github.com/hatvp-dataviz/internal/mentions"
	"github.com/hatvp-dataviz/internal/table"
	"github.com/hatvp-dataviz/internal/xmlrec"
)

// Policy decides what a file-level error does to the batch.
type Policy int

const (
	// PolicySkip logs the file as skipped and carries on.
	PolicySkip Policy = iota
	// PolicyAbort stops the batch at the first file error.
	PolicyAbort
)

// ParsePolicy maps the on_error setting to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip":
		return PolicySkip, nil
	case "abort":
		return PolicyAbort, nil
	}
	return PolicySkip, fmt.Errorf("unknown error policy %q", s)
}

func (p Policy) String() string {
	if p == PolicyAbort {
		return "abort"
	}
	return "skip"
}

// Options configures a Pipeline.
type Options struct {
	InputDir    string
	Schemas     []*declaration.Schema
	Catalogues  []mentions.Catalogue
	OnError     Policy
	LenientText bool
	Logger      *slog.Logger
}

// Skip records a file left out of one dataset, or of all of them when
// Schema is empty.
type Skip struct {
	File   string
	Schema string
	Err    error
}

// Cause names the error class behind the skip.
func (s Skip) Cause() string {
	var parseErr *xmlrec.ParseError
	switch {
	case errors.Is(s.Err, xmlrec.ErrStructuralAmbiguity):
		return "StructuralAmbiguity"
	case errors.As(s.Err, &parseErr):
		return "ParseError"
	case errors.Is(s.Err, mentions.ErrUnreadableFile):
		return "UnreadableFile"
	default:
		return "IOError"
	}
}

// Result is the outcome of a run.
type Result struct {
	Files       []string
	Tables      []*table.Table
	Mentions    []*table.Table
	Skipped     []Skip
	Diagnostics []declaration.Diagnostic
}

// Table returns the dataset called name, or nil.
func (r *Result) Table(name string) *table.Table {
	for _, t := range r.Tables {
		if t.Name == name {
			return t
		}
	}
	for _, t := range r.Mentions {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Pipeline extracts every configured dataset from a directory of
// declaration files in one pass.
type Pipeline struct {
	opts   Options
	logger *slog.Logger
}

// NewPipeline creates a new extraction pipeline
func NewPipeline(opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{opts: opts, logger: logger}
}

// Run processes the input directory in file name order. Each file is read
// once: its raw text feeds the mention tallies, then the parsed document is
// handed to every schema.
func (p *Pipeline) Run() (*Result, error) {
	done := debug.Timing(p.logger, "extract "+p.opts.InputDir)
	defer done()

	files, err := ListDeclarations(p.opts.InputDir)
	if err != nil {
		return nil, err
	}
	p.logger.Info("processing declarations", "dir", p.opts.InputDir, "files", len(files))

	result := &Result{}
	for _, s := range p.opts.Schemas {
		result.Tables = append(result.Tables, s.NewTable())
	}
	tallies := make([]*mentions.Tally, 0, len(p.opts.Catalogues))
	for _, c := range p.opts.Catalogues {
		tallies = append(tallies, mentions.NewTally(c))
	}

	for _, path := range files {
		name := filepath.Base(path)
		result.Files = append(result.Files, name)

		if err := p.processFile(result, tallies, path, name); err != nil {
			return nil, err
		}
	}

	for _, t := range tallies {
		result.Mentions = append(result.Mentions, t.Table(mentions.TableName(t.Label())))
	}

	p.logger.Info("extraction complete", "files", len(result.Files), "skipped", len(result.Skipped), "diagnostics", len(result.Diagnostics))
	return result, nil
}

func (p *Pipeline) processFile(result *Result, tallies []*mentions.Tally, path, name string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return p.skip(result, Skip{File: name, Err: err})
	}

	if len(tallies) > 0 {
		text, err := mentions.Decode(data, p.opts.LenientText)
		if err != nil {
			s := Skip{File: name, Schema: "mentions", Err: err}
			p.logger.Warn("excluded from mention tally", "file", name, "cause", s.Cause())
			result.Skipped = append(result.Skipped, s)
		} else {
			for _, t := range tallies {
				t.Observe(name, text)
			}
		}
	}

	if len(p.opts.Schemas) == 0 {
		return nil
	}

	doc, err := xmlrec.Parse(name, data)
	if err != nil {
		return p.skip(result, Skip{File: name, Err: err})
	}

	for i, s := range p.opts.Schemas {
		extracted, err := s.Extract(doc)
		if err != nil {
			if err := p.skip(result, Skip{File: name, Schema: s.Name, Err: err}); err != nil {
				return err
			}
			continue
		}

		result.Tables[i].Append(extracted.Rows...)
		for _, d := range extracted.Diagnostics {
			level := slog.LevelWarn
			if d.Informational() {
				level = slog.LevelDebug
			}
			p.logger.Log(context.Background(), level, d.Message, "file", d.File, "schema", d.Schema, "kind", string(d.Kind))
			result.Diagnostics = append(result.Diagnostics, d)
		}
	}
	return nil
}

// skip applies the error policy. It returns a non-nil error only when the
// batch must stop.
func (p *Pipeline) skip(result *Result, s Skip) error {
	if p.opts.OnError == PolicyAbort {
		return fmt.Errorf("aborting on %s: %w", s.File, s.Err)
	}

	schema := s.Schema
	if schema == "" {
		schema = "all"
	}
	p.logger.Warn("skipping file", "file", s.File, "schema", schema, "cause", s.Cause(), "error", s.Err)
	result.Skipped = append(result.Skipped, s)
	return nil
}

// ListDeclarations returns the *.xml files of dir sorted by name.
func ListDeclarations(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list declarations in %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".xml" {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}
