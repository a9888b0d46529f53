// Package catalogue loads the lists of organization and person names
// searched by the mention tally.
package catalogue

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/hatvp-dataviz/internal/mentions"
)

// DefaultColumn holds the names in the NER catalogue files.
const DefaultColumn = "name"

// Loader reads catalogue CSV files.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new catalogue loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// LoadNames returns the non-empty values of column in file order. Records
// that cannot be read are skipped and counted.
func (l *Loader) LoadNames(path, column string) ([]string, error) {
	if column == "" {
		column = DefaultColumn
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalogue %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	idx := slices.Index(header, column)
	if idx < 0 {
		return nil, fmt.Errorf("catalogue %s has no %q column", path, column)
	}

	var names []string
	skipped := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			l.logger.Warn("skipping catalogue record", "file", path, "error", err)
			skipped++
			continue
		}
		if idx >= len(record) || record[idx] == "" {
			continue
		}
		names = append(names, record[idx])
	}

	l.logger.Debug("catalogue loaded", "file", path, "names", len(names), "skipped", skipped)
	return names, nil
}

// Load reads a catalogue for the mention tally.
func (l *Loader) Load(label, path, column string) (mentions.Catalogue, error) {
	names, err := l.LoadNames(path, column)
	if err != nil {
		return mentions.Catalogue{}, err
	}
	return mentions.Catalogue{Label: label, Names: names}, nil
}
