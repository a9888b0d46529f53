package etl

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hatvp-dataviz/internal/table"
)

// Stdout is the output path meaning standard output.
const Stdout = "-"

// Export writes t as CSV to path, creating parent directories. An existing
// file is overwritten.
func Export(path string, t *table.Table) error {
	if path == Stdout {
		return t.WriteCSV(os.Stdout)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := t.WriteCSV(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}
