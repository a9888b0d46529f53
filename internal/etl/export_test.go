package etl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hatvp-dataviz/internal/table"
)

func TestExportCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pii", "spouse_activities.csv")
	tbl := table.New("spouse_activities", "uuid", "nomConjoint")
	tbl.Append(table.Row{"u1", "Claire Dupont"})

	require.NoError(t, Export(path, tbl))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "uuid,nomConjoint\nu1,Claire Dupont\n", string(data))
}

func TestExportOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer\n"), 0o644))

	require.NoError(t, Export(path, table.New("t", "a")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "a\n", string(data))
}
