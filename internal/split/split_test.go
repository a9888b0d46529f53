package split

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hatvp-dataviz/internal/declaration"
	"github.com/hatvp-dataviz/internal/xmlrec"
)

const export = `<?xml version="1.0" encoding="UTF-8"?>
<declarations>
  <declaration>
    <uuid>abc</uuid>
    <declarationVersion>2</declarationVersion>
    <general><declarant><nom>Dupont</nom></declarant></general>
  </declaration>
  <declaration>
    <uuid>abc</uuid>
    <declarationVersion>3</declarationVersion>
    <general><declarant><nom>Dupont-Martin</nom></declarant></general>
  </declaration>
  <declaration>
    <uuid>no-version</uuid>
  </declaration>
  <declaration>
    <uuid>../escape</uuid>
    <declarationVersion>1</declarationVersion>
  </declaration>
</declarations>`

func TestSplitFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "declarations.xml")
	require.NoError(t, os.WriteFile(src, []byte(export), 0o644))
	outDir := filepath.Join(t.TempDir(), "split_declarations")

	stats, err := NewSplitter(outDir, nil).SplitFile(src)
	require.NoError(t, err)
	require.Equal(t, Stats{Declarations: 4, Written: 2, Skipped: 2}, stats)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.Equal(t, []string{"abc-2.xml", "abc-3.xml"}, names)

	doc, err := xmlrec.ReadFile(filepath.Join(outDir, "abc-3.xml"))
	require.NoError(t, err)
	require.Equal(t, "declarations", doc.Root.Tag)

	result, err := declaration.PersonalInfo().Extract(doc)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	require.Equal(t, "abc-3.xml", result.Rows[0][0])
	require.Equal(t, "abc", result.Rows[0][2])
	require.Equal(t, "Dupont-Martin", result.Rows[0][4])
}

func TestSplitIsDeterministic(t *testing.T) {
	doc, err := xmlrec.Parse("declarations.xml", []byte(export))
	require.NoError(t, err)

	read := func() []byte {
		outDir := t.TempDir()
		_, err := NewSplitter(outDir, nil).Split(doc)
		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(outDir, "abc-2.xml"))
		require.NoError(t, err)
		return data
	}

	first := read()
	require.Equal(t, first, read())
	require.Contains(t, string(first), `<?xml version="1.0" encoding="UTF-8"?>`)
}

func TestSplitKeepsNamespaces(t *testing.T) {
	doc, err := xmlrec.Parse("ns.xml", []byte(`<h:declarations xmlns:h="urn:hatvp">
		<h:declaration><h:uuid>n1</h:uuid><h:declarationVersion>1</h:declarationVersion></h:declaration>
	</h:declarations>`))
	require.NoError(t, err)

	outDir := t.TempDir()
	stats, err := NewSplitter(outDir, nil).Split(doc)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Written)

	written, err := xmlrec.ReadFile(filepath.Join(outDir, "n1-1.xml"))
	require.NoError(t, err)
	decl := xmlrec.IterLocal(written.Root, "declaration")
	require.Len(t, decl, 1)
	require.Equal(t, "urn:hatvp", decl[0].NamespaceURI())
}
