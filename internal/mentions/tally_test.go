package mentions

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestTallySubstringMatch(t *testing.T) {
	tally := NewTally(Catalogue{Label: LabelOrganization, Names: []string{"Acme Corp", "Globex"}})

	require.Equal(t, 1, tally.Observe("a.xml", "<nomSociete>Acme Corporation</nomSociete>"))

	want := []Mention{
		{Name: "Acme Corp", Files: []string{"a.xml"}},
		{Name: "Globex", Files: []string{}},
	}
	if diff := cmp.Diff(want, tally.Mentions()); diff != "" {
		t.Errorf("mentions mismatch (-want +got):\n%s", diff)
	}
}

func TestTallyCaseSensitive(t *testing.T) {
	tally := NewTally(Catalogue{Label: LabelPerson, Names: []string{"Jean Dupont"}})

	require.Equal(t, 0, tally.Observe("a.xml", "JEAN DUPONT"))
	require.Equal(t, 0, tally.Observe("b.xml", "jean dupont"))
	require.Equal(t, 1, tally.Observe("c.xml", "M. Jean Dupontel"))
}

func TestTallyCatalogueCleanup(t *testing.T) {
	tally := NewTally(Catalogue{Label: LabelOrganization, Names: []string{"B", "", "A", "B"}})

	names := []string{}
	for _, m := range tally.Mentions() {
		names = append(names, m.Name)
	}
	require.Equal(t, []string{"B", "A"}, names)
}

func TestTallyTable(t *testing.T) {
	tally := NewTally(Catalogue{Label: LabelPerson, Names: []string{"Dupont", "Martin", "Durand"}})
	tally.Observe("c.xml", "Dupont et Martin")
	tally.Observe("a.xml", "Dupont")
	tally.Observe("a.xml", "Dupont")

	var buf bytes.Buffer
	require.NoError(t, tally.Table("people_mentions").WriteCSV(&buf))

	want := "person,mentions,filenames\n" +
		"Dupont,2,\"a.xml,c.xml\"\n" +
		"Martin,1,c.xml\n" +
		"Durand,0,\n"
	require.Equal(t, want, buf.String())
}

func TestDecode(t *testing.T) {
	invalid := []byte("Soci\xe9t\xe9 Acme Corp")

	_, err := Decode(invalid, false)
	require.ErrorIs(t, err, ErrUnreadableFile)

	text, err := Decode(invalid, true)
	require.NoError(t, err)
	require.Equal(t, "Socit Acme Corp", text)

	text, err = Decode([]byte("Société"), false)
	require.NoError(t, err)
	require.Equal(t, "Société", text)
}
