package xmlrec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	doc := mustParse(t, "t.xml", `<declarant>
		<nom>  Dupont  </nom>
		<prenom>
			Jean
		</prenom>
		<email>   </email>
		<civilite/>
		<commentaire>deux  espaces internes</commentaire>
	</declarant>`)

	tests := []struct {
		tag  string
		want string
	}{
		{tag: "nom", want: "Dupont"},
		{tag: "prenom", want: "Jean"},
		{tag: "email", want: ""},
		{tag: "civilite", want: ""},
		{tag: "absent", want: ""},
		{tag: "commentaire", want: "deux  espaces internes"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			require.Equal(t, tt.want, Text(doc.Root, tt.tag))
		})
	}
}

func TestTextNilElement(t *testing.T) {
	require.Equal(t, "", Text(nil, "nom"))
	require.Equal(t, "", LocalText(nil, "nom"))
}

func TestLocalTextSpecialSpaces(t *testing.T) {
	doc := mustParse(t, "s.xml", "<items><evaluation>\u00a012\u202f500\n</evaluation><nomSociete> ACME\u00a0SA </nomSociete></items>")

	require.Equal(t, "12 500", LocalText(doc.Root, "evaluation"))
	require.Equal(t, "ACME SA", LocalText(doc.Root, "nomSociete"))
}
