package xmlrec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, name, data string) *Document {
	t.Helper()
	doc, err := Parse(name, []byte(data))
	require.NoError(t, err)
	return doc
}

func TestParseRejectsMalformedXML(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "unclosed element", input: "<declaration><general></declaration>"},
		{name: "empty file", input: ""},
		{name: "text only", input: "not xml at all"},
		{name: "two roots", input: "<a/><b/>"},
		{name: "junk after root", input: "<a/>junk"},
		{name: "concatenated declarations", input: "<declaration><uuid>u1</uuid></declaration><declaration><uuid>u2</uuid></declaration>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("broken.xml", []byte(tt.input))
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			require.Equal(t, "broken.xml", perr.File)
			require.Contains(t, err.Error(), "broken.xml")
		})
	}
}

func TestParseAcceptsMiscAroundRoot(t *testing.T) {
	input := "<?xml version=\"1.0\"?>\n<!-- export -->\n<declaration><uuid>u1</uuid></declaration>\n<!-- end -->\n"

	doc, err := Parse("ok.xml", []byte(input))
	require.NoError(t, err)
	require.Equal(t, TagDeclaration, doc.Root.Tag)
}

func TestParseLatin1Declaration(t *testing.T) {
	data := append([]byte(`<?xml version="1.0" encoding="ISO-8859-1"?><declaration><general><declarant><nom>`), 0xC9, 'l', 'o', 'i', 's', 'e')
	data = append(data, []byte(`</nom></declarant></general></declaration>`)...)

	doc, err := Parse("latin1.xml", data)
	require.NoError(t, err)

	_, declarant, err := LocateDeclarant(doc)
	require.NoError(t, err)
	require.Equal(t, "Éloise", Text(declarant, "nom"))
}

func TestFindUnique(t *testing.T) {
	doc := mustParse(t, "f.xml", `<root>
		<a><b>one</b></a>
		<c/><c/>
	</root>`)

	tests := []struct {
		name      string
		tag       string
		wantText  string
		wantNil   bool
		wantCount int
	}{
		{name: "single nested match", tag: "b", wantText: "one"},
		{name: "absent tag", tag: "zzz", wantNil: true},
		{name: "duplicated tag", tag: "c", wantCount: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el, err := FindUnique(doc.Root, tt.tag)
			if tt.wantCount > 0 {
				require.ErrorIs(t, err, ErrStructuralAmbiguity)
				var amb *StructuralAmbiguityError
				require.ErrorAs(t, err, &amb)
				require.Equal(t, tt.wantCount, amb.Count)
				require.Equal(t, tt.tag, amb.Tag)
				require.Nil(t, el)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				require.Nil(t, el)
				return
			}
			require.Equal(t, tt.wantText, el.Text())
		})
	}
}

func TestFindUniqueExcludesParent(t *testing.T) {
	doc := mustParse(t, "f.xml", `<declaration><declaration/></declaration>`)

	el, err := FindUnique(doc.Root, "declaration")
	require.NoError(t, err)
	require.NotNil(t, el)
	require.NotSame(t, doc.Root, el)
}

func TestFindUniqueNilParent(t *testing.T) {
	el, err := FindUnique(nil, "declaration")
	require.NoError(t, err)
	require.Nil(t, el)
}

func TestLocateDeclaration(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantRoot bool
		wantNil  bool
		wantErr  bool
	}{
		{name: "root is the declaration", input: `<declaration><uuid>x</uuid></declaration>`, wantRoot: true},
		{name: "wrapped declaration", input: `<declarations><declaration><uuid>x</uuid></declaration></declarations>`},
		{name: "no declaration", input: `<declarations/>`, wantNil: true},
		{name: "two declarations", input: `<declarations><declaration/><declaration/></declarations>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, "d.xml", tt.input)
			decl, err := LocateDeclaration(doc)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrStructuralAmbiguity)
				return
			}
			require.NoError(t, err)
			switch {
			case tt.wantNil:
				require.Nil(t, decl)
			case tt.wantRoot:
				require.Same(t, doc.Root, decl)
			default:
				require.Equal(t, "x", Text(decl, "uuid"))
			}
		})
	}
}

func TestLocateDeclarantTwoDeclarants(t *testing.T) {
	doc := mustParse(t, "b.xml", `<declaration><general>
		<declarant><nom>A</nom></declarant>
		<declarant><nom>B</nom></declarant>
	</general></declaration>`)

	_, declarant, err := LocateDeclarant(doc)
	require.ErrorIs(t, err, ErrStructuralAmbiguity)
	require.Nil(t, declarant)
}

func TestLocateDeclarantMissingGeneral(t *testing.T) {
	doc := mustParse(t, "c.xml", `<declaration><uuid>u</uuid></declaration>`)

	decl, declarant, err := LocateDeclarant(doc)
	require.NoError(t, err)
	require.NotNil(t, decl)
	require.Nil(t, declarant)
	require.Equal(t, "", Text(declarant, "nom"))
}

func TestStrictLookupIgnoresPrefixedElements(t *testing.T) {
	doc := mustParse(t, "ns.xml", `<root xmlns:h="urn:hatvp"><h:items>prefixed</h:items><items>plain</items></root>`)

	require.Len(t, Children(doc.Root, "items"), 1)
	require.Equal(t, "plain", Text(doc.Root, "items"))
	require.Len(t, LocalChildren(doc.Root, "items"), 2)
	require.Equal(t, "prefixed", LocalText(doc.Root, "items"))
}

func TestFindAllItemPath(t *testing.T) {
	doc := mustParse(t, "p.xml", `<declaration>
		<mandatElectifDto><items><items><n>1</n></items><items><n>2</n></items></items></mandatElectifDto>
		<autre><mandatElectifDto><items><items><n>3</n></items></items></mandatElectifDto></autre>
	</declaration>`)

	items := FindAll(doc.Root, "mandatElectifDto", "items", "items")
	require.Len(t, items, 3)

	var got []string
	for _, item := range items {
		got = append(got, Text(item, "n"))
	}
	require.Equal(t, []string{"1", "2", "3"}, got)
}

func TestIterLocalIncludesSelf(t *testing.T) {
	doc := mustParse(t, "i.xml", `<x:participationFinanciereDto xmlns:x="urn:x"><participationFinanciereDto/></x:participationFinanciereDto>`)

	found := IterLocal(doc.Root, "participationFinanciereDto")
	require.Len(t, found, 2)
	require.Same(t, doc.Root, found[0])
}
