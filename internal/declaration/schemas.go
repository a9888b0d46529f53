package declaration

import (
	"github.com/beevik/etree"

	"github.com/hatvp-dataviz/internal/normalize"
	"github.com/hatvp-dataviz/internal/xmlrec"
)

// Dataset names, also used as default output base names.
const (
	NamePersonalInfo           = "personal_info"
	NameSpouseActivity         = "spouse_activities"
	NameFinancialParticipation = "participations"
	NameExternalRole           = "external_roles"
	NameMandateRemuneration    = "mandate_remuneration"
)

const (
	tagItems                  = "items"
	tagSpouseActivity         = "activProfConjointDto"
	tagFinancialParticipation = "participationFinanciereDto"
	tagParticipationDirigeant = "participationDirigeantDto"
	tagFonctionBenevole       = "fonctionBenevoleDto"
	tagMandatElectif          = "mandatElectifDto"
)

// External role types, written in the "type" column.
const (
	RoleParticipationDirigeant = "participationDirigeant"
	RoleFonctionBenevole       = "fonctionBenevole"
)

func fileField() Field {
	return Field{Column: "file", Value: FileName}
}

func textField(column string, tags ...string) Field {
	if len(tags) == 0 {
		tags = []string{column}
	}
	return Field{Column: column, Tags: tags}
}

func collapsedField(column string, tags ...string) Field {
	f := textField(column, tags...)
	f.Clean = normalize.CollapseSpace
	return f
}

func declarationField(column string) Field {
	return Field{Column: column, Scope: ScopeDeclaration, Tags: []string{column}}
}

// PersonalInfo yields one row per declaration with the declarant identity.
func PersonalInfo() *Schema {
	return &Schema{
		Name: NamePersonalInfo,
		Sources: []Source{{
			Label: "declarant",
			Find: func(doc *xmlrec.Document) (Items, error) {
				declaration, declarant, err := xmlrec.LocateDeclarant(doc)
				if err != nil {
					return Items{}, err
				}
				return Items{Declaration: declaration, Elements: []*etree.Element{declarant}}, nil
			},
			Fields: []Field{
				fileField(),
				declarationField("dateDepot"),
				declarationField("uuid"),
				textField("civilite"),
				textField("nom"),
				textField("prenom"),
				textField("email"),
				textField("dateNaissance"),
			},
		}},
	}
}

// SpouseActivity yields the spouse's professional activities. Text is
// collapsed to single spaces.
func SpouseActivity() *Schema {
	return &Schema{
		Name: NameSpouseActivity,
		Sources: []Source{{
			Label: tagSpouseActivity,
			Find: func(doc *xmlrec.Document) (Items, error) {
				declaration, err := xmlrec.LocateDeclaration(doc)
				if err != nil {
					return Items{}, err
				}
				dto, err := xmlrec.FindUnique(declaration, tagSpouseActivity)
				if err != nil {
					return Items{}, err
				}
				return Items{
					Declaration: declaration,
					Elements:    xmlrec.ChildPath(dto, tagItems, tagItems),
				}, nil
			},
			Fields: []Field{
				declarationField("uuid"),
				collapsedField("nomConjoint"),
				collapsedField("employeurConjoint"),
				collapsedField("activiteProf"),
				collapsedField("commentaire"),
			},
		}},
	}
}

// FinancialParticipation yields company holdings. Element names are
// compared without their namespace prefix.
func FinancialParticipation() *Schema {
	local := func(column string) Field {
		return Field{Column: column, Tags: []string{column}, Lookup: xmlrec.LocalText}
	}

	return &Schema{
		Name: NameFinancialParticipation,
		Sources: []Source{{
			Label: tagFinancialParticipation,
			Find: func(doc *xmlrec.Document) (Items, error) {
				var items Items
				for _, dto := range xmlrec.IterLocal(doc.Root, tagFinancialParticipation) {
					wrapper := xmlrec.LocalChild(dto, tagItems)
					items.Elements = append(items.Elements, xmlrec.LocalChildren(wrapper, tagItems)...)
				}
				return items, nil
			},
			Fields: []Field{
				fileField(),
				local("nomSociete"),
				local("evaluation"),
				local("capitalDetenu"),
				local("nombreParts"),
				local("remuneration"),
			},
		}},
	}
}

// ExternalRole yields management positions and voluntary functions. Each
// type has its own fallback chain for the organization and role columns.
func ExternalRole() *Schema {
	source := func(label, container string, organization, role []string) Source {
		return Source{
			Label: label,
			Find: func(doc *xmlrec.Document) (Items, error) {
				return Items{Elements: xmlrec.FindAll(doc.Root, container, tagItems, tagItems)}, nil
			},
			Fields: []Field{
				fileField(),
				{Column: "type", Value: SourceLabel},
				collapsedField("organization", organization...),
				collapsedField("role", role...),
				{Column: "remuneration", Value: func(ctx ItemContext) string {
					return SumRemuneration(xmlrec.Child(ctx.Item, "remuneration"))
				}},
				textField("date_start", "dateDebut"),
				textField("date_end", "dateFin"),
			},
		}
	}

	return &Schema{
		Name: NameExternalRole,
		Sources: []Source{
			source(RoleParticipationDirigeant, tagParticipationDirigeant,
				[]string{"nomSociete", "nomStructure", "organisme", "activite"},
				[]string{"activite", "descriptionActivite", "fonctionDirigeant", "nomSociete"},
			),
			source(RoleFonctionBenevole, tagFonctionBenevole,
				[]string{"nomStructure", "nomSociete", "organisme"},
				[]string{"descriptionActivite", "activite"},
			),
		},
	}
}

// MandateRemuneration yields one row per elected mandate and year of pay.
// See expandMandate for the incomplete cases.
func MandateRemuneration() *Schema {
	return &Schema{
		Name: NameMandateRemuneration,
		Sources: []Source{{
			Label: tagMandatElectif,
			Find: func(doc *xmlrec.Document) (Items, error) {
				return Items{Elements: xmlrec.FindAll(doc.Root, tagMandatElectif, tagItems, tagItems)}, nil
			},
			Fields: []Field{
				fileField(),
				textField("descriptionMandat"),
				textField("dateDebut"),
				textField("dateFin"),
			},
		}},
		Extra:  []string{"annee", "montant"},
		Expand: expandMandate,
	}
}

// All returns every schema in output order.
func All() []*Schema {
	return []*Schema{
		PersonalInfo(),
		SpouseActivity(),
		FinancialParticipation(),
		ExternalRole(),
		MandateRemuneration(),
	}
}

// ByName returns the schema called name, or nil.
func ByName(name string) *Schema {
	for _, s := range All() {
		if s.Name == name {
			return s
		}
	}
	return nil
}
