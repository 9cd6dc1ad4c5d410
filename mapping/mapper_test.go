package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/ppodgraph/graph"
	"github.com/c360studio/ppodgraph/identity"
	"github.com/c360studio/ppodgraph/lookup"
	"github.com/c360studio/ppodgraph/source"
	"github.com/c360studio/ppodgraph/vocabulary/ppod"
)

const countyBase = "http://www.wikidata.org/entity/"

func newTestMapper(t *testing.T) (*Mapper, *identity.Builder) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "counties.csv")
	require.NoError(t, os.WriteFile(path, []byte("County,Identifier\nAlameda,Q107146\nYolo,Q109681\n"), 0o644))
	counties, err := lookup.LoadCountyTable(path, countyBase)
	require.NoError(t, err)
	set, err := lookup.NewSet(counties)
	require.NoError(t, err)

	ids, err := identity.NewBuilder(identity.Options{})
	require.NoError(t, err)
	return NewMapper(ids, set, nil), ids
}

func row(n int, values map[string]string) source.Row {
	return source.Row{Number: n, Values: values}
}

func personsSpec() *SheetSpec {
	return &SheetSpec{
		Sheet:        SheetPersons,
		EntityType:   ppod.EntityTypePerson,
		KeyHeader:    "Name",
		KeyPredicate: ppod.PersonName,
		Fields: []FieldSpec{
			lookupField("County", ppod.GeoCounty, lookup.CountyTable).Multi(),
			literal("Email", ppod.PersonEmail),
			typed("Since", ppod.TimeStartYear, ppod.XSDGYear),
			typed("Latitude", ppod.GeoLatitude, ppod.XSDDecimal),
			link("URL", ppod.DescURL),
			useCase("usecaseMeat"),
		},
	}
}

func projectsSpec() *SheetSpec {
	return &SheetSpec{
		Sheet:        SheetProjects,
		EntityType:   ppod.EntityTypeProject,
		KeyHeader:    "Title",
		KeyPredicate: ppod.DescTitle,
		Fields: []FieldSpec{
			ref("PI", ppod.ProjectLeadIndividual, ppod.EntityTypePerson).Multi(),
		},
	}
}

func objectsOf(res *Result, predicate string) []graph.Term {
	var out []graph.Term
	for _, tr := range res.Triples {
		if tr.Predicate == predicate {
			out = append(out, tr.Object)
		}
	}
	return out
}

func TestMapRow_UnknownCountyIsCollected(t *testing.T) {
	m, _ := newTestMapper(t)

	res, err := m.MapRow(personsSpec(), row(2, map[string]string{"Name": "A. Lee", "County": "99999"}))
	require.NoError(t, err)

	require.Len(t, res.Triples, 1)
	assert.Equal(t, ppod.MetaType, res.Triples[0].Predicate)
	assert.Equal(t, graph.IRI(ppod.EntityTypePerson.ClassIRI()), res.Triples[0].Object)

	require.Len(t, res.Problems, 1)
	p := res.Problems[0]
	assert.Equal(t, SheetPersons, p.Sheet)
	assert.Equal(t, 2, p.Row)
	assert.Equal(t, "County", p.Field)
	assert.Equal(t, lookup.CountyTable, p.Vocabulary)
	assert.Equal(t, "99999", p.Code)
}

func TestMapRow_ForwardReferenceMatchesLaterSubject(t *testing.T) {
	m, ids := newTestMapper(t)

	project, err := m.MapRow(projectsSpec(), row(2, map[string]string{"Title": "Survey X", "PI": "A. Lee"}))
	require.NoError(t, err)
	person, err := m.MapRow(personsSpec(), row(2, map[string]string{"Name": "A. Lee"}))
	require.NoError(t, err)

	want, err := ids.IdentifierFor(ppod.EntityTypePerson, "A. Lee")
	require.NoError(t, err)
	assert.Equal(t, want, person.Subject)
	assert.Equal(t, []graph.Term{graph.IRI(want)}, objectsOf(project, ppod.ProjectLeadIndividual))

	require.Len(t, project.References, 1)
	assert.Equal(t, ObjectRef{
		IRI: want,
		Ref: graph.EntityRef{Type: ppod.EntityTypePerson, Key: "A. Lee"},
	}, project.References[0])
}

func TestMapRow_KeyOnlyRowYieldsTypeDeclaration(t *testing.T) {
	m, _ := newTestMapper(t)

	res, err := m.MapRow(personsSpec(), row(3, map[string]string{
		"Name": "  A.  Lee ", "County": "", "Email": "   ", "URL": "",
	}))
	require.NoError(t, err)
	require.Len(t, res.Triples, 1)
	assert.Equal(t, ppod.MetaType, res.Triples[0].Predicate)
	assert.Equal(t, "A. Lee", res.Key)
	assert.Equal(t, "A. Lee", res.Label)
	assert.True(t, res.Defines)
	assert.Empty(t, res.Problems)
}

func TestMapRow_BlankKeySkipsRow(t *testing.T) {
	m, _ := newTestMapper(t)

	res, err := m.MapRow(personsSpec(), row(4, map[string]string{"Name": "  ", "Email": "a@example.org"}))
	require.ErrorIs(t, err, identity.ErrEmptyKey)
	assert.Nil(t, res)
}

func TestMapRow_MultiValuedTokens(t *testing.T) {
	m, _ := newTestMapper(t)

	res, err := m.MapRow(personsSpec(), row(2, map[string]string{"Name": "A. Lee", "County": "Alameda, , Yolo ,"}))
	require.NoError(t, err)
	assert.Len(t, res.Triples, 3)
	assert.Equal(t, []graph.Term{
		graph.IRI(countyBase + "Q107146"),
		graph.IRI(countyBase + "Q109681"),
	}, objectsOf(res, ppod.GeoCounty))

	res, err = m.MapRow(projectsSpec(), row(2, map[string]string{"Title": "Survey X", "PI": "A. Lee,B. Cruz, C. Diaz"}))
	require.NoError(t, err)
	assert.Len(t, res.Triples, 4)
}

func TestMapRow_AllExpandsCounties(t *testing.T) {
	m, _ := newTestMapper(t)

	res, err := m.MapRow(personsSpec(), row(2, map[string]string{"Name": "A. Lee", "County": "All"}))
	require.NoError(t, err)
	assert.Len(t, objectsOf(res, ppod.GeoCounty), 2)
}

func TestMapRow_FieldKinds(t *testing.T) {
	m, _ := newTestMapper(t)

	tests := []struct {
		name      string
		header    string
		value     string
		predicate string
		want      []graph.Term
	}{
		{"plain literal", "Email", "lee@example.org", ppod.PersonEmail, []graph.Term{graph.Literal("lee@example.org")}},
		{"year typed", "Since", "2015", ppod.TimeStartYear, []graph.Term{graph.TypedLiteral("2015", ppod.XSDGYear)}},
		{"year range stays plain", "Since", "2015-2018", ppod.TimeStartYear, []graph.Term{graph.Literal("2015-2018")}},
		{"decimal typed", "Latitude", "38.54", ppod.GeoLatitude, []graph.Term{graph.TypedLiteral("38.54", ppod.XSDDecimal)}},
		{"decimal rejects NaN", "Latitude", "NaN", ppod.GeoLatitude, []graph.Term{graph.Literal("NaN")}},
		{"url becomes IRI", "URL", "https://example.org/a", ppod.DescURL, []graph.Term{graph.IRI("https://example.org/a")}},
		{"non-url stays literal", "URL", "see website", ppod.DescURL, []graph.Term{graph.Literal("see website")}},
		{"flag set", "usecaseMeat", "X", ppod.DescUseCase, []graph.Term{graph.IRI(ppod.UseCases["usecaseMeat"].IRI)}},
		{"flag lowercase", "usecaseMeat", " x ", ppod.DescUseCase, []graph.Term{graph.IRI(ppod.UseCases["usecaseMeat"].IRI)}},
		{"flag other value", "usecaseMeat", "no", ppod.DescUseCase, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := m.MapRow(personsSpec(), row(2, map[string]string{"Name": "A. Lee", tt.header: tt.value}))
			require.NoError(t, err)
			assert.Equal(t, tt.want, objectsOf(res, tt.predicate))
		})
	}
}

func TestMapRow_MissingTableIsConfigError(t *testing.T) {
	ids, err := identity.NewBuilder(identity.Options{})
	require.NoError(t, err)
	m := NewMapper(ids, nil, nil)

	_, err = m.MapRow(personsSpec(), row(2, map[string]string{"Name": "A. Lee", "County": "Yolo"}))
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
	assert.ErrorIs(t, err, lookup.ErrUnknownTable)
}

func TestMapRoleRow_PeopleOrgDefaults(t *testing.T) {
	m, ids := newTestMapper(t)
	spec := peopleOrgTable()

	res, err := m.MapRoleRow(&spec, row(5, map[string]string{
		"Full Name": "A. Lee", "Organization": "Audubon California",
	}))
	require.NoError(t, err)

	assert.Equal(t, ppod.EntityTypeRole, res.EntityType)
	assert.Equal(t, UnstatedRole, res.Label)
	assert.Equal(t, "A. Lee | Audubon California | Unstated role", res.Key)
	assert.Equal(t, ppod.MetaType, res.Triples[0].Predicate)
	assert.Equal(t, graph.IRI(ppod.EntityTypeRole.ClassIRI()), res.Triples[0].Object)

	person, _ := ids.IdentifierFor(ppod.EntityTypePerson, "A. Lee")
	org, _ := ids.IdentifierFor(ppod.EntityTypeOrganization, "Audubon California")
	assert.Equal(t, []graph.Term{graph.IRI(person)}, objectsOf(res, ppod.RoleParticipant))
	assert.Equal(t, []graph.Term{graph.IRI(org)}, objectsOf(res, ppod.RoleOf))
	assert.Equal(t, []graph.Term{graph.Literal(UnstatedRole)}, objectsOf(res, ppod.DescTitle))
	assert.Len(t, res.Triples, 4)
}

func TestMapRoleRow_DistinctPositionsAreDistinctRoles(t *testing.T) {
	m, _ := newTestMapper(t)
	spec := peopleOrgTable()

	a, err := m.MapRoleRow(&spec, row(2, map[string]string{
		"Full Name": "A. Lee", "Organization": "Audubon", "Position (Verbatim)": "Director",
	}))
	require.NoError(t, err)
	b, err := m.MapRoleRow(&spec, row(3, map[string]string{
		"Full Name": "A. Lee", "Organization": "Audubon", "Position (Verbatim)": "Board Member",
	}))
	require.NoError(t, err)
	assert.NotEqual(t, a.Subject, b.Subject)
	assert.Equal(t, "Director", a.Label)
}

func TestMapRoleRow_MissingParticipantSkipsRow(t *testing.T) {
	m, _ := newTestMapper(t)
	spec := peopleProjTable()

	_, err := m.MapRoleRow(&spec, row(2, map[string]string{"Full Name": "", "Project": "Survey X"}))
	assert.ErrorIs(t, err, identity.ErrEmptyKey)
}

func TestMapRoleRow_OwnerRelation(t *testing.T) {
	m, ids := newTestMapper(t)
	spec := orgProjGMTable()

	res, err := m.MapRoleRow(&spec, row(2, map[string]string{
		"Organization": "Audubon", "Project": "Survey X",
		"GM_Name": "Clean Water Act", "orgGMRelation": "Implements",
	}))
	require.NoError(t, err)

	gm, _ := ids.IdentifierFor(ppod.EntityTypeGuideline, "Clean Water Act")
	var found bool
	for _, tr := range res.Triples {
		if tr.Subject == gm {
			found = true
			assert.Equal(t, ppod.RelationImplements, tr.Predicate)
			assert.Equal(t, graph.IRI(res.Subject), tr.Object)
		}
	}
	assert.True(t, found)
	assert.Equal(t, ParticipantLabel, res.Label)
}

func TestMapRelationRow(t *testing.T) {
	m, ids := newTestMapper(t)
	spec := orgGMTable()

	res, err := m.MapRelationRow(&spec, row(2, map[string]string{
		"Organization": "Audubon", "orgGMRelation": "Enforces", "GM_Name": "Clean Water Act",
	}))
	require.NoError(t, err)
	assert.False(t, res.Defines)
	require.Len(t, res.Triples, 1)

	org, _ := ids.IdentifierFor(ppod.EntityTypeOrganization, "Audubon")
	gm, _ := ids.IdentifierFor(ppod.EntityTypeGuideline, "Clean Water Act")
	assert.Equal(t, graph.Triple{Subject: org, Predicate: ppod.RelationEnforces, Object: graph.IRI(gm)}, res.Triples[0])
	assert.Len(t, res.References, 2)
}

func TestMapRelationRow_UnknownRelation(t *testing.T) {
	m, _ := newTestMapper(t)
	spec := orgGMTable()

	res, err := m.MapRelationRow(&spec, row(7, map[string]string{
		"Organization": "Audubon", "orgGMRelation": "Admires", "GM_Name": "Clean Water Act",
	}))
	require.NoError(t, err)
	assert.Empty(t, res.Triples)
	require.Len(t, res.Problems, 1)
	assert.Equal(t, RelationVocabulary, res.Problems[0].Vocabulary)
	assert.Equal(t, 7, res.Problems[0].Row)
}
