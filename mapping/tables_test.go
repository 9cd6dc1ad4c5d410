package mapping

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/ppodgraph/lookup"
	"github.com/c360studio/ppodgraph/source"
	"github.com/c360studio/ppodgraph/vocabulary/ppod"
)

func TestDefaultTables_Validate(t *testing.T) {
	tables := DefaultTables()
	require.NoError(t, tables.Validate())
	assert.Equal(t, TablesVersion, tables.Version)

	sheets := tables.Sheets()
	require.GreaterOrEqual(t, len(sheets), 4)
	assert.Equal(t, []string{SheetPersons, SheetOrganizations, SheetProjects, SheetDatasets}, sheets[:4])

	vocabs := tables.Vocabularies()
	assert.Contains(t, vocabs, lookup.CountyTable)
	assert.Contains(t, vocabs, lookup.HabitatTable)
	assert.Contains(t, vocabs, "orgtype")
}

func TestTables_ValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		tables Tables
	}{
		{
			name: "unregistered predicate",
			tables: Tables{Entities: []SheetSpec{{
				Sheet: "x", EntityType: ppod.EntityTypePerson, KeyHeader: "Name",
				Fields: []FieldSpec{literal("Email", "ppod.nope.email")},
			}}},
		},
		{
			name: "duplicate sheet",
			tables: Tables{Entities: []SheetSpec{
				{Sheet: "x", EntityType: ppod.EntityTypePerson, KeyHeader: "Name"},
				{Sheet: "x", EntityType: ppod.EntityTypeProject, KeyHeader: "Title"},
			}},
		},
		{
			name:   "no key column",
			tables: Tables{Entities: []SheetSpec{{Sheet: "x", EntityType: ppod.EntityTypePerson}}},
		},
		{
			name: "bad reference target",
			tables: Tables{Entities: []SheetSpec{{
				Sheet: "x", EntityType: ppod.EntityTypePerson, KeyHeader: "Name",
				Fields: []FieldSpec{ref("PI", ppod.ProjectLeadIndividual, "robot")},
			}}},
		},
		{
			name: "column mapped twice",
			tables: Tables{Entities: []SheetSpec{{
				Sheet: "x", EntityType: ppod.EntityTypePerson, KeyHeader: "Name",
				Fields: []FieldSpec{literal("Email", ppod.PersonEmail), literal("Email", ppod.DescNote)},
			}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tables.Validate()
			require.Error(t, err)
			assert.True(t, IsConfigError(err))
		})
	}
}

func TestSheetSpec_CheckHeader(t *testing.T) {
	spec := personsSpec()

	sheet, err := source.NewSheet("People", [][]string{{"Name", "County", "Shoe Size"}})
	require.NoError(t, err)
	check, err := spec.CheckHeader(sheet)
	require.NoError(t, err)
	assert.Contains(t, check.Absent, "Email")
	assert.Equal(t, []string{"Shoe Size"}, check.Unmapped)

	sheet, err = source.NewSheet("People", [][]string{{"County", "Email"}})
	require.NoError(t, err)
	_, err = spec.CheckHeader(sheet)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))

	var missing *MissingHeadersError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"Name"}, missing.Headers)
}

func TestRoleSpec_CheckHeaderRequiresKeysAndOwner(t *testing.T) {
	spec := orgProjGMTable()

	sheet, err := source.NewSheet("OrgProjGM", [][]string{{"Organization", "Project"}})
	require.NoError(t, err)
	_, err = spec.CheckHeader(sheet)

	var missing *MissingHeadersError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"GM_Name", "orgGMRelation"}, missing.Headers)
}
