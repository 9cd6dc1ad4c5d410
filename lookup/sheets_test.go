package lookup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/ppodgraph/identity"
	"github.com/c360studio/ppodgraph/vocabulary/ppod"
)

func upper(s string) string { return strings.ToUpper(strings.ReplaceAll(s, " ", "_")) }

func TestVocabularyFromTerms(t *testing.T) {
	tbl, err := VocabularyFromTerms("orgtype", "oty",
		[]string{"Nonprofit", " ", "All", "Agency", "Nonprofit", " Tribe "}, upper)
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.Len())
	e, ok := tbl.Lookup("Tribe")
	require.True(t, ok)
	assert.Equal(t, ppod.TermsNamespace+"oty_TRIBE", e.Value)
	assert.Equal(t, "Tribe", e.Label)

	_, ok = tbl.Lookup(AllCode)
	assert.False(t, ok)

	codes := make([]string, 0, tbl.Len())
	for _, e := range tbl.Entries() {
		codes = append(codes, e.Code)
	}
	assert.Equal(t, []string{"Nonprofit", "Agency", "Tribe"}, codes)
}

func TestVocabularyFromTermsSharedToken(t *testing.T) {
	_, err := VocabularyFromTerms("orgtype", "oty", []string{"Land Trust", "Land_Trust"}, upper)
	assert.Error(t, err)
}

func TestVocabularyFromTermsIdentifierTokens(t *testing.T) {
	encoded, err := VocabularyFromTerms("orgtype", "oty", []string{"Nonprofit"}, identity.Encode)
	require.NoError(t, err)
	e, _ := encoded.Lookup("Nonprofit")
	assert.Equal(t, ppod.TermsNamespace+"oty_Nonprofit", e.Value)

	hashed, err := VocabularyFromTerms("orgtype", "oty", []string{"Audubon California"}, identity.ShortHash)
	require.NoError(t, err)
	e, _ = hashed.Lookup("Audubon California")
	assert.Equal(t, ppod.TermsNamespace+"oty_167f6c", e.Value)
}

func TestIssueTableFrom(t *testing.T) {
	integrated := IssueSource{
		Namespace: "http://example.org/integrated#",
		Rows:      [][2]string{{"water", "Water"}, {"", "Orphan"}, {"soil", "Soil health"}},
	}
	component := IssueSource{
		Namespace: "http://example.org/component#",
		Rows:      [][2]string{{"water2", "Water"}, {"fire", "Fire"}},
	}

	tbl := IssueTableFrom(integrated, component)
	assert.Equal(t, IssueTable, tbl.Name)
	assert.Equal(t, 3, tbl.Len())

	water, ok := tbl.Lookup("Water")
	require.True(t, ok)
	assert.Equal(t, "http://example.org/integrated#water", water.Value)

	fire, ok := tbl.Lookup("Fire")
	require.True(t, ok)
	assert.Equal(t, "http://example.org/component#fire", fire.Value)

	_, ok = tbl.Lookup("Orphan")
	assert.False(t, ok)
}
