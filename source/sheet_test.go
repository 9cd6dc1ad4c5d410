package source

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSheet(t *testing.T) {
	grid := [][]string{
		{"Full Name", " Email ", "", "Phone"},
		{"A. Lee", "lee@example.org", "stray", "555"},
		{"B. Chan"},
		{"", "", "", ""},
		{"C. Diaz", "", "", ""},
		{"", "  "},
		{},
	}

	s, err := NewSheet("People", grid)
	require.NoError(t, err)

	assert.Equal(t, []string{"Full Name", "Email", "Phone"}, s.Header)
	require.Len(t, s.Rows, 4, "trailing blank rows are dropped, interior ones kept")

	assert.Equal(t, 2, s.Rows[0].Number)
	assert.Equal(t, "lee@example.org", s.Rows[0].Get("Email"))
	assert.Equal(t, "555", s.Rows[0].Get("Phone"))

	assert.Equal(t, "B. Chan", s.Rows[1].Get("Full Name"))
	assert.Equal(t, "", s.Rows[1].Get("Email"), "short rows are padded")

	assert.True(t, s.Rows[2].IsBlank())
	assert.Equal(t, 5, s.Rows[3].Number)
	assert.Equal(t, "", s.Rows[3].Get("Unknown"))
}

func TestNewSheetHeaderOnly(t *testing.T) {
	s, err := NewSheet("Tools", [][]string{{"Tool", "URL"}})
	require.NoError(t, err)
	assert.True(t, s.HasColumn("Tool"))
	assert.False(t, s.HasColumn("Alias"))
	assert.Empty(t, s.Rows)
}

func TestNewSheetEmpty(t *testing.T) {
	s, err := NewSheet("Empty", nil)
	require.NoError(t, err)
	assert.Empty(t, s.Header)
	assert.Empty(t, s.Rows)
}

func TestNewSheetDuplicateHeader(t *testing.T) {
	_, err := NewSheet("People", [][]string{{"Name", "Name"}})
	assert.True(t, errors.Is(err, ErrDuplicateHeader))
}

func TestStaticReader(t *testing.T) {
	r := Static{"People": {{"Full Name"}, {"A. Lee"}}}

	s, err := r.ReadSheet(context.Background(), "People")
	require.NoError(t, err)
	require.Len(t, s.Rows, 1)

	_, err = r.ReadSheet(context.Background(), "Projects")
	require.Error(t, err)
	assert.True(t, IsUnavailable(err))
	assert.True(t, errors.Is(err, ErrSheetNotFound))

	names, err := r.SheetNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"People"}, names)
}

func TestStaticReaderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Static{"People": {{"Full Name"}}}.ReadSheet(ctx, "People")
	assert.True(t, IsUnavailable(err))
	assert.True(t, errors.Is(err, context.Canceled))
}
