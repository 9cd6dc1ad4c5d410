package lookup

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countyFixture(t *testing.T) *Table {
	t.Helper()
	tbl := NewTable(CountyTable)
	require.NoError(t, tbl.add(Entry{Code: "Yolo", Value: "wd:Q1", Label: "Yolo County"}))
	require.NoError(t, tbl.add(Entry{Code: "Napa", Value: "wd:Q2", Label: "Napa County"}))
	return tbl
}

func TestResolve(t *testing.T) {
	s, err := NewSet(countyFixture(t))
	require.NoError(t, err)

	entries, err := s.Resolve(CountyTable, " Yolo ")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "wd:Q1", entries[0].Value)
}

func TestResolveAllExpands(t *testing.T) {
	s, err := NewSet(countyFixture(t))
	require.NoError(t, err)

	entries, err := s.Resolve(CountyTable, AllCode)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestResolveAllOnlyForGeography(t *testing.T) {
	tbl := NewTable("orgtype")
	s, err := NewSet(tbl)
	require.NoError(t, err)

	_, err = s.Resolve("orgtype", AllCode)
	assert.True(t, errors.Is(err, ErrUnknownCode))
}

func TestResolveErrors(t *testing.T) {
	s, err := NewSet(countyFixture(t))
	require.NoError(t, err)

	_, err = s.Resolve(CountyTable, "99999")
	assert.True(t, errors.Is(err, ErrUnknownCode))

	_, err = s.Resolve("habitat", "VRI")
	assert.True(t, errors.Is(err, ErrUnknownTable))
}

func TestSetRejectsDuplicateNames(t *testing.T) {
	_, err := NewSet(NewTable("a"), NewTable("a"))
	assert.Error(t, err)
}
