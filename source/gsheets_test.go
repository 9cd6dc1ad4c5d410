package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

const testSpreadsheetID = "sheet-123"

// newSheetsServer fakes the two Sheets API calls the reader makes.
func newSheetsServer(t *testing.T, sheets map[string][][]any) *httptest.Server {
	t.Helper()
	valuesPrefix := "/v4/spreadsheets/" + testSpreadsheetID + "/values/"
	metaPath := "/v4/spreadsheets/" + testSpreadsheetID

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, valuesPrefix):
			name := strings.TrimPrefix(r.URL.Path, valuesPrefix)
			name = strings.ReplaceAll(strings.Trim(name, "'"), "''", "'")
			values, ok := sheets[name]
			if !ok {
				w.WriteHeader(http.StatusBadRequest)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{
						"code":    400,
						"message": "Unable to parse range: " + name,
						"status":  "INVALID_ARGUMENT",
					},
				})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"range":          name + "!A1:Z100",
				"majorDimension": "ROWS",
				"values":         values,
			})
		case r.URL.Path == metaPath:
			list := make([]map[string]any, 0, len(sheets))
			for name := range sheets {
				list = append(list, map[string]any{"properties": map[string]any{"title": name}})
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"sheets": list})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestGoogleSheets(t *testing.T, srv *httptest.Server) *GoogleSheets {
	t.Helper()
	g, err := NewGoogleSheets(context.Background(), testSpreadsheetID,
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return g
}

func TestGoogleSheetsReadSheet(t *testing.T) {
	srv := newSheetsServer(t, map[string][][]any{
		"People": {
			{"Full Name", "Email"},
			{"A. Lee", "lee@example.org"},
			{"B. Chan"},
		},
	})
	g := newTestGoogleSheets(t, srv)

	s, err := g.ReadSheet(context.Background(), "People")
	require.NoError(t, err)

	assert.Equal(t, "People", s.Name)
	assert.Equal(t, []string{"Full Name", "Email"}, s.Header)
	require.Len(t, s.Rows, 2)
	assert.Equal(t, "lee@example.org", s.Rows[0].Get("Email"))
	assert.Equal(t, "", s.Rows[1].Get("Email"))
}

func TestGoogleSheetsQuotedName(t *testing.T) {
	srv := newSheetsServer(t, map[string][][]any{
		"Issues (Integrated)": {{"Suffix", "Issue"}, {"Water", "Water quality"}},
	})
	g := newTestGoogleSheets(t, srv)

	s, err := g.ReadSheet(context.Background(), "Issues (Integrated)")
	require.NoError(t, err)
	require.Len(t, s.Rows, 1)
}

func TestGoogleSheetsMissingSheet(t *testing.T) {
	srv := newSheetsServer(t, map[string][][]any{"People": {{"Full Name"}}})
	g := newTestGoogleSheets(t, srv)

	_, err := g.ReadSheet(context.Background(), "Projects")
	require.Error(t, err)
	assert.True(t, IsUnavailable(err))

	var ue *UnavailableError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "Projects", ue.Sheet)
}

func TestGoogleSheetsSheetNames(t *testing.T) {
	srv := newSheetsServer(t, map[string][][]any{"People": {{"Full Name"}}})
	g := newTestGoogleSheets(t, srv)

	names, err := g.SheetNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"People"}, names)
}

func TestNewGoogleSheetsRequiresID(t *testing.T) {
	_, err := NewGoogleSheets(context.Background(), " ")
	assert.Error(t, err)
}

func TestSheetRange(t *testing.T) {
	assert.Equal(t, "'People'", sheetRange("People"))
	assert.Equal(t, "'Bob''s sheet'", sheetRange("Bob's sheet"))
}
