package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	r := NewRecorder("", "", nil)

	r.ObserveRow("persons", "mapped")
	r.ObserveRow("persons", "mapped")
	r.ObserveRow("persons", "skipped")
	r.ObserveStatements(42)
	r.ObserveProblem("county")
	r.ObserveRun(1500*time.Millisecond, true)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.rows.WithLabelValues("persons", "mapped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.rows.WithLabelValues("persons", "skipped")))
	assert.Equal(t, 42.0, testutil.ToFloat64(r.statements))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.problems.WithLabelValues("county")))
	assert.Equal(t, 1.5, testutil.ToFloat64(r.duration))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("success")))
	assert.Positive(t, testutil.ToFloat64(r.lastSuccess))
}

func TestRecorderFailedRun(t *testing.T) {
	r := NewRecorder("", "", nil)
	r.ObserveRun(time.Second, false)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("failure")))
	assert.Zero(t, testutil.ToFloat64(r.lastSuccess))
}

func TestRecorderRegistry(t *testing.T) {
	r := NewRecorder("", "", nil)
	r.ObserveRow("projects", "mapped")

	n, err := testutil.GatherAndCount(r.Registry(), "ppodgraph_rows_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPushDisabled(t *testing.T) {
	r := NewRecorder("", "", nil)
	assert.NoError(t, r.Push(context.Background()))
}

func TestPush(t *testing.T) {
	var method, path, body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		method, path = req.Method, req.URL.Path
		buf := new(strings.Builder)
		_, _ = io.Copy(buf, req.Body)
		body = buf.String()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := NewRecorder(srv.URL, "ppod-nightly", nil)
	r.ObserveStatements(3)
	require.NoError(t, r.Push(context.Background()))

	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/metrics/job/ppod-nightly", path)
	assert.NotEmpty(t, body)
}

func TestPushError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := NewRecorder(srv.URL, "", nil)
	assert.Error(t, r.Push(context.Background()))
}
