package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/docfold/docfold/internal/adapter/storage"
	"github.com/docfold/docfold/pkg/model"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	s, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	r := mux.NewRouter()
	err = Router{
		Storage:      s,
		SessionStore: sessions.NewCookieStore([]byte("test-key")),
		Admins:       model.AdminUsers{{Username: "admin", Password: "secret"}},
	}.Build(r)
	require.NoError(t, err)

	return r
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.SetBasicAuth("admin", "secret")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouterDocumentLifecycle(t *testing.T) {
	h := newTestRouter(t)

	rec := doRequest(t, h, "PUT", "/docs", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, h, "PUT", "/docs/a", `{"document_id": "Resume", "version": 6}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var put DocResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &put))
	assert.True(t, put.Ok)
	assert.Equal(t, "a", put.ID)
	assert.NotEmpty(t, put.Rev)

	// update without rev conflicts
	rec = doRequest(t, h, "PUT", "/docs/a", `{"version": 7}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, h, "GET", "/docs/a", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "Resume", doc["document_id"])

	rec = doRequest(t, h, "GET", "/docs/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterUnauthorized(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest("GET", "/_all_dbs", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouterMapReduce(t *testing.T) {
	h := newTestRouter(t)

	rec := doRequest(t, h, "PUT", "/docs", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	for id, body := range map[string]string{
		"a": `{"document_id": "mongoDB How-To", "version": 1}`,
		"b": `{"document_id": "mongoDB How-To", "version": 1.1}`,
		"c": `{"document_id": "Schema", "version": 0.9}`,
		"d": `{"document_id": "Schema", "version": 1}`,
		"e": `{"document_id": "Resume", "version": 6}`,
	} {
		rec := doRequest(t, h, "PUT", "/docs/"+id, body)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec = doRequest(t, h, "POST", "/docs/_map_reduce",
		`{"name": "extremes", "reduce": "_extremes", "out": "versions"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var run MapReduceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.True(t, run.Ok)
	assert.Equal(t, "versions", run.Result)
	assert.Equal(t, 5, run.Input)
	assert.Equal(t, 5, run.Emitted)
	assert.Equal(t, 3, run.Output)

	rec = doRequest(t, h, "GET", "/docs/_result/versions", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res ResultResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, 3, res.TotalRows)
	require.Len(t, res.Rows, 3)

	assert.Equal(t, "Resume", res.Rows[0].ID)
	assert.Equal(t, float64(6), res.Rows[0].Value)

	assert.Equal(t, "Schema", res.Rows[1].ID)
	schema, ok := res.Rows[1].Value.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), schema["max"])
	assert.Equal(t, 0.9, schema["min"])

	assert.Equal(t, "mongoDB How-To", res.Rows[2].ID)
	howto, ok := res.Rows[2].Value.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 1.1, howto["max"])
	assert.Equal(t, float64(1), howto["min"])
}

func TestRouterResultCollections(t *testing.T) {
	h := newTestRouter(t)

	rec := doRequest(t, h, "PUT", "/docs", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, h, "PUT", "/docs/a", `{"document_id": "Resume", "version": 6}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, h, "POST", "/docs/_map_reduce",
		`{"name": "extremes", "reduce": "_extremes", "out": "versions"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, "GET", "/docs/_result", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var collections []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &collections))
	assert.Equal(t, []string{"versions"}, collections)

	rec = doRequest(t, h, "DELETE", "/docs/_result/versions", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, "GET", "/docs/_result", "")
	require.Equal(t, http.StatusOK, rec.Code)
	collections = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &collections))
	assert.Empty(t, collections)
}

func TestRouterMapReduceInvalidJob(t *testing.T) {
	h := newTestRouter(t)

	rec := doRequest(t, h, "PUT", "/docs", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	// neither a name nor an output collection
	rec = doRequest(t, h, "POST", "/docs/_map_reduce", `{"reduce": "_max"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouterPutDocumentMalformedRev(t *testing.T) {
	h := newTestRouter(t)

	rec := doRequest(t, h, "PUT", "/docs", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	// a fresh doc carrying a rev without a sequence is stored at 1
	rec = doRequest(t, h, "PUT", "/docs/a", `{"_rev": "abc", "version": 1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var put DocResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &put))
	assert.True(t, put.Ok)
	assert.True(t, strings.HasPrefix(put.Rev, "1-"))
}
