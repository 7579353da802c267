package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examprep/backend/internal/api"
	"github.com/examprep/backend/internal/service"
	"github.com/examprep/backend/internal/stats"
	"github.com/examprep/backend/internal/store"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	logger := slog.New(slog.DiscardHandler)
	svc := service.NewStatsService(s, logger, 2, stats.Options{})
	mux := http.NewServeMux()
	api.RegisterRoutes(mux, api.NewHandler(s, svc, logger))

	srv := httptest.NewServer(api.Logging(logger)(api.CORS(mux)))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func TestSubjectCRUD(t *testing.T) {
	srv := newServer(t)

	resp, body := do(t, srv, http.MethodPost, "/subjects", `{
		"name": "Português",
		"discipline_filter": "Português",
		"board_filter": null,
		"topics": [
			{"name": "Gramática", "filter": ["Gramática"]},
			{"name": "Texto", "filter": "[\"Redação\",\"Literatura\"]"}
		]
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var created api.SubjectResponse
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Len(t, created.Topics, 2)

	resp, body = do(t, srv, http.MethodGet, "/subjects/"+created.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"board_filter":null`)
	assert.Contains(t, string(body), `"Gramática"`)

	resp, _ = do(t, srv, http.MethodPut, "/subjects/"+created.ID, `{"name": "Língua Portuguesa", "topics": []}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = do(t, srv, http.MethodGet, "/subjects", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []api.SubjectResponse
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Língua Portuguesa", list[0].Name)
	assert.Empty(t, list[0].Topics)

	resp, _ = do(t, srv, http.MethodDelete, "/subjects/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodGet, "/subjects/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateSubject_Validation(t *testing.T) {
	srv := newServer(t)

	resp, _ := do(t, srv, http.MethodPost, "/subjects", `{"name": ""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodPost, "/subjects", `{"name": "X", "topics": [{"name": ""}]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodPost, "/subjects", `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSubjectStats(t *testing.T) {
	srv := newServer(t)

	_, body := do(t, srv, http.MethodPost, "/subjects", `{
		"name": "Português",
		"discipline_filter": "Português",
		"topics": [
			{"name": "Gramática", "filter": ["Gramática"]},
			{"name": "Texto", "filter": [["Redação", "Literatura"]]}
		]
	}`)
	var created api.SubjectResponse
	require.NoError(t, json.Unmarshal(body, &created))

	answers := []string{
		`{"user_id":"u1","question_id":"q1","discipline":"Português","topic_tags":["Gramática"],"is_correct":true}`,
		`{"user_id":"u1","question_id":"q2","discipline":"Português","topic_tags":["Gramática"],"is_correct":true}`,
		`{"user_id":"u1","question_id":"q3","discipline":"Português","topic_tags":["Redação"],"is_correct":false}`,
		`{"user_id":"u1","question_id":"q4","discipline":"Matemática","topic_tags":["Álgebra"],"is_correct":true}`,
		`{"user_id":"u1","question_id":"q5","discipline":"Matemática","topic_tags":["Álgebra"],"is_correct":false}`,
	}
	for _, a := range answers {
		resp, body := do(t, srv, http.MethodPost, "/answers", a)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	}

	resp, body := do(t, srv, http.MethodGet, "/users/u1/subjects/"+created.ID+"/stats", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var got api.StatsResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, stats.NewResult(3, 2), got.Overall)
	require.Len(t, got.PerTopic, 2)
	assert.Equal(t, "Gramática", got.PerTopic[0].Name)
	assert.Equal(t, stats.NewResult(2, 2), got.PerTopic[0].Result)
	assert.Equal(t, stats.NewResult(1, 0), got.PerTopic[1].Result)
	assert.False(t, got.Partial)

	resp, _ = do(t, srv, http.MethodGet, "/users/u1/subjects/missing/stats", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUserSummaries(t *testing.T) {
	srv := newServer(t)

	do(t, srv, http.MethodPost, "/subjects", `{"name": "Português", "discipline_filter": "Português"}`)
	do(t, srv, http.MethodPost, "/subjects", `{"name": "Matemática", "discipline_filter": ["Matemática"]}`)
	do(t, srv, http.MethodPost, "/questions", `{"discipline": "Português"}`)
	do(t, srv, http.MethodPost, "/questions", `{"discipline": "Português"}`)
	do(t, srv, http.MethodPost, "/questions", `{"discipline": "Matemática"}`)
	do(t, srv, http.MethodPost, "/answers", `{"user_id":"u1","question_id":"q1","discipline":"Matemática","is_correct":true}`)

	resp, body := do(t, srv, http.MethodGet, "/users/u1/stats", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var got []api.SubjectSummaryResponse
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Português", got[0].Name)
	assert.Equal(t, 67, got[0].Importance)
	assert.Equal(t, 2, got[0].PoolSize)
	assert.Zero(t, got[0].Overall.TotalAttempts)
	assert.Equal(t, "Matemática", got[1].Name)
	assert.Equal(t, 33, got[1].Importance)
	assert.Equal(t, 100, got[1].Overall.SuccessRate)
}

func TestRecordAnswer_Validation(t *testing.T) {
	srv := newServer(t)

	resp, _ := do(t, srv, http.MethodPost, "/answers", `{"question_id": "q1"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodPost, "/questions", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNormalizeFilter(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		body    string
		terms   []string
		applied bool
	}{
		{`{"value": null}`, []string{}, false},
		{`{"value": "   "}`, []string{}, false},
		{`{"value": "[\"a\",\"b\"]"}`, []string{"a", "b"}, true},
		{`{"value": [["a","b"],"c"]}`, []string{"a", "b", "c"}, true},
		{`{"value": "not json ["}`, []string{"not json ["}, true},
	}

	for _, tt := range tests {
		resp, body := do(t, srv, http.MethodPost, "/filters/normalize", tt.body)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got api.NormalizeResponse
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, tt.terms, got.Terms, tt.body)
		assert.Equal(t, tt.applied, got.Applied, tt.body)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newServer(t)

	resp, _ := do(t, srv, http.MethodOptions, "/subjects", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
