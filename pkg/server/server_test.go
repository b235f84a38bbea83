package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/goleak"

	"github.com/ajxudir/skillsearch/pkg/config"
	"github.com/ajxudir/skillsearch/pkg/constants"
	"github.com/ajxudir/skillsearch/pkg/display"
	"github.com/ajxudir/skillsearch/pkg/testutil"
)

func newTestServer(t *testing.T, cfg *config.Config) (*Server, *bytes.Buffer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	var logs bytes.Buffer
	log := zerolog.New(&logs)
	return New(cfg, Options{Logger: &log, Debug: true}), &logs
}

// envelope decodes a Response with a typed payload.
type envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func do(s *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func uploadRequest(t *testing.T, name string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if name != "" {
		fw, err := mw.CreateFormFile("file", name)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func searchRequest(id string, body any) *http.Request {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+id+"/search", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// upload posts the reference scenario and returns the new session id.
func upload(t *testing.T, s *Server) string {
	t.Helper()
	w := do(s, uploadRequest(t, "scenario.csv", []byte(testutil.ScenarioCSV), nil))
	require.Equal(t, http.StatusOK, w.Code)
	env := decode[UploadView](t, w)
	require.Equal(t, CodeOK, env.Code, env.Message)
	return env.Data.SessionID
}

type searchView struct {
	Summary struct {
		Source     string   `json:"source"`
		ID         string   `json:"id"`
		Skills     []string `json:"skills"`
		Mode       string   `json:"mode"`
		Matched    int      `json:"matched"`
		Returned   int      `json:"returned"`
		Duplicates int      `json:"duplicates"`
	} `json:"summary"`
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
}

// TestUpload tests POST /api/uploads.
//
// It verifies:
//   - A valid CSV creates a session with preview, vocabulary and columns
//   - The preview is limited by display.preview_rows
//   - The load message names the file and row count
func TestUpload(t *testing.T) {
	s, _ := newTestServer(t, testutil.NewConfig().WithPreviewRows(2).Build())

	w := do(s, uploadRequest(t, "scenario.csv", []byte(testutil.ScenarioCSV), nil))
	require.Equal(t, http.StatusOK, w.Code)

	env := decode[UploadView](t, w)
	assert.Equal(t, CodeOK, env.Code)
	assert.Equal(t, "success", env.Message)
	assert.NotEmpty(t, env.Data.SessionID)
	assert.Equal(t, "scenario.csv", env.Data.FileName)
	assert.Equal(t, 3, env.Data.Rows)
	assert.Equal(t, testutil.StandardHeader, env.Data.Columns)
	assert.Len(t, env.Data.Preview, 2)
	assert.Equal(t, []string{"1", "10", "2", "21"}, env.Data.Skills)
	assert.Equal(t, "[ID]", env.Data.Summary.IDColumn)
	assert.False(t, env.Data.Cached)
	assert.Equal(t, "File loaded: scenario.csv (3 rows)", env.Data.Message)
	assert.Equal(t, 1, s.Store().Len())
}

// TestUploadErrors tests rejected uploads.
//
// It verifies:
//   - A missing file field returns code 1001
//   - An oversized file returns code 1003
//   - A header-only file returns code 1004 and the empty-file message
//   - An unreadable file returns code 1002
//   - Failed uploads do not leave sessions behind
func TestUploadErrors(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.Config
		file     string
		content  []byte
		wantCode int
		wantMsg  string
	}{
		{
			name:     "missing file",
			wantCode: CodeNoFile,
		},
		{
			name:     "too large",
			cfg:      testutil.NewConfig().WithMaxUploadSize(10).Build(),
			file:     "big.csv",
			content:  []byte(testutil.ScenarioCSV),
			wantCode: CodeTooLarge,
		},
		{
			name:     "header only",
			file:     "empty.csv",
			content:  []byte(testutil.HeaderOnlyCSV),
			wantCode: CodeEmptyTable,
			wantMsg:  display.TextEmptyFile,
		},
		{
			name:     "zero bytes",
			file:     "blank.csv",
			content:  []byte{},
			wantCode: CodeLoadFailed,
			wantMsg:  "Error loading file",
		},
		{
			name:     "broken xlsx",
			file:     "broken.xlsx",
			content:  []byte("PK\x03\x04 not a workbook"),
			wantCode: CodeLoadFailed,
			wantMsg:  "Error loading file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t, tt.cfg)
			w := do(s, uploadRequest(t, tt.file, tt.content, nil))
			require.Equal(t, http.StatusOK, w.Code)

			env := decode[json.RawMessage](t, w)
			assert.Equal(t, tt.wantCode, env.Code)
			assert.Contains(t, env.Message, tt.wantMsg)
			assert.Equal(t, 0, s.Store().Len())
		})
	}
}

// TestUploadXLSX tests an xlsx upload.
func TestUploadXLSX(t *testing.T) {
	s, _ := newTestServer(t, nil)

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]string{"[ID]", "[Code Mapping Skill]", "OPCode"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]string{"7", "x, y", "Q"}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	w := do(s, uploadRequest(t, "book.xlsx", buf.Bytes(), nil))
	env := decode[UploadView](t, w)
	require.Equal(t, CodeOK, env.Code, env.Message)
	assert.Equal(t, 1, env.Data.Rows)
	assert.Equal(t, []string{"x", "y"}, env.Data.Skills)
}

// TestUploadIntoSession tests re-uploading into an existing session.
//
// It verifies:
//   - Identical bytes reuse the table and keep the session state
//   - Different bytes reset the session to Idle
//   - An unknown session_id returns 404
func TestUploadIntoSession(t *testing.T) {
	s, _ := newTestServer(t, nil)
	id := upload(t, s)

	w := do(s, searchRequest(id, SearchRequest{ID: "300001"}))
	require.Equal(t, CodeOK, decode[json.RawMessage](t, w).Code)

	w = do(s, uploadRequest(t, "scenario.csv", []byte(testutil.ScenarioCSV), map[string]string{"session_id": id}))
	env := decode[UploadView](t, w)
	require.Equal(t, CodeOK, env.Code)
	assert.Equal(t, id, env.Data.SessionID)
	assert.True(t, env.Data.Cached)

	sess, ok := s.Store().Get(id)
	require.True(t, ok)
	assert.Equal(t, constants.StateDone, sess.State())

	other := testutil.NewCSV().Row("9", "z", "Z", "").Bytes()
	w = do(s, uploadRequest(t, "other.csv", other, map[string]string{"session_id": id}))
	env = decode[UploadView](t, w)
	require.Equal(t, CodeOK, env.Code)
	assert.False(t, env.Data.Cached)
	assert.Equal(t, constants.StateIdle, sess.State())
	assert.Equal(t, 1, s.Store().Len())

	w = do(s, uploadRequest(t, "scenario.csv", []byte(testutil.ScenarioCSV), map[string]string{"session_id": "nope"}))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestSearch tests POST /api/sessions/:id/search.
//
// It verifies:
//   - ID and skill criteria are AND-combined and skills match whole tokens
//   - Rows keep source column order as JSON objects
//   - The message reports the result count
func TestSearch(t *testing.T) {
	s, _ := newTestServer(t, nil)
	id := upload(t, s)

	w := do(s, searchRequest(id, SearchRequest{ID: "200027", Skills: []string{"1"}}))
	require.Equal(t, http.StatusOK, w.Code)

	env := decode[searchView](t, w)
	require.Equal(t, CodeOK, env.Code, env.Message)
	assert.Equal(t, "Results (1 row)", env.Message)
	assert.Equal(t, "scenario.csv", env.Data.Summary.Source)
	assert.Equal(t, "200027", env.Data.Summary.ID)
	assert.Equal(t, []string{"1"}, env.Data.Summary.Skills)
	assert.Equal(t, constants.MatchModeToken, env.Data.Summary.Mode)
	require.Len(t, env.Data.Rows, 1)
	assert.Equal(t, "first", env.Data.Rows[0]["Description"])

	raw := w.Body.String()
	assert.Less(t, strings.Index(raw, `"[ID]"`), strings.Index(raw, `"OPCode"`))
}

// TestSearchOutcomes tests search edge cases.
//
// It verifies:
//   - Empty criteria return code 1005 and never all rows
//   - An identifier is matched exactly
//   - Duplicates on (ID, OPCode) are dropped
//   - An unknown mode is rejected with code 1006
//   - A malformed body is rejected with code 1006
func TestSearchOutcomes(t *testing.T) {
	s, _ := newTestServer(t, nil)
	id := upload(t, s)

	w := do(s, searchRequest(id, SearchRequest{ID: "  ", Skills: []string{" "}}))
	env := decode[searchView](t, w)
	assert.Equal(t, CodeMissingCriteria, env.Code)
	assert.Equal(t, display.TextMissingCriteria, env.Message)
	assert.Empty(t, env.Data.Rows)

	w = do(s, searchRequest(id, SearchRequest{ID: "2000271"}))
	env = decode[searchView](t, w)
	assert.Equal(t, CodeOK, env.Code)
	assert.Equal(t, display.TextNoResults, env.Message)
	assert.Empty(t, env.Data.Rows)

	w = do(s, searchRequest(id, SearchRequest{Skills: []string{"10"}}))
	env = decode[searchView](t, w)
	assert.Equal(t, 2, env.Data.Summary.Matched)
	assert.Equal(t, 1, env.Data.Summary.Returned)
	assert.Equal(t, 1, env.Data.Summary.Duplicates)

	w = do(s, searchRequest(id, SearchRequest{Skills: []string{"1"}, Mode: "fuzzy"}))
	assert.Equal(t, CodeBadRequest, decode[searchView](t, w).Code)

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+id+"/search", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, CodeBadRequest, decode[searchView](t, do(s, req)).Code)
}

// TestSearchWordBoundaryMode tests switching the matcher per request.
func TestSearchWordBoundaryMode(t *testing.T) {
	s, _ := newTestServer(t, nil)
	id := upload(t, s)

	w := do(s, searchRequest(id, SearchRequest{Skills: []string{"1"}, Mode: constants.MatchModeWordBoundary}))
	env := decode[searchView](t, w)
	require.Equal(t, CodeOK, env.Code, env.Message)
	assert.Equal(t, constants.MatchModeWordBoundary, env.Data.Summary.Mode)
	require.Len(t, env.Data.Rows, 1)
	assert.Equal(t, "first", env.Data.Rows[0]["Description"])
}

// TestSessionEndpoints tests session inspection, reset and deletion.
//
// It verifies:
//   - GET reports state, file name, rows and the last criteria
//   - The skills endpoint returns the vocabulary
//   - Reset returns the session to Idle and keeps the table
//   - DELETE removes the session; later requests get 404
func TestSessionEndpoints(t *testing.T) {
	s, _ := newTestServer(t, nil)
	id := upload(t, s)

	w := do(s, httptest.NewRequest(http.MethodGet, "/api/sessions/"+id, nil))
	view := decode[SessionView](t, w)
	assert.Equal(t, constants.StateIdle, view.Data.State)
	assert.Equal(t, "scenario.csv", view.Data.FileName)
	assert.Equal(t, 3, view.Data.Rows)
	assert.Nil(t, view.Data.Results)

	w = do(s, httptest.NewRequest(http.MethodGet, "/api/sessions/"+id+"/skills", nil))
	skills := decode[struct {
		Skills []string `json:"skills"`
	}](t, w)
	assert.Equal(t, []string{"1", "10", "2", "21"}, skills.Data.Skills)

	do(s, searchRequest(id, SearchRequest{ID: "300001"}))
	view = decode[SessionView](t, do(s, httptest.NewRequest(http.MethodGet, "/api/sessions/"+id, nil)))
	assert.Equal(t, constants.StateDone, view.Data.State)
	assert.Equal(t, "300001", view.Data.ID)
	require.NotNil(t, view.Data.Results)
	assert.Equal(t, 1, *view.Data.Results)

	do(s, searchRequest(id, SearchRequest{}))
	view = decode[SessionView](t, do(s, httptest.NewRequest(http.MethodGet, "/api/sessions/"+id, nil)))
	assert.Equal(t, constants.StateError, view.Data.State)
	assert.Equal(t, display.TextMissingCriteria, view.Data.Error)

	view = decode[SessionView](t, do(s, httptest.NewRequest(http.MethodPost, "/api/sessions/"+id+"/reset", nil)))
	assert.Equal(t, constants.StateIdle, view.Data.State)
	assert.Equal(t, 3, view.Data.Rows)

	w = do(s, httptest.NewRequest(http.MethodDelete, "/api/sessions/"+id, nil))
	assert.Equal(t, CodeOK, decode[json.RawMessage](t, w).Code)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/sessions/"+id, nil),
		httptest.NewRequest(http.MethodGet, "/api/sessions/"+id+"/skills", nil),
		httptest.NewRequest(http.MethodDelete, "/api/sessions/"+id, nil),
		searchRequest(id, SearchRequest{ID: "1"}),
	} {
		w := do(s, req)
		assert.Equal(t, http.StatusNotFound, w.Code, req.URL.Path)
		assert.Equal(t, CodeNotFound, decode[json.RawMessage](t, w).Code)
	}
}

// TestExport tests GET /api/sessions/:id/export.
//
// It verifies:
//   - Exporting before a search returns code 1008
//   - CSV and xlsx downloads carry the last result
//   - Unknown formats are rejected
func TestExport(t *testing.T) {
	s, _ := newTestServer(t, nil)
	id := upload(t, s)

	w := do(s, httptest.NewRequest(http.MethodGet, "/api/sessions/"+id+"/export", nil))
	assert.Equal(t, CodeNoResult, decode[json.RawMessage](t, w).Code)

	do(s, searchRequest(id, SearchRequest{ID: "200027", Skills: []string{"1"}}))

	w = do(s, httptest.NewRequest(http.MethodGet, "/api/sessions/"+id+"/export?format=csv", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="scenario_results.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "[ID],[Code Mapping Skill],OPCode,Description\n200027,\"1, 10\",A,first\n", w.Body.String())

	w = do(s, httptest.NewRequest(http.MethodGet, "/api/sessions/"+id+"/export?format=xlsx", nil))
	require.Equal(t, http.StatusOK, w.Code)
	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "first", rows[1][3])

	for _, format := range []string{"table", "pdf"} {
		w = do(s, httptest.NewRequest(http.MethodGet, "/api/sessions/"+id+"/export?format="+format, nil))
		assert.Equal(t, CodeBadRequest, decode[json.RawMessage](t, w).Code, format)
	}
}

// TestMiddleware tests request logging, request ids, CORS and unknown routes.
func TestMiddleware(t *testing.T) {
	s, logs := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w := do(s, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, `{"status":"ok","sessions":0}`, w.Body.String())

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(logs.Bytes()), &line))
	assert.Equal(t, "abc", line["request_id"])
	assert.Equal(t, "/healthz", line["path"])
	assert.EqualValues(t, 200, line["status"])

	w = do(s, httptest.NewRequest(http.MethodOptions, "/api/uploads", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	w = do(s, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestStoreEviction tests that the oldest session is dropped at capacity.
func TestStoreEviction(t *testing.T) {
	s, _ := newTestServer(t, testutil.NewConfig().WithMaxSessions(1).Build())
	first := upload(t, s)
	second := upload(t, s)
	assert.NotEqual(t, first, second)

	w := do(s, httptest.NewRequest(http.MethodGet, "/api/sessions/"+first, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(s, httptest.NewRequest(http.MethodGet, "/api/sessions/"+second, nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

// TestRun tests that Run stops cleanly when its context is cancelled.
func TestRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	s, _ := newTestServer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
