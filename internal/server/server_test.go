package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amishk599/autoapply/internal/adapter"
	"github.com/amishk599/autoapply/internal/apply"
	"github.com/amishk599/autoapply/internal/filter"
	"github.com/amishk599/autoapply/internal/model"
	"github.com/amishk599/autoapply/internal/pacing"
	"github.com/amishk599/autoapply/internal/search"
)

// --- Fakes ---

type fakeSearcher struct {
	query model.SearchQuery
	res   search.Result
	err   error
}

func (f *fakeSearcher) Search(_ context.Context, q model.SearchQuery) (search.Result, error) {
	f.query = q
	return f.res, f.err
}

type fakeApplier struct {
	ctx     context.Context
	jobs    []model.JobPosting
	cv      string
	profile model.Profile
	res     apply.Result
	err     error
}

func (f *fakeApplier) Apply(ctx context.Context, jobs []model.JobPosting, cv string, p model.Profile) (apply.Result, error) {
	f.ctx, f.jobs, f.cv, f.profile = ctx, jobs, cv, p
	return f.res, f.err
}

type constRand struct{ f float64 }

func (r constRand) IntN(int) int     { return 0 }
func (r constRand) Float64() float64 { return r.f }

// --- Helpers ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(s Searcher, a Applier) *Server {
	return New(Options{Addr: ":0", MaxUploadSize: 1 << 10}, s, a, discardLogger())
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if field != "" {
		fw, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, w.WriteField("note", "no file here"))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func do(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func postJSON(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return do(t, s, req)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Error
}

// --- Tests ---

func TestHealth(t *testing.T) {
	s := newTestServer(&fakeSearcher{}, &fakeApplier{})

	w := do(t, s, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(&fakeSearcher{}, &fakeApplier{})

	w := do(t, s, httptest.NewRequest(http.MethodOptions, "/auto-apply", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestUploadCV_ExtractsProfile(t *testing.T) {
	s := newTestServer(&fakeSearcher{}, &fakeApplier{})
	cv := "Jane Doe\njane@x.com\n555-123-4567\nManager with healthcare management experience"
	body, ct := multipartBody(t, "cv", "jane.txt", []byte(cv))

	req := httptest.NewRequest(http.MethodPost, "/upload-cv", body)
	req.Header.Set("Content-Type", ct)
	w := do(t, s, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp uploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, cv, resp.CVContent)
	assert.Equal(t, "Jane Doe", resp.Profile.Name)
	assert.Equal(t, "jane@x.com", resp.Profile.Email)
	assert.Equal(t, "555-123-4567", resp.Profile.Phone)
	assert.Equal(t, []string{"healthcare management"}, resp.Profile.Skills)
}

func TestUploadCV_EmptyFileUsesDefaults(t *testing.T) {
	s := newTestServer(&fakeSearcher{}, &fakeApplier{})
	body, ct := multipartBody(t, "cv", "blank.txt", nil)

	req := httptest.NewRequest(http.MethodPost, "/upload-cv", body)
	req.Header.Set("Content-Type", ct)
	w := do(t, s, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp uploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.CVContent)
	assert.Equal(t, "Healthcare Professional", resp.Profile.Name)
	assert.Empty(t, resp.Profile.Email)
	assert.Empty(t, resp.Profile.Skills)
}

func TestUploadCV_Errors(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		content  []byte
		wantCode int
		wantMsg  string
	}{
		{name: "missing file", field: "", wantCode: http.StatusBadRequest, wantMsg: "No file provided"},
		{name: "wrong field", field: "resume", content: []byte("x"), wantCode: http.StatusBadRequest, wantMsg: "No file provided"},
		{name: "too large", field: "cv", content: bytes.Repeat([]byte("a"), 4<<10), wantCode: http.StatusRequestEntityTooLarge, wantMsg: "File too large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(&fakeSearcher{}, &fakeApplier{})
			body, ct := multipartBody(t, tt.field, "cv.txt", tt.content)

			req := httptest.NewRequest(http.MethodPost, "/upload-cv", body)
			req.Header.Set("Content-Type", ct)
			w := do(t, s, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantMsg, decodeError(t, w))
		})
	}
}

func TestSearchJobs_PassesQuery(t *testing.T) {
	fs := &fakeSearcher{res: search.Result{Jobs: []model.JobPosting{{ID: "job-1"}}, TotalFound: 1}}
	s := newTestServer(fs, &fakeApplier{})

	w := postJSON(t, s, "/search-jobs", `{
		"jobTitle": "Manager",
		"location": "Boston",
		"keywords": "quality",
		"cvContent": "hospital",
		"userProfile": {"name": "Jane Doe", "skills": ["HIPAA"]}
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp searchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.TotalFound)
	assert.Equal(t, "job-1", resp.Jobs[0].ID)

	assert.Equal(t, "Manager", fs.query.JobTitle)
	assert.Equal(t, "Boston", fs.query.Location)
	assert.Equal(t, "quality", fs.query.Keywords)
	assert.Equal(t, "hospital", fs.query.CVContent)
	assert.Equal(t, "Jane Doe", fs.query.Profile.Name, "userProfile alias should be accepted")
}

func TestSearchJobs_Errors(t *testing.T) {
	t.Run("malformed body", func(t *testing.T) {
		s := newTestServer(&fakeSearcher{}, &fakeApplier{})
		w := postJSON(t, s, "/search-jobs", `{"jobTitle":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Error searching for jobs", decodeError(t, w))
	})
	t.Run("search failure", func(t *testing.T) {
		s := newTestServer(&fakeSearcher{err: errors.New("boom")}, &fakeApplier{})
		w := postJSON(t, s, "/search-jobs", `{"cvContent":"x"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Error searching for jobs", decodeError(t, w))
	})
}

func TestAutoApply_PassesBatch(t *testing.T) {
	fa := &fakeApplier{res: apply.Result{
		Applications: []model.Application{{ID: "app-1", Status: model.StatusApplied}},
		TotalApplied: 1,
	}}
	s := newTestServer(&fakeSearcher{}, fa)

	w := postJSON(t, s, "/auto-apply", `{
		"jobs": [{"id": "job-1", "jobTitle": "Hospital Administrator"}],
		"cvContent": "my cv",
		"profile": {"name": "Jane Doe"},
		"userProfile": {"name": "Ignored"}
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp applyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.TotalApplied)
	require.Len(t, resp.Applications, 1)
	assert.Equal(t, "applied", string(resp.Applications[0].Status))

	require.Len(t, fa.jobs, 1)
	assert.Equal(t, "Hospital Administrator", fa.jobs[0].JobTitle)
	assert.Equal(t, "my cv", fa.cv)
	assert.Equal(t, "Jane Doe", fa.profile.Name, "profile takes precedence over userProfile")
	assert.Nil(t, fa.ctx.Done(), "apply context should not be cancellable by the client")
}

func TestAutoApply_Errors(t *testing.T) {
	tests := []struct {
		name     string
		applier  *fakeApplier
		body     string
		wantCode int
	}{
		{name: "missing jobs", applier: &fakeApplier{}, body: `{"cvContent":"x"}`, wantCode: http.StatusBadRequest},
		{name: "malformed body", applier: &fakeApplier{}, body: `not json`, wantCode: http.StatusBadRequest},
		{name: "apply failure", applier: &fakeApplier{err: errors.New("boom")}, body: `{"jobs":[{"id":"job-1"}]}`, wantCode: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(&fakeSearcher{}, tt.applier)
			w := postJSON(t, s, "/auto-apply", tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, "Error submitting applications", decodeError(t, w))
		})
	}
}

func TestRecovery(t *testing.T) {
	s := newTestServer(&fakeSearcher{}, &fakeApplier{})
	s.engine.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	w := do(t, s, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decodeError(t, w))
}

// TestPipeline runs upload, search and apply against the real components.
func TestPipeline(t *testing.T) {
	logger := discardLogger()
	rnd := constRand{f: 0.5}
	searcher := search.NewSearcher(adapter.NewSyntheticAdapter(adapter.DefaultJobCount, adapter.DefaultPostingWindow, rnd), filter.DefaultThreshold, logger)
	applier := apply.NewApplier(apply.NewSimulatedSubmitter(rnd, apply.DefaultSuccessRate, logger), pacing.Policy{}, nil, logger)
	s := New(Options{MaxUploadSize: 1 << 20, ReadTimeout: time.Second, WriteTimeout: time.Second}, searcher, applier, logger)

	cv := "Jane Doe\njane@x.com\nHospital manager focused on patient care and budget management"
	body, ct := multipartBody(t, "cv", "cv.txt", []byte(cv))
	req := httptest.NewRequest(http.MethodPost, "/upload-cv", body)
	req.Header.Set("Content-Type", ct)
	w := do(t, s, req)
	require.Equal(t, http.StatusOK, w.Code)

	var up uploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &up))

	searchBody, err := json.Marshal(map[string]any{"jobTitle": "Manager", "cvContent": up.CVContent, "profile": up.Profile})
	require.NoError(t, err)
	w = postJSON(t, s, "/search-jobs", string(searchBody))
	require.Equal(t, http.StatusOK, w.Code)

	var found searchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))
	require.Equal(t, 20, found.TotalFound)

	applyBody, err := json.Marshal(map[string]any{"jobs": found.Jobs[:3], "cvContent": up.CVContent, "userProfile": up.Profile})
	require.NoError(t, err)
	w = postJSON(t, s, "/auto-apply", string(applyBody))
	require.Equal(t, http.StatusOK, w.Code)

	var applied applyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &applied))
	require.Len(t, applied.Applications, 3)
	assert.Equal(t, 3, applied.TotalApplied)
	for _, a := range applied.Applications {
		assert.Equal(t, model.StatusApplied, a.Status)
		assert.True(t, strings.HasPrefix(a.ID, "app-"))
		assert.NotEmpty(t, a.Customizations)
		assert.Contains(t, a.CoverLetter, "Jane Doe")
	}
}
