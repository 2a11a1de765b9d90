package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragfront/ragfront-core/internal/adapters/driven/blob"
	"github.com/ragfront/ragfront-core/internal/adapters/driven/fs"
	"github.com/ragfront/ragfront-core/internal/core/domain"
	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
)

func newTestServer(t *testing.T, query *stubQueryService) (*Server, driven.ProjectStore) {
	t.Helper()
	store := fs.NewProjectStore(t.TempDir())
	cfg := DefaultConfig()
	cfg.Version = "test"
	return NewServer(cfg, query, newStubProjectService("demo"), store, blob.NewSigner("secret", "http://localhost")), store
}

func doJSON(t *testing.T, h http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndVersion(t *testing.T) {
	srv, _ := newTestServer(t, &stubQueryService{})

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/version", "", nil)
	assert.JSONEq(t, `{"version":"test"}`, rec.Body.String())
}

func TestLegacySearch_Success(t *testing.T) {
	query := &stubQueryService{searchEnv: &domain.SearchEnvelope{
		Message:  "ok",
		Response: "Paris",
		Query:    "capital?",
	}}
	srv, _ := newTestServer(t, query)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/local_search",
		`{"query":"capital?","project_name":"demo"}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var env domain.SearchEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "ok", env.Message)
	assert.Equal(t, "Paris", env.Response)

	// The endpoint fixes the mode regardless of the body.
	require.NotNil(t, query.searchReq)
	assert.Equal(t, domain.SearchModeLocal, query.searchReq.Mode)
}

func TestLegacySearch_ModePerEndpoint(t *testing.T) {
	for path, mode := range map[string]domain.SearchMode{
		"/api/local_search":  domain.SearchModeLocal,
		"/api/global_search": domain.SearchModeGlobal,
		"/api/drift_search":  domain.SearchModeDrift,
	} {
		query := &stubQueryService{searchEnv: &domain.SearchEnvelope{Message: "ok"}}
		srv, _ := newTestServer(t, query)
		doJSON(t, srv.Handler(), http.MethodPost, path, `{"query":"q","project_name":"demo"}`, nil)
		require.NotNil(t, query.searchReq, path)
		assert.Equal(t, mode, query.searchReq.Mode, path)
	}
}

func TestLegacySearch_AllFailuresAreHTTP200(t *testing.T) {
	cases := map[string]struct {
		query *stubQueryService
		body  string
	}{
		"invalid body":  {&stubQueryService{}, "{not json"},
		"auth failure":  {&stubQueryService{apiKeyErr: domain.ErrInvalidAPIKey}, `{"query":"q"}`},
		"service error": {&stubQueryService{searchErr: domain.ErrEmptyQuery}, `{"query":"q"}`},
		"missing artifact": {&stubQueryService{
			searchErr: &domain.MissingArtifactError{Table: domain.TableEntities},
		}, `{"query":"q"}`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv, _ := newTestServer(t, tc.query)
			rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/local_search", tc.body, nil)

			assert.Equal(t, http.StatusOK, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestProjectAdmin(t *testing.T) {
	srv, _ := newTestServer(t, &stubQueryService{})
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodGet, "/api/projects", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"projects":["demo"]}`, rec.Body.String())

	rec = doJSON(t, h, http.MethodPost, "/api/projects", `{"name":"fresh"}`, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/projects", `{"name":"demo"}`, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/projects", `{"name":"bad name"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/projects/demo/status", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"built":true}`, rec.Body.String())

	rec = doJSON(t, h, http.MethodDelete, "/api/projects/demo", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/api/projects/demo", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDownload(t *testing.T) {
	srv, store := newTestServer(t, &stubQueryService{})
	p, err := store.(*fs.ProjectStore).Create("demo")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(p.PDFCacheDir(), 0o755))
	blobName := "doc.pdf_page_1.png"
	require.NoError(t, os.WriteFile(filepath.Join(p.PDFCacheDir(), blobName), []byte("image bytes"), 0o644))

	signer := blob.NewSigner("secret", "http://localhost")
	signed, err := signer.SignedURL("demo", blobName, time.Hour)
	require.NoError(t, err)
	path := strings.TrimPrefix(signed, "http://localhost")

	rec := doJSON(t, srv.Handler(), http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image bytes", rec.Body.String())
}

func TestDownload_BadToken(t *testing.T) {
	srv, _ := newTestServer(t, &stubQueryService{})
	rec := doJSON(t, srv.Handler(), http.MethodGet,
		"/download/graphragdemocache/doc.pdf?token=garbage", "", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDownload_TokenBlobMismatch(t *testing.T) {
	srv, _ := newTestServer(t, &stubQueryService{})
	signer := blob.NewSigner("secret", "http://localhost")
	signed, err := signer.SignedURL("demo", "allowed.pdf", time.Hour)
	require.NoError(t, err)
	token := signed[strings.Index(signed, "token=")+len("token="):]

	rec := doJSON(t, srv.Handler(), http.MethodGet,
		"/download/graphragdemocache/other.pdf?token="+token, "", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(domain.ErrProjectNotFound))
	assert.Equal(t, http.StatusConflict, statusFor(domain.ErrProjectExists))
	assert.Equal(t, http.StatusBadRequest, statusFor(domain.ErrInvalidProjectName))
	assert.Equal(t, http.StatusBadRequest, statusFor(domain.ErrEmptyQuery))
	assert.Equal(t, http.StatusUnauthorized, statusFor(domain.ErrInvalidAPIKey))
	assert.Equal(t, http.StatusBadRequest, statusFor(domain.ErrNotBuilt))
	assert.Equal(t, http.StatusBadRequest, statusFor(&domain.MissingArtifactError{Table: "x"}))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}
