package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/persistence"
	"github.com/jonathan/cv-builder/internal/server/ratelimit"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot(id string) *types.Snapshot {
	n := 0
	ids := func(prefix string) string {
		n++
		return fmt.Sprintf("%s_%d", prefix, n)
	}
	return &types.Snapshot{
		Document:         types.ExampleDocument(id, ids),
		SelectedTemplate: types.TemplateClassic,
		Language:         types.LanguageFrench,
		Layout:           types.DefaultLayout(),
		UpdatedAt:        time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

type testServer struct {
	*Server
	store   *persistence.MemoryStore
	handler http.Handler
}

func newTestServer(t *testing.T, cfg Config) *testServer {
	t.Helper()
	store := persistence.NewMemoryStore()
	if cfg.Adapter == nil {
		cfg.Adapter = store
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = &ratelimit.Config{Enabled: false}
	}
	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return &testServer{Server: s, store: store, handler: s.Handler()}
}

func (ts *testServer) do(method, path string, body []byte, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func encode(t *testing.T, snap *types.Snapshot) []byte {
	t.Helper()
	raw, err := persistence.Encode(snap)
	require.NoError(t, err)
	return raw
}

func TestNew_RequiresAdapter(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t, Config{})

	w := ts.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestCVLifecycle(t *testing.T) {
	ts := newTestServer(t, Config{})

	w := ts.do(http.MethodGet, "/api/cvs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	snap := testSnapshot("doc-1")
	w = ts.do(http.MethodPut, "/api/cv/doc-1", encode(t, snap))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var summary types.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, "doc-1", summary.ID)
	assert.Equal(t, snap.Document.Title, summary.Title)

	w = ts.do(http.MethodGet, "/api/cv/doc-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got, err := persistence.Decode("doc-1", w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, snap.Document, got.Document)
	assert.Equal(t, snap.Layout, got.Layout)

	w = ts.do(http.MethodGet, "/api/cvs", nil)
	var list []types.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "doc-1", list[0].ID)

	w = ts.do(http.MethodDelete, "/api/cv/doc-1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, ts.store.Len())

	w = ts.do(http.MethodGet, "/api/cv/doc-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = ts.do(http.MethodDelete, "/api/cv/doc-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPutCV_Rejects(t *testing.T) {
	ts := newTestServer(t, Config{})

	tests := []struct {
		name string
		path string
		body []byte
		want int
	}{
		{"invalid json", "/api/cv/doc-1", []byte(`{ nope`), http.StatusBadRequest},
		{"schema violation", "/api/cv/doc-1", []byte(`{"cvData": 3}`), http.StatusBadRequest},
		{"id mismatch", "/api/cv/doc-2", encode(t, testSnapshot("doc-1")), http.StatusBadRequest},
		{"invalid id", "/api/cv/bad.id", encode(t, testSnapshot("doc-1")), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
	assert.Equal(t, 0, ts.store.Len(), "rejected snapshots are not stored")
}

func TestExportEndpoints(t *testing.T) {
	exporter := export.NewExporter(export.TextRasterizer{}, 1, nil)
	ts := newTestServer(t, Config{Exporter: exporter})
	require.NoError(t, ts.store.Write(context.Background(), testSnapshot("doc-1")))

	w := ts.do(http.MethodGet, "/api/cv/doc-1/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "CV_Jean_Dupont.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = ts.do(http.MethodGet, "/api/cv/doc-1/doc", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/msword", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "CV_Jean_Dupont.doc")
	assert.Contains(t, w.Body.String(), "Jean")

	w = ts.do(http.MethodGet, "/api/cv/missing/pdf", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportEndpoints_NoExporter(t *testing.T) {
	ts := newTestServer(t, Config{})
	require.NoError(t, ts.store.Write(context.Background(), testSnapshot("doc-1")))

	w := ts.do(http.MethodGet, "/api/cv/doc-1/pdf", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAuth_ProtectsWrites(t *testing.T) {
	jwtCfg := &config.JWTConfig{Secret: testSecret, ExpirationHours: 1}
	ts := newTestServer(t, Config{JWT: jwtCfg})
	token, err := NewJWTService(jwtCfg).GenerateToken("cli")
	require.NoError(t, err)
	body := encode(t, testSnapshot("doc-1"))

	w := ts.do(http.MethodPut, "/api/cv/doc-1", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = ts.do(http.MethodPut, "/api/cv/doc-1", body, "Authorization", "Bearer wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, ts.store.Len())

	w = ts.do(http.MethodPut, "/api/cv/doc-1", body, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// reads stay public
	w = ts.do(http.MethodGet, "/api/cv/doc-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodDelete, "/api/cv/doc-1", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = ts.do(http.MethodDelete, "/api/cv/doc-1", nil, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, Config{RateLimit: &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  2,
		DefaultWindow: time.Hour,
		Whitelist:     map[string]bool{},
		Blacklist:     map[string]bool{},
	}})

	for i := 0; i < 2; i++ {
		w := ts.do(http.MethodGet, "/api/cvs", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))
	}
	w := ts.do(http.MethodGet, "/api/cvs", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "rate_limit_exceeded", resp["error"])
}

func TestRateLimit_SkipsPreflight(t *testing.T) {
	ts := newTestServer(t, Config{RateLimit: &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
		Whitelist:     map[string]bool{},
		Blacklist:     map[string]bool{},
	}})

	for i := 0; i < 5; i++ {
		w := ts.do(http.MethodOptions, "/api/cvs", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"), "preflight is not counted")
	}
	w := ts.do(http.MethodGet, "/api/cvs", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodGet, "/api/cvs", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"), "rejections still carry CORS headers")
}

func TestCORSMiddleware(t *testing.T) {
	ts := newTestServer(t, Config{})

	handler := ts.withCORS(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestCORSMiddleware_OPTIONS(t *testing.T) {
	ts := newTestServer(t, Config{})

	w := ts.do(http.MethodOptions, "/api/cv/doc-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, w.Body.Len(), "OPTIONS response should have empty body")
}

func TestLoggingMiddleware_RecordsStatus(t *testing.T) {
	ts := newTestServer(t, Config{})

	called := false
	handler := ts.withLogging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.True(t, called, "logging middleware should call next handler")
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestErrorResponse(t *testing.T) {
	ts := newTestServer(t, Config{})
	w := httptest.NewRecorder()

	ts.errorResponse(w, http.StatusBadRequest, "test error")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "test error", resp["error"])
}
