package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unqdlphn/web-app-starter/internal/logger"
	"github.com/unqdlphn/web-app-starter/internal/project"
	"github.com/unqdlphn/web-app-starter/internal/store/sqlite"
)

// testWorkspace builds a minimal project workspace on disk.
func testWorkspace(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	for _, d := range project.Dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, d), 0o755))
	}
	require.NoError(t, os.WriteFile(project.IndexTemplatePath(dir), []byte("<h1>myapp</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(project.StaticPath(dir), "style.css"), []byte("body { margin: 0 }"), 0o644))
	require.NoError(t, project.WriteManifest(dir, project.NewManifest("myapp", "3.12", "0.1.0-alpha")))
	return dir
}

// seedDatabase creates and seeds the workspace database.
func seedDatabase(t *testing.T, dir string) {
	t.Helper()

	st := sqlite.New(project.DBPath(dir), logger.New(io.Discard, false))
	require.NoError(t, st.Open())
	defer st.Close()
	require.NoError(t, st.Migrate())
	_, err := st.Seed()
	require.NoError(t, err)
}

func testServer(t *testing.T, dir string) *Server {
	t.Helper()
	return New(Config{
		Addr:    ":0",
		Dir:     dir,
		Version: "0.1.0-alpha",
	}, logger.New(io.Discard, false))
}

func TestHomeServesIndex(t *testing.T) {
	dir := testWorkspace(t)
	srv := testServer(t, dir)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>myapp</h1>")
}

func TestHomeUnknownPath(t *testing.T) {
	dir := testWorkspace(t)
	srv := testServer(t, dir)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHomeDoesNotCreateDatabase(t *testing.T) {
	dir := testWorkspace(t)
	srv := testServer(t, dir)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	// The per-request connection helper skips a missing file.
	_, err := os.Stat(project.DBPath(dir))
	assert.True(t, os.IsNotExist(err))
}

func TestHomeWithSeededDatabase(t *testing.T) {
	dir := testWorkspace(t)
	seedDatabase(t, dir)
	srv := testServer(t, dir)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>myapp</h1>")
}

func TestLive(t *testing.T) {
	dir := testWorkspace(t)
	srv := testServer(t, dir)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestReadyMissingDatabase(t *testing.T) {
	dir := testWorkspace(t)
	srv := testServer(t, dir)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT READY")

	// The readiness probe must not create the database file.
	_, err := os.Stat(project.DBPath(dir))
	assert.True(t, os.IsNotExist(err))
}

func TestReadySeededDatabase(t *testing.T) {
	dir := testWorkspace(t)
	seedDatabase(t, dir)
	srv := testServer(t, dir)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "READY", rec.Body.String())
}

func TestStatus(t *testing.T) {
	dir := testWorkspace(t)
	seedDatabase(t, dir)
	srv := testServer(t, dir)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "0.1.0-alpha", resp["version"])
	assert.Equal(t, "myapp", resp["project"])
	assert.Equal(t, "ready", resp["db"])
	assert.Equal(t, "3", resp["rows"])
	assert.NotEmpty(t, resp["size"])
	assert.NotEmpty(t, resp["time"])
}

func TestStatusMissingDatabase(t *testing.T) {
	dir := testWorkspace(t)
	srv := testServer(t, dir)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "missing", resp["db"])
	assert.Empty(t, resp["rows"])
}

func TestStatusRejectsNonJSONAccept(t *testing.T) {
	dir := testWorkspace(t)
	srv := testServer(t, dir)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotAcceptable, rec.Code)
}

func TestStatusAllowsWildcardAccept(t *testing.T) {
	dir := testWorkspace(t)
	srv := testServer(t, dir)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set("Accept", "*/*")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatic(t *testing.T) {
	dir := testWorkspace(t)
	srv := testServer(t, dir)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "margin")
}

func TestListenAndServeShutsDownOnCancel(t *testing.T) {
	dir := testWorkspace(t)
	srv := New(Config{
		Addr:            "127.0.0.1:0",
		Dir:             dir,
		ShutdownTimeout: time.Second,
	}, logger.New(io.Discard, false))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := srv.ListenAndServe(ctx)
	assert.NoError(t, err)
}
