package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/0xalexb/confedit/api"
	"github.com/0xalexb/confedit/assets"
	"github.com/0xalexb/confedit/schema"
	"github.com/0xalexb/confedit/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedHandler(t *testing.T) http.Handler {
	t.Helper()

	themes, err := store.NewSnapshot(schema.Themes, assets.Themes)
	require.NoError(t, err)

	st, err := store.New(nil, themes)
	require.NoError(t, err)

	return api.NewHandler(api.Params{
		Store: st,
		HTTP: &api.Config{
			MaxBodyBytes:   64,
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	})
}

func TestHandler_RequestID(t *testing.T) {
	t.Parallel()

	h := newLimitedHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/themes", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestHandler_BodyLimit(t *testing.T) {
	t.Parallel()

	h := newLimitedHandler(t)
	body := `{"path":"shadows.md[0]","value":"` + strings.Repeat(" ", 128) + `{}"}`

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/themes/0", strings.NewReader(body)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	streamed := httptest.NewRequest(http.MethodPatch, "/api/themes/0", strings.NewReader(body))
	streamed.ContentLength = -1

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, streamed)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), api.ErrCodeTooLarge)
}

func TestHandler_CORSPreflight(t *testing.T) {
	t.Parallel()

	h := newLimitedHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/themes/0", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandler_MissingDocument(t *testing.T) {
	t.Parallel()

	h := newLimitedHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/features", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), api.ErrCodeNotFound)
}

func TestConfig(t *testing.T) {
	t.Parallel()

	var cfg api.Config

	assert.True(t, cfg.SetDefaults())
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.False(t, cfg.SetDefaults())
	require.NoError(t, cfg.Validate())

	cfg.AllowedOrigins = []string{"*", "http://localhost:3000"}
	require.NoError(t, cfg.Validate())

	cfg.AllowedOrigins = []string{"localhost:3000"}
	require.Error(t, cfg.Validate())

	cfg = api.Config{MaxBodyBytes: -1}
	require.ErrorIs(t, cfg.Validate(), api.ErrInvalidBodyLimit)
}
