package chiext

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLoggerRouteAttrs(t *testing.T) {
	buf := captureLog(t)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(Logger())
	r.Post("/api/actions/{action}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/actions/max", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ERROR", line["level"])
	assert.Equal(t, "HTTP request", line["msg"])
	assert.Equal(t, "POST", line["method"])
	assert.Equal(t, "/api/actions/{action}", line["route"])
	assert.Equal(t, "max", line["action"])
	assert.EqualValues(t, 503, line["status"])
	assert.NotEmpty(t, line["request"])
}

func TestLoggerUnmatchedRoute(t *testing.T) {
	buf := captureLog(t)

	r := chi.NewRouter()
	r.Use(Logger())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, "/missing", line["path"])
	assert.EqualValues(t, 404, line["status"])
	assert.NotContains(t, line, "action")
}
