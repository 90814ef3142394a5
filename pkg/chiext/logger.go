package chiext

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Logger logs one line per request with the matched route and its URL
// parameters.
func Logger() func(next http.Handler) http.Handler {
	return middleware.RequestLogger(LogFormatter{})
}

type LogFormatter struct{}

func (LogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	attrs := []any{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("from", r.RemoteAddr),
	}
	if reqID := middleware.GetReqID(r.Context()); reqID != "" {
		attrs = append(attrs, slog.String("request", reqID))
	}

	return logEntry{
		r:     r,
		attrs: attrs,
	}
}

type logEntry struct {
	r     *http.Request
	attrs []any
}

// Write runs after the handler, so routing has filled the route context.
func (l logEntry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra interface{}) {
	attrs := append(l.attrs, routeAttrs(l.r)...)
	attrs = append(attrs,
		slog.Int("status", status),
		slog.Int("bytes", bytes),
		slog.Duration("elapsed", elapsed),
	)

	switch {
	case status >= 500:
		slog.Error("HTTP request", attrs...)
	case status >= 400:
		slog.Warn("HTTP request", attrs...)
	default:
		slog.Info("HTTP request", attrs...)
	}
}

func (l logEntry) Panic(v interface{}, stack []byte) {
	slog.Error("HTTP handler panicked", append(l.attrs, slog.Any("panic", v), slog.String("stack", string(stack)))...)
}

func routeAttrs(r *http.Request) []any {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return nil
	}

	var attrs []any
	if pattern := rctx.RoutePattern(); pattern != "" {
		attrs = append(attrs, slog.String("route", pattern))
	}
	for i, key := range rctx.URLParams.Keys {
		if key == "*" || i >= len(rctx.URLParams.Values) {
			continue
		}
		attrs = append(attrs, slog.String(key, rctx.URLParams.Values[i]))
	}
	return attrs
}
