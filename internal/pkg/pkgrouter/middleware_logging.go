package pkgrouter

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
)

// Only error bodies are captured, and only up to this size.
const maxLoggedErrorBytes = 4 * 1024

//nolint:gochecknoglobals // global for fast reuse
var sensitiveKeys = map[string]struct{}{
	"authorization": {},
	"cookie":        {},
	"x-api-key":     {},
	"token":         {},
	"email":         {},
}

func isSensitive(key string) bool {
	_, found := sensitiveKeys[strings.ToLower(key)]
	return found
}

func maskHeaders(headers http.Header) http.Header {
	result := headers.Clone()
	for key := range result {
		if isSensitive(key) {
			result.Set(key, "***")
		}
	}
	return result
}

func maskQuery(values url.Values) map[string]string {
	if len(values) == 0 {
		return nil
	}

	masked := make(map[string]string, len(values))
	for k, v := range values {
		if isSensitive(k) {
			masked[k] = "***"
			continue
		}
		masked[k] = strings.Join(v, ",")
	}
	return masked
}

// responseRecorder tracks what the handler wrote. The body is kept only
// once the status says the request failed.
type responseRecorder struct {
	http.ResponseWriter
	status  int
	bytes   int
	errBody bytes.Buffer
}

func (w *responseRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseRecorder) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	if w.status >= http.StatusBadRequest {
		if remaining := maxLoggedErrorBytes - w.errBody.Len(); remaining > 0 {
			w.errBody.Write(p[:min(len(p), remaining)])
		}
	}

	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

func (w *responseRecorder) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *responseRecorder) errorMessage() string {
	if w.errBody.Len() == 0 {
		return ""
	}

	var body errorResponse
	if err := json.Unmarshal(w.errBody.Bytes(), &body); err == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(w.errBody.String())
}

func matchedRoutePath(r *http.Request) string {
	pattern := httprouter.ParamsFromContext(r.Context()).MatchedRoutePath()
	if pattern != "" {
		return pattern
	}
	return r.URL.Path
}

func middlewareLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := matchedRoutePath(r)
		start := time.Now()

		slog.InfoContext(
			r.Context(),
			"request received",
			"method", r.Method,
			"route", route,
			"query", maskQuery(r.URL.Query()),
			"client_ip", clientIP(r),
			"headers", maskHeaders(r.Header),
		)

		rec := &responseRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}

		attrs := []any{
			"method", r.Method,
			"route", route,
			"status", status,
			"bytes", rec.bytes,
			"latency_ms", time.Since(start).Milliseconds(),
		}
		if msg := rec.errorMessage(); msg != "" {
			attrs = append(attrs, "error", msg)
		}

		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}

		slog.Log(r.Context(), level, "response sent", attrs...)
	})
}
