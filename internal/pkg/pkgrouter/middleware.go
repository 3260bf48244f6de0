package pkgrouter

import (
	"net/http"
	"strings"

	"github.com/officialforloop/summary-report/internal/pkg/pkglog"
)

// Middleware wraps an http.Handler, typically to add cross-cutting behavior.
type Middleware func(http.Handler) http.Handler

// Chain applies middleware in order, returning the final wrapped handler.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Generator generates a unique string (used for correlation IDs).
type Generator interface {
	Generate() string
}

const (
	// HeaderCorrelationID is echoed on every response so clients can quote it
	// when reporting a failed summary run.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is accepted as a fallback, as set by some proxies.
	HeaderRequestID = "X-Request-ID"

	maxCIDLen = 128
)

// incomingCID returns the first usable id from the request headers.
// Values carrying control characters are ignored.
func incomingCID(r *http.Request) string {
	for _, name := range []string{HeaderCorrelationID, HeaderRequestID} {
		v := strings.TrimSpace(r.Header.Get(name))
		if v == "" || strings.ContainsFunc(v, func(c rune) bool { return c < 0x20 || c == 0x7f }) {
			continue
		}
		if len(v) > maxCIDLen {
			v = v[:maxCIDLen]
		}
		return v
	}
	return ""
}

func middlewareCorrelationID(uid Generator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid := incomingCID(r)
			if cid == "" && uid != nil {
				cid = uid.Generate()
			}

			if cid != "" {
				w.Header().Set(HeaderCorrelationID, cid)
				r = r.WithContext(pkglog.SetCorrelationID(r.Context(), cid))
			}

			next.ServeHTTP(w, r)
		})
	}
}
