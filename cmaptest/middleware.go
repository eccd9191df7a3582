package cmaptest

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/simonscmap/cmap-go/internal/logging"
	"github.com/simonscmap/cmap-go/internal/metrics"
)

// Logging attaches a request id, logs each request and records serving
// metrics.
func Logging(l *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(logging.RequestIDHeader)
			if reqID == "" {
				reqID = logging.NewID()
			}
			w.Header().Set(logging.RequestIDHeader, reqID)
			ctx := logging.WithRequestID(r.Context(), reqID)

			sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(sw, r.WithContext(ctx))

			dur := time.Since(start)
			metrics.ObserveHTTP(r.Method, r.URL.Path, sw.code, dur.Seconds())
			logging.FromContext(ctx, l).Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", sw.code).
				Dur("duration", dur).
				Msg("http request")
		}
		return http.HandlerFunc(fn)
	}
}

// Recover turns handler panics into a 500.
func Recover() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
