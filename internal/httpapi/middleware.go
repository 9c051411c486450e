package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/DoyleJ11/team-builder-backend/internal/logging"
	"github.com/DoyleJ11/team-builder-backend/internal/metrics"
)

const unmatchedRoute = "unmatched"

// RequestLogger logs one line per request and records its latency. Paths in
// skip are served without either.
func RequestLogger(logger *zap.Logger, recorder *metrics.Recorder, skip ...string) func(http.Handler) http.Handler {
	logger = logging.OrNop(logger).Named("http")

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			for _, path := range skip {
				if path == r.URL.Path {
					next.ServeHTTP(w, r)
					return
				}
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				took := time.Since(start)

				// Only known after routing.
				route := unmatchedRoute
				if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
					route = rctx.RoutePattern()
				}

				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}

				recorder.RecordHTTPRequest(r.Method, route, status, took)
				logger.Info("request",
					zap.String(logging.FieldRequestID, middleware.GetReqID(r.Context())),
					zap.String(logging.FieldMethod, r.Method),
					zap.String(logging.FieldPath, r.URL.Path),
					zap.String(logging.FieldRoute, route),
					zap.Int(logging.FieldStatusCode, status),
					zap.Float64(logging.FieldDurationMS, float64(took.Microseconds())/1000),
					zap.Int("bytes_out", ww.BytesWritten()),
				)
			}()

			next.ServeHTTP(ww, r)
		}

		return http.HandlerFunc(fn)
	}
}
