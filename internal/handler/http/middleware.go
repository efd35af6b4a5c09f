package http

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel/trace"

	"ytldr/internal/handler/http/pathutil"
	"ytldr/internal/handler/http/respond"
	"ytldr/internal/handler/http/responsewriter"
	"ytldr/internal/observability/requestid"
)

// Logging returns middleware that logs one line per request. Server errors
// are logged at error level and client errors at warn level.
// The query string is left out because it may carry page URLs or keys.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := responsewriter.Wrap(w)

			next.ServeHTTP(wrapped, r)

			status := wrapped.Status()
			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}

			ctx := r.Context()
			logger.LogAttrs(ctx, level, "request completed",
				slog.String("request_id", requestid.FromContext(ctx)),
				slog.String("trace_id", trace.SpanFromContext(ctx).SpanContext().TraceID().String()),
				slog.String("method", r.Method),
				slog.String("route", pathutil.NormalizePath(r.URL.Path)),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.Header.Get("User-Agent")),
				slog.Int("status", status),
				slog.Int("bytes", wrapped.Size()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// Recover returns middleware that turns a panic into a 500 response and an
// error log with the stack.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.ErrorContext(r.Context(), "panic recovered",
					slog.String("request_id", requestid.FromContext(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)
				respond.SafeError(w, r, http.StatusInternalServerError, errors.New("panic in handler"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
