package server

import (
	"context"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-widgetform/internal/logging"
	"github.com/goliatone/go-widgetform/pkg/interfaces"
)

type loggerKey struct{}

// requestLogger returns the request scoped logger or fallback.
func requestLogger(ctx context.Context, fallback interfaces.Logger) interfaces.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(interfaces.Logger); ok && logger != nil {
		return logger
	}
	if fallback == nil {
		return logging.NoOp()
	}
	return fallback
}

// loggerMiddleware attaches a logger carrying request attributes to the
// request context and logs completion.
func (s *Server) loggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.WithFields(s.logger.WithContext(r.Context()), map[string]any{
			"request_id": chimiddleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
		})

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()
		next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), loggerKey{}, logger)))

		logger.Debug("server.request",
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(started),
		)
	})
}
