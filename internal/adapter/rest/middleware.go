package rest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type contextKey string

const tokenContextKey contextKey = "token"

// TokenMiddleware extracts the bearer token from the Authorization header and
// attaches it to the request context. The token is the opaque account id; no
// credential is verified here. Handlers decide what an absent token means:
// lesson listing degrades to an empty list while the other operations fail.
func TokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				ctx := context.WithValue(r.Context(), tokenContextKey, strings.TrimSpace(parts[1]))
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// TokenFromContext returns the bearer token attached by TokenMiddleware, or
// "" when the request carried none.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}

// RecoverMiddleware converts handler panics into the generic transport error
// so an unexpected failure never crashes the connection without a response.
func RecoverMiddleware(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.WithField("panic", rec).Error("handler panicked")
					respondJSON(w, http.StatusInternalServerError, errorEnvelope{
						Error: ErrorBody{Kind: KindTransport, Message: "something went wrong, please try again"},
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// AccessLogMiddleware writes one structured line per request.
func AccessLogMiddleware(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)
			logger.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   recorder.status,
				"duration": time.Since(start).String(),
				"remote":   r.RemoteAddr,
			}).Info("request completed")
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
