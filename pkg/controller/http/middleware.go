package http

import (
	"bytes"
	"io"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/filmdesk/filmdesk/pkg/domain/model/errs"
	"github.com/filmdesk/filmdesk/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		logging.From(r.Context()).Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"elapsed", time.Since(started),
		)
	})
}

func panicRecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				errs.Handle(r.Context(), goerr.New("panic recovered in http handler",
					goerr.V("recover", rec),
					goerr.V("stack", string(debug.Stack())),
					goerr.V("path", r.URL.Path)))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// verifySlackRequest validates the Slack signature over the raw body, then
// restores the body for the actual handler. Without a verifier (local dev)
// requests pass through.
func verifySlackRequest(verifier PayloadVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				handleError(w, r, goerr.Wrap(err, "failed to read request body",
					goerr.T(errs.TagInvalidRequest)))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			if err := verifier(r.Context(), r.Header, body); err != nil {
				handleError(w, r, goerr.Wrap(err, "slack signature verification failed",
					goerr.T(errs.TagUnauthorized)))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
