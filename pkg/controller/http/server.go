package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	slack_ctrl "github.com/filmdesk/filmdesk/pkg/controller/slack"
)

type Server struct {
	router   *chi.Mux
	verifier PayloadVerifier
}

type Option func(*Server)

// WithSlackVerifier enables signing-secret verification on the Slack
// endpoints. Without it (local dev) requests are accepted as-is.
func WithSlackVerifier(verifier PayloadVerifier) Option {
	return func(s *Server) {
		s.verifier = verifier
	}
}

func New(ctrl *slack_ctrl.Controller, opts ...Option) *Server {
	s := &Server{
		router: chi.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := s.router
	r.Use(loggingMiddleware)
	r.Use(panicRecoveryMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/hooks/slack", func(r chi.Router) {
		r.Use(verifySlackRequest(s.verifier))
		r.Post("/event", slackEventHandler(ctrl))
		r.Post("/interaction", slackInteractionHandler(ctrl))
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
