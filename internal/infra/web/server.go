// Package web serves the backend endpoints the assistant client consumes:
// POST /api/ai-chat, POST /api/job-search, and the small read-only
// endpoints around them.
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"lakshya-career-assistant/internal/infra/coach"
	"lakshya-career-assistant/internal/infra/metrics"
)

type Server struct {
	provider coach.Provider
	fallback *coach.KeywordCoach
	identity string // the logical user replies are attributed to
	log      *zerolog.Logger
}

func NewServer(provider coach.Provider, fallback *coach.KeywordCoach, identity string, logger *zerolog.Logger) *Server {
	return &Server{
		provider: provider,
		fallback: fallback,
		identity: identity,
		log:      logger,
	}
}

// Routes builds the router. Mounted at root: paths are absolute.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Post("/api/ai-chat", s.handleAIChat)
	r.Get("/api/ai-status", s.handleAIStatus)
	r.Post("/api/job-search", s.handleJobSearch)
	r.Get("/api/job-categories", s.handleJobCategories)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// observe logs and counts every request.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		// Route pattern, not raw path, to keep label cardinality bounded.
		pattern := chi.RouteContext(r.Context()).RoutePattern()
		metrics.ObserveHTTPRequest(r.Method, pattern, ww.Status())
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Msg("http request")
	})
}
