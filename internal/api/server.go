package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/richdoc/internal/config"
	"github.com/dgallion1/richdoc/internal/metrics"
	"github.com/dgallion1/richdoc/internal/parser"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for richdoc.
type Server struct {
	router  chi.Router
	stats   *metrics.RenderStats
	parsers parser.Options
	log     *slog.Logger
	cfg     config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(stats *metrics.RenderStats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		stats:   stats,
		parsers: parser.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext},
		log:     log,
		cfg:     cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/render", s.handleRender)
		r.Post("/api/render/trusted", s.handleRenderTrusted)
		r.Post("/api/render/batch", s.handleRenderBatch)
		r.Post("/api/summary", s.handleSummary)
		r.Get("/api/stats/render", s.handleRenderStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
